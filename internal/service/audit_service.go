package service

import (
	"log"
	"time"

	"go-admin-portal/internal/model"
	"go-admin-portal/internal/repository"
)

type AuditService interface {
	Record(username, action, result, detail string)
	GetLogs(limit, offset int, filters repository.AuditFilters) (*AuditList, error)
}

type AuditList struct {
	Total int64            `json:"total"`
	Items []model.AuditLog `json:"items"`
}

type auditService struct {
	auditRepo repository.AuditRepository
	userRepo  repository.UserRepository
}

func NewAuditService(auditRepo repository.AuditRepository, userRepo repository.UserRepository) AuditService {
	return &auditService{auditRepo: auditRepo, userRepo: userRepo}
}

// Record appends one audit entry. Auditing is best effort: a failure is
// logged and never propagated to the operation being audited.
func (s *auditService) Record(username, action, result, detail string) {
	var userID uint
	if user, err := s.userRepo.FindByEmail(username); err == nil {
		userID = user.ID
	}

	entry := &model.AuditLog{
		Username:  username,
		UserID:    userID,
		AuditTime: time.Now().UTC(),
		Action:    action,
		Result:    result,
		Detail:    detail,
	}
	if err := s.auditRepo.Create(entry); err != nil {
		log.Printf("Failed to create audit log: %v", err)
	}
}

func (s *auditService) GetLogs(limit, offset int, filters repository.AuditFilters) (*AuditList, error) {
	logs, total, err := s.auditRepo.FindAll(limit, offset, filters)
	if err != nil {
		return nil, err
	}
	return &AuditList{Total: total, Items: logs}, nil
}

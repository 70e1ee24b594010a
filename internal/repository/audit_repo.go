package repository

import (
	"go-admin-portal/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(entry *model.AuditLog) error
	FindAll(limit, offset int, filters AuditFilters) ([]model.AuditLog, int64, error)
}

// AuditFilters narrows the audit listing. Zero values mean "no filter".
type AuditFilters struct {
	Username string
	Action   string
	Result   string
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Create(entry *model.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditRepo) FindAll(limit, offset int, filters AuditFilters) ([]model.AuditLog, int64, error) {
	q := r.db.Model(&model.AuditLog{})
	if filters.Username != "" {
		q = q.Where("username ILIKE ?", "%"+filters.Username+"%")
	}
	if filters.Action != "" {
		q = q.Where("action = ?", filters.Action)
	}
	if filters.Result != "" {
		q = q.Where("result = ?", filters.Result)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.AuditLog
	if err := q.Order("audit_time DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

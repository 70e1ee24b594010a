package model

import "time"

// Audit action/result values.
const (
	AuditLogin  = "login"
	AuditLogout = "logout"

	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditLog is an append-only record of a user action.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);index" json:"username"`
	UserID    uint      `gorm:"index" json:"user_id"`
	AuditTime time.Time `json:"audit_time"`
	Action    string    `gorm:"type:varchar(16)" json:"action"`
	Result    string    `gorm:"type:varchar(16)" json:"result"`
	Detail    string    `gorm:"type:varchar(255)" json:"detail"`
}

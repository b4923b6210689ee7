package domain

import (
	"context"
	"time"
)

// AuditTrail 每个 HTTP 事务一行，只追加，应用永不修改或删除。
// UserID / ApplicationAdminID 互斥，匿名请求两者皆空。
type AuditTrail struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	UserID             *string   `gorm:"size:36;index" json:"userId"`
	ApplicationAdminID *string   `gorm:"size:36;index" json:"applicationAdminId"`
	UserType           *string   `gorm:"size:32" json:"userType"`
	Method             string    `gorm:"size:10;not null" json:"method"`
	Path               string    `gorm:"size:512;not null" json:"path"`
	Body               string    `gorm:"type:text" json:"body"`
	Query              string    `gorm:"type:text" json:"query"`
	Headers            string    `gorm:"type:text" json:"headers"`
	ResponseStatus     int       `gorm:"not null" json:"responseStatus"`
	Duration           int64     `gorm:"not null" json:"duration"` // 毫秒
	CreatedAt          time.Time `gorm:"index" json:"createdAt"`
}

func (AuditTrail) TableName() string { return "audit_trails" }

type AuditRepository interface {
	Record(ctx context.Context, a *AuditTrail) error
}

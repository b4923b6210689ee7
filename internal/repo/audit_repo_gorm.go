package repo

import (
	"context"

	"gorm.io/gorm"

	"mnavy-api/internal/domain"
	"mnavy-api/pkg/utils"
)

// AuditRepo 只追加，应用层不提供修改或删除入口
type AuditRepo struct{ db *gorm.DB }

func NewAuditRepo(db *gorm.DB) *AuditRepo { return &AuditRepo{db: db} }

func (r *AuditRepo) Record(ctx context.Context, a *domain.AuditTrail) error {
	if a.ID == "" {
		a.ID = utils.NewID()
	}
	return r.db.WithContext(ctx).Create(a).Error
}

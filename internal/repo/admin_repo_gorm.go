package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mnavy-api/internal/domain"
)

type AdminRepo struct{ db *gorm.DB }

func NewAdminRepo(db *gorm.DB) *AdminRepo { return &AdminRepo{db: db} }

func (r *AdminRepo) Create(ctx context.Context, a *domain.ApplicationAdmin) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AdminRepo) FindByEmail(ctx context.Context, email string) (*domain.ApplicationAdmin, error) {
	var a domain.ApplicationAdmin
	err := r.db.WithContext(ctx).First(&a, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mnavy-api/internal/domain"
	"mnavy-api/pkg/pagination"
)

// UserRepo 所有读路径默认排除 softDelete=true 的记录；
// 软删切换走 Unscoped 语义（查到任何状态的行再取反）。
type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ? AND soft_delete = ?", id, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ? AND soft_delete = ?", email, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ? AND soft_delete = ?", email, false)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepo) List(ctx context.Context, p pagination.Params) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{}).Where("soft_delete = ?", false)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	err := q.Order(p.OrderClause()).Offset(p.Skip).Limit(p.Take).Find(&users).Error
	return users, total, err
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Model(u).
		Select("name", "email", "phone").
		Updates(u).Error
}

func (r *UserRepo) ToggleActive(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND soft_delete = ?", id, false).
		Update("is_active", gorm.Expr("NOT is_active")).Error
}

func (r *UserRepo) ToggleSoftDelete(ctx context.Context, id string) (bool, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Select("id", "soft_delete").First(&u, "id = ?", id).Error; err != nil {
		return false, err
	}
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("soft_delete", !u.SoftDelete).Error
	// u.SoftDelete 为 true 代表本次是恢复
	return u.SoftDelete, err
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, hashed string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("password", hashed).Error
}

func (r *UserRepo) UpdateAvatar(ctx context.Context, id, url string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("avatar_url", url).Error
}

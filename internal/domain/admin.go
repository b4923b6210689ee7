package domain

import (
	"context"
	"time"
)

// ApplicationAdmin 应用管理员，与 User 完全独立的权限层，独立登录
type ApplicationAdmin struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password  string    `gorm:"size:191;not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ApplicationAdmin) TableName() string { return "application_admins" }

type AdminRepository interface {
	Create(ctx context.Context, a *ApplicationAdmin) error
	FindByEmail(ctx context.Context, email string) (*ApplicationAdmin, error)
}

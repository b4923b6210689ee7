package domain

import (
	"context"
	"time"

	"mnavy-api/pkg/pagination"
)

// 海事角色（非管理员的四类船端用户）
const (
	RoleShipCompanyAdmin = "SHIP_COMPANY_ADMIN"
	RoleShipAdmin        = "SHIP_ADMIN"
	RoleCaptain          = "CAPTAIN"
	RoleSecondOfficer    = "SECOND_OFFICER"

	// RoleAdmin 仅出现在 token 的 userType 里，标记应用管理员
	RoleAdmin = "Admin"
)

var MaritimeRoles = []string{RoleShipCompanyAdmin, RoleShipAdmin, RoleCaptain, RoleSecondOfficer}

func IsMaritimeRole(role string) bool {
	for _, r := range MaritimeRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User 船员/船司人员。邮箱唯一性只在 softDelete=false 范围内成立，
// 由仓储层查询保证，不靠数据库唯一索引。
type User struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:64;not null" json:"name"`
	Email      string    `gorm:"size:191;not null;index" json:"email"`
	Password   string    `gorm:"size:191;not null" json:"-"`
	Phone      string    `gorm:"size:50" json:"phone"`
	UserType   string    `gorm:"size:32;not null" json:"userType"`
	AvatarURL  string    `gorm:"size:512" json:"avatarUrl,omitempty"`
	IsActive   bool      `gorm:"not null;default:true" json:"isActive"`
	SoftDelete bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// EmailTaken 检查 softDelete=false 范围内邮箱是否被占用；excludeID 可为空
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	List(ctx context.Context, p pagination.Params) ([]User, int64, error)
	Update(ctx context.Context, u *User) error
	ToggleActive(ctx context.Context, id string) error
	// ToggleSoftDelete 逻辑删除/恢复互为反操作，restored 表示本次是恢复
	ToggleSoftDelete(ctx context.Context, id string) (restored bool, err error)
	UpdatePassword(ctx context.Context, id, hashed string) error
	UpdateAvatar(ctx context.Context, id, url string) error
}

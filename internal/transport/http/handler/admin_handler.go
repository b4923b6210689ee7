package handler

import (
	"github.com/gin-gonic/gin"

	"mnavy-api/internal/apperr"
	"mnavy-api/internal/core/auth"
	"mnavy-api/internal/core/config"
	"mnavy-api/internal/domain"
	"mnavy-api/internal/transport/http/response"
	"mnavy-api/internal/validation"
	"mnavy-api/pkg/utils"
)

// AdminHandler 应用管理员的登录/注册。注册只在非生产环境开放。
type AdminHandler struct {
	admins domain.AdminRepository
	jwter  *auth.JWTer
	cfg    *config.Config
}

func NewAdminHandler(admins domain.AdminRepository, jwter *auth.JWTer, cfg *config.Config) *AdminHandler {
	return &AdminHandler{admins: admins, jwter: jwter, cfg: cfg}
}

type adminLoginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 成功时 token 放在 Authorization 响应头，不进 body
func (h *AdminHandler) Login(c *gin.Context) {
	var in adminLoginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}
	if err := validation.EmailFormat(in.Email); err != nil {
		fail(c, err)
		return
	}
	if err := validation.Password(in.Password); err != nil {
		fail(c, err)
		return
	}

	admin, err := h.admins.FindByEmail(c.Request.Context(), in.Email)
	if err != nil {
		fail(c, err)
		return
	}
	if admin == nil {
		fail(c, apperr.NotFound("Admin does not exist."))
		return
	}
	if !utils.CheckPassword(in.Password, admin.Password) {
		fail(c, apperr.BadRequest("Invalid Credentials."))
		return
	}

	token, err := h.jwter.IssueAdmin(admin.ID, admin.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Authorization", token)
	response.OK(c, "Login Successful.", nil)
}

type adminRegisterIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminRegisterOut struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// Register 仅限开发环境自举用，生产环境一律 403
func (h *AdminHandler) Register(c *gin.Context) {
	if h.cfg.IsProduction() {
		fail(c, apperr.Forbidden("Registration not allowed in production."))
		return
	}

	var in adminRegisterIn
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}
	if err := validation.Email(in.Email); err != nil {
		fail(c, err)
		return
	}
	if err := validation.Password(in.Password); err != nil {
		fail(c, err)
		return
	}

	existing, err := h.admins.FindByEmail(c.Request.Context(), in.Email)
	if err != nil {
		fail(c, err)
		return
	}
	if existing != nil {
		fail(c, apperr.Conflict("Admin already exists."))
		return
	}

	admin := &domain.ApplicationAdmin{
		ID:       utils.NewID(),
		Email:    in.Email,
		Password: utils.HashPassword(in.Password),
	}
	if err := h.admins.Create(c.Request.Context(), admin); err != nil {
		fail(c, err)
		return
	}

	response.Created(c, "Admin Registration Successful (Development Only).", adminRegisterOut{
		ID:        admin.ID,
		Email:     admin.Email,
		CreatedAt: admin.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// fail 进入统一错误管道
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

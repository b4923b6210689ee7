package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mnavy-api/internal/apperr"
	"mnavy-api/internal/core/auth"
	"mnavy-api/internal/core/cache"
	"mnavy-api/internal/core/mailer"
	"mnavy-api/internal/core/storage"
	"mnavy-api/internal/domain"
	"mnavy-api/internal/transport/http/response"
	"mnavy-api/internal/validation"
	"mnavy-api/pkg/pagination"
	"mnavy-api/pkg/utils"
)

const (
	userCacheTTL    = 30 * time.Second
	otpTTL          = 10 * time.Minute
	avatarContainer = "avatars"
)

type UserHandler struct {
	users domain.UserRepository
	jwter *auth.JWTer
	cache *cache.Cache // 可为 nil（未配置 redis 时直连仓储）
	blob  *storage.Blob
	mail  *mailer.Mailer
	log   *zap.Logger
}

func NewUserHandler(users domain.UserRepository, jwter *auth.JWTer, ch *cache.Cache, blob *storage.Blob, mail *mailer.Mailer, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, jwter: jwter, cache: ch, blob: blob, mail: mail, log: log}
}

// userView 对外暴露的用户视图，永远不带密码哈希
type userView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	UserType  string    `json:"userType"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toView(u *domain.User) userView {
	return userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		UserType:  u.UserType,
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func userCacheKey(id string) string { return "user:" + id }

func (h *UserHandler) invalidate(c *gin.Context, id string) {
	if h.cache != nil {
		h.cache.Delete(c.Request.Context(), userCacheKey(id))
	}
}

type registerIn struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	UserType string `json:"userType"`
}

// Register 仅管理员可建用户
func (h *UserHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}
	for _, err := range []error{
		validation.Name(in.Name),
		validation.Email(in.Email),
		validation.Password(in.Password),
		validation.Phone(in.Phone),
		validation.UserType(in.UserType),
	} {
		if err != nil {
			fail(c, err)
			return
		}
	}

	taken, err := h.users.EmailTaken(c.Request.Context(), in.Email, "")
	if err != nil {
		fail(c, err)
		return
	}
	if taken {
		fail(c, apperr.Conflict("User already exists."))
		return
	}

	u := &domain.User{
		ID:       utils.NewID(),
		Name:     in.Name,
		Email:    in.Email,
		Password: utils.HashPassword(in.Password),
		Phone:    in.Phone,
		UserType: in.UserType,
		IsActive: true,
	}
	if err := h.users.Create(c.Request.Context(), u); err != nil {
		fail(c, err)
		return
	}

	response.Created(c, "User Registration Successful.", toView(u))
}

// List 分页参数走白名单规范化，空页按 404 处理
func (h *UserHandler) List(c *gin.Context) {
	p := pagination.Parse(
		c.Query("pageNo"), c.Query("pageLimit"),
		c.Query("sortBy"), c.Query("sortOrder"),
		pagination.Users,
	)

	records, count, err := h.users.List(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}
	if len(records) == 0 {
		fail(c, apperr.NotFound("No records found."))
		return
	}

	views := make([]userView, 0, len(records))
	for i := range records {
		views = append(views, toView(&records[i]))
	}
	response.List(c, fmt.Sprintf("%d record(s) found.", count), pagination.NewEnvelope(views, count, p))
}

func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		fail(c, apperr.BadRequest("User ID is required"))
		return
	}

	var u *domain.User
	var err error
	if h.cache != nil {
		u, err = cache.GetOrLoadJSON(h.cache, c.Request.Context(), userCacheKey(id), userCacheTTL,
			func(ctx context.Context) (*domain.User, error) {
				found, e := h.users.FindByID(ctx, id)
				if e != nil {
					return nil, e
				}
				if found == nil {
					return nil, apperr.NotFound("Record not found.")
				}
				return found, nil
			})
	} else {
		u, err = h.users.FindByID(c.Request.Context(), id)
	}
	if err != nil {
		fail(c, err)
		return
	}
	if u == nil {
		fail(c, apperr.NotFound("Record not found."))
		return
	}

	response.OK(c, "Record found.", toView(u))
}

type updateIn struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		fail(c, apperr.BadRequest("User ID is required"))
		return
	}

	var in updateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}
	if in.Name != "" {
		if err := validation.Name(in.Name); err != nil {
			fail(c, err)
			return
		}
	}
	if in.Email != "" {
		if err := validation.Email(in.Email); err != nil {
			fail(c, err)
			return
		}
	}
	if err := validation.Phone(in.Phone); err != nil {
		fail(c, err)
		return
	}

	existing, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if existing == nil {
		fail(c, apperr.NotFound("Record not found."))
		return
	}

	if in.Email != "" {
		taken, err := h.users.EmailTaken(c.Request.Context(), in.Email, id)
		if err != nil {
			fail(c, err)
			return
		}
		if taken {
			fail(c, apperr.Conflict("Email already in use."))
			return
		}
		existing.Email = in.Email
	}
	if in.Name != "" {
		existing.Name = in.Name
	}
	if in.Phone != "" {
		existing.Phone = in.Phone
	}

	if err := h.users.Update(c.Request.Context(), existing); err != nil {
		fail(c, err)
		return
	}
	h.invalidate(c, id)

	response.OK(c, "Record updated.", toView(existing))
}

// ToggleStatus 激活位取反
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		fail(c, apperr.BadRequest("User ID is required"))
		return
	}

	existing, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if existing == nil {
		fail(c, apperr.NotFound("Record not found."))
		return
	}

	if err := h.users.ToggleActive(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	h.invalidate(c, id)

	response.OK(c, "Record status updated.", nil)
}

// Delete 软删/恢复互为反操作，永不物理删除
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		fail(c, apperr.BadRequest("User ID is required"))
		return
	}

	restored, err := h.users.ToggleSoftDelete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	h.invalidate(c, id)

	if restored {
		response.OK(c, "Record restored.", nil)
		return
	}
	response.OK(c, "Record deleted.", nil)
}

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 停用账号即使密码正确也 401；token 走 Authorization 响应头
func (h *UserHandler) Login(c *gin.Context) {
	var in loginIn
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

	u, err := h.users.FindByEmail(c.Request.Context(), in.Email)
	if err != nil {
		fail(c, err)
		return
	}
	if u == nil {
		fail(c, apperr.NotFound("User does not exist."))
		return
	}
	if !utils.CheckPassword(in.Password, u.Password) {
		fail(c, apperr.BadRequest("Invalid Credentials."))
		return
	}
	if !u.IsActive {
		fail(c, apperr.Unauthorized("Account is inactive. Contact administrator."))
		return
	}

	token, err := h.jwter.IssueUser(u.ID, u.Name, u.Email, u.UserType, u.IsActive)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Authorization", token)
	response.OK(c, "Login Successful.", nil)
}

type forgotPasswordIn struct {
	Email string `json:"email"`
}

// ForgotPassword 发 OTP 邮件；发信结果只在响应里带个布尔，不算失败
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var in forgotPasswordIn
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}
	if err := validation.EmailFormat(in.Email); err != nil {
		fail(c, err)
		return
	}
	if h.cache == nil {
		fail(c, apperr.New("Password reset is not available.", 503))
		return
	}

	u, err := h.users.FindByEmail(c.Request.Context(), in.Email)
	if err != nil {
		fail(c, err)
		return
	}
	if u == nil {
		fail(c, apperr.NotFound("User does not exist."))
		return
	}

	otp := utils.GenerateOtp()
	if err := h.cache.PutOTP(c.Request.Context(), u.Email, otp, otpTTL); err != nil {
		fail(c, err)
		return
	}

	tpl := mailer.OtpTemplate(u.Name, u.Email, otp)
	sent := h.mail.Send(c.Request.Context(), u.Email, tpl.Subject, tpl.Body)
	if !sent {
		h.log.Warn("otp email not delivered", zap.String("email", u.Email))
	}

	response.OK(c, "OTP generated.", gin.H{"emailSent": sent})
}

type resetPasswordIn struct {
	Email    string `json:"email"`
	Otp      int    `json:"otp"`
	Password string `json:"password"`
}

// ResetPassword OTP 一次性消费，校验过就改密码
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var in resetPasswordIn
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
	if h.cache == nil {
		fail(c, apperr.New("Password reset is not available.", 503))
		return
	}

	u, err := h.users.FindByEmail(c.Request.Context(), in.Email)
	if err != nil {
		fail(c, err)
		return
	}
	if u == nil {
		fail(c, apperr.NotFound("User does not exist."))
		return
	}

	ok, err := h.cache.TakeOTP(c.Request.Context(), u.Email, in.Otp)
	if err != nil {
		fail(c, err)
		return
	}
	if !ok {
		fail(c, apperr.BadRequest("Invalid or expired OTP."))
		return
	}

	if err := h.users.UpdatePassword(c.Request.Context(), u.ID, utils.HashPassword(in.Password)); err != nil {
		fail(c, err)
		return
	}
	h.invalidate(c, u.ID)

	response.OK(c, "Password updated.", nil)
}

type avatarIn struct {
	Image string `json:"image"` // data:image/...;base64 字符串
}

// UploadAvatar base64 头像传 Azure 块存储，URL 落库
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		fail(c, apperr.BadRequest("User ID is required"))
		return
	}

	var in avatarIn
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, apperr.BadRequest(err.Error()))
		return
	}

	existing, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if existing == nil {
		fail(c, apperr.NotFound("Record not found."))
		return
	}

	url, err := h.blob.UploadBase64Image(c.Request.Context(), avatarContainer, in.Image)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImage) {
			fail(c, apperr.BadRequest("Only png, jpg and jpeg images are allowed."))
			return
		}
		fail(c, apperr.Internal("Image upload failed.", err))
		return
	}

	if err := h.users.UpdateAvatar(c.Request.Context(), id, url); err != nil {
		fail(c, err)
		return
	}
	h.invalidate(c, id)

	response.OK(c, "Avatar updated.", gin.H{"avatarUrl": url})
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mnavy-api/internal/core/auth"
	"mnavy-api/internal/domain"
	"mnavy-api/internal/transport/http/middleware"
	"mnavy-api/pkg/pagination"
	"mnavy-api/pkg/utils"
)

// memUsers 内存版用户仓储，行为对齐 gorm 实现：软删记录对读接口不可见
type memUsers struct {
	byID map[string]*domain.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*domain.User{}} }

func (m *memUsers) visible() []*domain.User {
	out := make([]*domain.User, 0, len(m.byID))
	for _, u := range m.byID {
		if !u.SoftDelete {
			out = append(out, u)
		}
	}
	return out
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u := m.byID[id]
	if u == nil || u.SoftDelete {
		return nil, nil
	}
	return u, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.visible() {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) EmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	for _, u := range m.visible() {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) List(_ context.Context, p pagination.Params) ([]domain.User, int64, error) {
	vis := m.visible()
	sort.Slice(vis, func(i, j int) bool { return vis[i].ID < vis[j].ID })
	count := int64(len(vis))
	if p.Skip >= len(vis) {
		return nil, count, nil
	}
	end := p.Skip + p.Take
	if end > len(vis) {
		end = len(vis)
	}
	page := make([]domain.User, 0, end-p.Skip)
	for _, u := range vis[p.Skip:end] {
		page = append(page, *u)
	}
	return page, count, nil
}

func (m *memUsers) Update(_ context.Context, u *domain.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) ToggleActive(_ context.Context, id string) error {
	m.byID[id].IsActive = !m.byID[id].IsActive
	return nil
}

func (m *memUsers) ToggleSoftDelete(_ context.Context, id string) (bool, error) {
	u := m.byID[id]
	if u == nil {
		return false, nil
	}
	was := u.SoftDelete
	u.SoftDelete = !u.SoftDelete
	return was, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id, hashed string) error {
	m.byID[id].Password = hashed
	return nil
}

func (m *memUsers) UpdateAvatar(_ context.Context, id, url string) error {
	m.byID[id].AvatarURL = url
	return nil
}

func userEngine(users domain.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	jwter := &auth.JWTer{Secret: []byte("0123456789abcdef0123456789abcdef"), Issuer: "mnavy-test", TTL: time.Hour}
	h := NewUserHandler(users, jwter, nil, nil, nil, zap.NewNop())

	e := gin.New()
	e.Use(middleware.ErrorHandler(zap.NewNop(), false))
	e.POST("/user", h.Register)
	e.POST("/user/login", h.Login)
	e.GET("/user", h.List)
	e.GET("/user/:id", h.Get)
	e.PUT("/user/:id", h.Update)
	e.PUT("/user/status/:id", h.ToggleStatus)
	e.DELETE("/user/:id", h.Delete)
	return e
}

func do(e *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func seedUser(m *memUsers, id, email string, active bool) *domain.User {
	u := &domain.User{
		ID:       id,
		Name:     "Jordan",
		Email:    email,
		Password: utils.HashPassword("Abc@123"),
		Phone:    "555-0100",
		UserType: domain.RoleCaptain,
		IsActive: active,
	}
	m.byID[id] = u
	return u
}

func TestUserRegister(t *testing.T) {
	users := newMemUsers()
	e := userEngine(users)

	w := do(e, http.MethodPost, "/user",
		`{"name":"Jordan","email":"j@x.com","password":"Abc@123","phone":"555-0100","userType":"CAPTAIN"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "User Registration Successful.")
	require.NotContains(t, w.Body.String(), "Abc@123")

	// 重复邮箱
	w = do(e, http.MethodPost, "/user",
		`{"name":"Casey","email":"j@x.com","password":"Abc@123","phone":"555-0101","userType":"CAPTAIN"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "User already exists.")

	// 非法角色
	w = do(e, http.MethodPost, "/user",
		`{"name":"Casey","email":"c@x.com","password":"Abc@123","phone":"555-0101","userType":"Pirate"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserList(t *testing.T) {
	users := newMemUsers()
	for i := 0; i < 12; i++ {
		seedUser(users, string(rune('a'+i)), string(rune('a'+i))+"@x.com", true)
	}
	e := userEngine(users)

	w := do(e, http.MethodGet, "/user?pageNo=2&pageLimit=5", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message     string            `json:"message"`
		Data        []json.RawMessage `json:"data"`
		Count       int64             `json:"count"`
		PageIndex   int               `json:"pageIndex"`
		TotalPages  int               `json:"totalPages"`
		HasNext     bool              `json:"hasNext"`
		HasPrevious bool              `json:"hasPrevious"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "12 record(s) found.", body.Message)
	require.Len(t, body.Data, 5)
	require.EqualValues(t, 12, body.Count)
	require.Equal(t, 2, body.PageIndex)
	require.Equal(t, 3, body.TotalPages)
	require.True(t, body.HasNext)
	require.True(t, body.HasPrevious)
}

func TestUserList_Empty(t *testing.T) {
	e := userEngine(newMemUsers())

	w := do(e, http.MethodGet, "/user", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "No records found.")
}

func TestUserGet(t *testing.T) {
	users := newMemUsers()
	seedUser(users, "u1", "j@x.com", true)
	e := userEngine(users)

	w := do(e, http.MethodGet, "/user/u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Record found.")
	require.Contains(t, w.Body.String(), "j@x.com")

	w = do(e, http.MethodGet, "/user/missing", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Record not found.")
}

func TestUserUpdate_EmailConflict(t *testing.T) {
	users := newMemUsers()
	seedUser(users, "u1", "a@x.com", true)
	seedUser(users, "u2", "b@x.com", true)
	e := userEngine(users)

	w := do(e, http.MethodPut, "/user/u1", `{"email":"b@x.com"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "Email already in use.")

	// 改自己的其他字段不受影响
	w = do(e, http.MethodPut, "/user/u1", `{"name":"Robin"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Record updated.")
	require.Equal(t, "Robin", users.byID["u1"].Name)
}

func TestUserDelete_ToggleSemantics(t *testing.T) {
	users := newMemUsers()
	seedUser(users, "u1", "j@x.com", true)
	e := userEngine(users)

	w := do(e, http.MethodDelete, "/user/u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Record deleted.")
	require.True(t, users.byID["u1"].SoftDelete)

	// 再删一次即恢复
	w = do(e, http.MethodDelete, "/user/u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Record restored.")
	require.False(t, users.byID["u1"].SoftDelete)
}

func TestUserToggleStatus(t *testing.T) {
	users := newMemUsers()
	seedUser(users, "u1", "j@x.com", true)
	e := userEngine(users)

	w := do(e, http.MethodPut, "/user/status/u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Record status updated.")
	require.False(t, users.byID["u1"].IsActive)
}

func TestUserLogin(t *testing.T) {
	users := newMemUsers()
	seedUser(users, "u1", "j@x.com", true)
	seedUser(users, "u2", "idle@x.com", false)
	e := userEngine(users)

	// 成功
	w := do(e, http.MethodPost, "/user/login", `{"email":"j@x.com","password":"Abc@123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Login Successful.")
	require.NotEmpty(t, w.Header().Get("Authorization"))

	// 停用账号：密码正确也拒绝
	w = do(e, http.MethodPost, "/user/login", `{"email":"idle@x.com","password":"Abc@123"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Account is inactive. Contact administrator.")

	// 不存在
	w = do(e, http.MethodPost, "/user/login", `{"email":"no@x.com","password":"Abc@123"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "User does not exist.")

	// 密码错误
	w = do(e, http.MethodPost, "/user/login", `{"email":"j@x.com","password":"Wrong@12"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid Credentials.")
}

func TestUserLogin_LegacyTLD(t *testing.T) {
	users := newMemUsers()
	seedUser(users, "u1", "legacy@fleet.org", true)
	e := userEngine(users)

	// 登录只校验邮箱格式，.org 存量账号照常进
	w := do(e, http.MethodPost, "/user/login", `{"email":"legacy@fleet.org","password":"Abc@123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("Authorization"))
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims token 内嵌的全部身份信息。有效性只看签名和过期时间，
// 服务端不存 session，也不支持吊销。
type Claims struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	Status   bool   `json:"status"`   // 账号是否激活；停用账号的旧 token 在此被拒
	UserType string `json:"userType"` // "Admin" 或四类海事角色之一
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// IssueUser 给船端用户签发 token；status 带上账号激活位
func (j *JWTer) IssueUser(id, name, email, userType string, isActive bool) (string, error) {
	return j.issue(Claims{
		ID:       id,
		Name:     name,
		Email:    email,
		IsAdmin:  false,
		Status:   isActive,
		UserType: userType,
	})
}

// IssueAdmin 应用管理员恒为激活状态
func (j *JWTer) IssueAdmin(id, email string) (string, error) {
	return j.issue(Claims{
		ID:       id,
		Email:    email,
		IsAdmin:  true,
		Status:   true,
		UserType: "Admin",
	})
}

func (j *JWTer) issue(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    j.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

package validation

import (
	"regexp"
	"strings"

	"mnavy-api/internal/apperr"
	"mnavy-api/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// 白名单顶级域
var validTLDs = map[string]struct{}{"com": {}, "net": {}, "in": {}}

// EmailFormat 只校验格式。登录/找回密码走这个：
// 存量账号的域名不受 TLD 白名单约束。
func EmailFormat(email string) error {
	if !emailPattern.MatchString(email) {
		return apperr.BadRequest("Invalid email format")
	}
	return nil
}

// Email 格式 + TLD 白名单，注册和改邮箱用
func Email(email string) error {
	if err := EmailFormat(email); err != nil {
		return err
	}
	at := strings.LastIndexByte(email, '@')
	domainPart := email[at+1:]
	tld := domainPart[strings.LastIndexByte(domainPart, '.')+1:]
	if _, ok := validTLDs[strings.ToLower(tld)]; !ok {
		return apperr.BadRequest("Email must have a valid TLD (com, net, in)")
	}
	return nil
}

// Password 6-12 位，必须同时包含大写、小写、数字和特殊字符（@#$!%*?&）
func Password(pw string) error {
	const specials = "@#$!%*?&"
	if len(pw) < 6 || len(pw) > 12 {
		return passwordErr()
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(specials, r):
			special = true
		default:
			// 字符集外的字符直接拒绝
			return passwordErr()
		}
	}
	if !upper || !lower || !digit || !special {
		return passwordErr()
	}
	return nil
}

func passwordErr() error {
	return apperr.BadRequest("Password should be between 6-12 characters and consist of uppercase, lowercase, number and special characters")
}

func Name(name string) error {
	if name == "" {
		return apperr.BadRequest("Name is required")
	}
	if len(name) > 50 {
		return apperr.BadRequest("Name must be less than 50 characters")
	}
	return nil
}

func Phone(phone string) error {
	if len(phone) > 50 {
		return apperr.BadRequest("Phone must be less than 50 characters")
	}
	return nil
}

func UserType(t string) error {
	if !domain.IsMaritimeRole(t) {
		return apperr.BadRequest("Invalid user type")
	}
	return nil
}

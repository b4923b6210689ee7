package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("captain@mnavy.com"))
	assert.NoError(t, Email("a@b.net"))
	assert.NoError(t, Email("x@y.IN"))

	assert.Error(t, Email("not-an-email"))
	assert.Error(t, Email("a@b"))
	assert.Error(t, Email("a@b.org")) // TLD 不在白名单
	assert.Error(t, Email(""))
}

func TestEmailFormat(t *testing.T) {
	assert.NoError(t, EmailFormat("captain@mnavy.com"))
	assert.NoError(t, EmailFormat("legacy@fleet.org")) // 登录路径不做 TLD 白名单

	assert.Error(t, EmailFormat("not-an-email"))
	assert.Error(t, EmailFormat("a@b"))
	assert.Error(t, EmailFormat(""))
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("Abc123!x"))
	assert.NoError(t, Password("Zz9@zz"))

	assert.Error(t, Password("short"))          // 太短且缺类别
	assert.Error(t, Password("Abc123!toolong")) // 超 12 位
	assert.Error(t, Password("abc123!x"))       // 无大写
	assert.Error(t, Password("ABC123!X"))       // 无小写
	assert.Error(t, Password("Abcdef!x"))       // 无数字
	assert.Error(t, Password("Abc12345"))       // 无特殊字符
	assert.Error(t, Password("Abc123! x"))      // 空格不在字符集
}

func TestNamePhone(t *testing.T) {
	assert.NoError(t, Name("Nemo"))
	assert.Error(t, Name(""))

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, Name(string(long)))
	assert.Error(t, Phone(string(long)))
	assert.NoError(t, Phone(""))
}

func TestUserType(t *testing.T) {
	for _, ok := range []string{"SHIP_COMPANY_ADMIN", "SHIP_ADMIN", "CAPTAIN", "SECOND_OFFICER"} {
		assert.NoError(t, UserType(ok))
	}
	assert.Error(t, UserType("Admin")) // 管理员不是海事角色
	assert.Error(t, UserType("PIRATE"))
	assert.Error(t, UserType(""))
}

package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost 固定为 10：已有账号的哈希都是这个成本，改动会让
// 新旧哈希强度不一致（校验仍兼容，但没必要）
const bcryptCost = 10

func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	return string(b)
}

// CheckPassword 对任意历史成本的哈希都能校验
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

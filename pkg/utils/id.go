package utils

import (
	"math/rand"

	"github.com/google/uuid"
)

func NewID() string { return uuid.NewString() }

// GenerateOtp 生成 4 位数字验证码
func GenerateOtp() int { return 1000 + rand.Intn(9000) }

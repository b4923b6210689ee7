package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type Cache struct {
	RDB *redis.Client
	sf  singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	// single flight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(ctx, key, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Delete 写路径上的缓存失效
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	_ = c.RDB.Del(ctx, keys...).Err()
}

// ---- 密码重置 OTP ----

func otpKey(email string) string { return "otp:" + email }

func (c *Cache) PutOTP(ctx context.Context, email string, otp int, ttl time.Duration) error {
	return c.RDB.Set(ctx, otpKey(email), strconv.Itoa(otp), ttl).Err()
}

// TakeOTP 校验成功即消费，一次性使用
func (c *Cache) TakeOTP(ctx context.Context, email string, otp int) (bool, error) {
	s, err := c.RDB.Get(ctx, otpKey(email)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if s != strconv.Itoa(otp) {
		return false, nil
	}
	_ = c.RDB.Del(ctx, otpKey(email)).Err()
	return true, nil
}

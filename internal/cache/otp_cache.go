package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// MaxOTPAttempts is how many wrong codes burn a pending OTP
const MaxOTPAttempts = 5

// OTPCache stores pending one-time codes for phone sign-in
type OTPCache interface {
	Set(ctx context.Context, phone, code string, ttl time.Duration) error
	// Consume deletes the code and reports true only if it matched.
	Consume(ctx context.Context, phone, code string) (bool, error)
}

type otpCache struct {
	client *redis.Client
}

// NewOTPCache creates a new OTP cache
func NewOTPCache(client *redis.Client) OTPCache {
	return &otpCache{client: client}
}

func (c *otpCache) key(phone string) string {
	return fmt.Sprintf("otp:%s", phone)
}

func (c *otpCache) attemptsKey(phone string) string {
	return fmt.Sprintf("otp:%s:attempts", phone)
}

// consumeScript compares and deletes in one step so a code can only be used once.
// Returns 1 on match, 0 on mismatch, -1 when no code is pending.
var consumeScript = redis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if not stored then
	return -1
end
if stored == ARGV[1] then
	redis.call("DEL", KEYS[1], KEYS[2])
	return 1
end
local attempts = redis.call("INCR", KEYS[2])
redis.call("PEXPIRE", KEYS[2], redis.call("PTTL", KEYS[1]))
if attempts >= tonumber(ARGV[2]) then
	redis.call("DEL", KEYS[1], KEYS[2])
end
return 0
`)

func (c *otpCache) Set(ctx context.Context, phone, code string, ttl time.Duration) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.key(phone), code, ttl)
		pipe.Del(ctx, c.attemptsKey(phone))
		return nil
	})
	return err
}

func (c *otpCache) Consume(ctx context.Context, phone, code string) (bool, error) {
	res, err := consumeScript.Run(ctx, c.client, []string{c.key(phone), c.attemptsKey(phone)}, code, MaxOTPAttempts).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/dchahine/chatline_backend/models"
)

const otpKeyPrefix = "phone_otp:"

// claimScript performs the compare-and-remove in a single round trip
// so a concurrent re-issuance cannot slip between the read and the
// delete. ARGV[1] is the submitted code, ARGV[2] the current unix time.
var claimScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if not val then
	return "notfound"
end
local sep = string.find(val, ":")
local code = string.sub(val, 1, sep - 1)
local expires = tonumber(string.sub(val, sep + 1))
if tonumber(ARGV[2]) > expires then
	redis.call("DEL", KEYS[1])
	return "expired"
end
if code ~= ARGV[1] then
	return "mismatch"
end
redis.call("DEL", KEYS[1])
return "ok"
`)

// RedisOTPStore keeps codes in Redis so pending verifications survive
// a process restart. Keys carry a TTL of twice the code lifetime: the
// extra window lets Claim answer ErrOTPExpired instead of
// ErrOTPNotFound for recently lapsed codes, after which Redis evicts
// the key on its own.
type RedisOTPStore struct {
	client *redis.Client
}

// NewRedisOTPStore creates an OTP store backed by the given Redis client
func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func (s *RedisOTPStore) Save(ctx context.Context, otp models.PhoneOTP) error {
	ttl := time.Until(otp.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	val := fmt.Sprintf("%s:%d", otp.Code, otp.ExpiresAt.Unix())
	if err := s.client.Set(ctx, otpKeyPrefix+otp.Phone, val, 2*ttl).Err(); err != nil {
		return fmt.Errorf("failed to save verification code: %w", err)
	}
	return nil
}

func (s *RedisOTPStore) Claim(ctx context.Context, phone, code string, now time.Time) error {
	res, err := claimScript.Run(ctx, s.client, []string{otpKeyPrefix + phone}, code, now.Unix()).Text()
	if err != nil {
		return fmt.Errorf("failed to claim verification code: %w", err)
	}
	switch res {
	case "ok":
		return nil
	case "notfound":
		return ErrOTPNotFound
	case "expired":
		return ErrOTPExpired
	case "mismatch":
		return ErrOTPMismatch
	default:
		return fmt.Errorf("unexpected claim result %q", res)
	}
}

// PurgeExpired is a no-op for Redis, key TTLs handle eviction.
func (s *RedisOTPStore) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

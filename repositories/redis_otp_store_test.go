package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dchahine/chatline_backend/models"
)

func newRedisStore(t *testing.T) *RedisOTPStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisOTPStore(client)
}

func TestRedisOTPStoreClaimSucceedsOnce(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()
	now := time.Now()

	record := models.PhoneOTP{Phone: "+15550001", Code: "123456", ExpiresAt: now.Add(5 * time.Minute)}
	require.NoError(t, store.Save(ctx, record))

	assert.NoError(t, store.Claim(ctx, "+15550001", "123456", now))
	assert.ErrorIs(t, store.Claim(ctx, "+15550001", "123456", now), ErrOTPNotFound)
}

func TestRedisOTPStoreClaimBeforeIssuance(t *testing.T) {
	store := newRedisStore(t)

	err := store.Claim(context.Background(), "+15550002", "123456", time.Now())
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestRedisOTPStoreClaimExpired(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()
	now := time.Now()

	record := models.PhoneOTP{Phone: "+15550003", Code: "123456", ExpiresAt: now.Add(5 * time.Minute)}
	require.NoError(t, store.Save(ctx, record))

	// The key TTL outlives the code lifetime, so a lapsed code still
	// answers Expired rather than NotFound
	later := now.Add(6 * time.Minute)
	assert.ErrorIs(t, store.Claim(ctx, "+15550003", "123456", later), ErrOTPExpired)

	// Expiry detection purged the record
	assert.ErrorIs(t, store.Claim(ctx, "+15550003", "123456", now), ErrOTPNotFound)
}

func TestRedisOTPStoreClaimMismatchKeepsRecord(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()
	now := time.Now()

	record := models.PhoneOTP{Phone: "+15550004", Code: "123456", ExpiresAt: now.Add(5 * time.Minute)}
	require.NoError(t, store.Save(ctx, record))

	assert.ErrorIs(t, store.Claim(ctx, "+15550004", "654321", now), ErrOTPMismatch)
	assert.NoError(t, store.Claim(ctx, "+15550004", "123456", now))
}

func TestRedisOTPStoreSaveOverwrites(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, models.PhoneOTP{Phone: "+15550005", Code: "111111", ExpiresAt: now.Add(5 * time.Minute)}))
	require.NoError(t, store.Save(ctx, models.PhoneOTP{Phone: "+15550005", Code: "222222", ExpiresAt: now.Add(5 * time.Minute)}))

	assert.ErrorIs(t, store.Claim(ctx, "+15550005", "111111", now), ErrOTPMismatch)
	assert.NoError(t, store.Claim(ctx, "+15550005", "222222", now))
}

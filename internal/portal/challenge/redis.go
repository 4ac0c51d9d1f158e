package challenge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "portal:challenge:"

// redeemScript atomically performs GET → compare → DEL so that two
// concurrent redeems of the same code cannot both succeed.
//
// KEYS[1] = challenge key, ARGV[1] = supplied code.
// Returns 1 on consume, 0 otherwise.
var redeemScript = redis.NewScript(`
local stored = redis.call('GET', KEYS[1])
if not stored then
  return 0
end
if stored ~= ARGV[1] then
  return 0
end
redis.call('DEL', KEYS[1])
return 1
`)

// RedisIssuer stores active codes in Redis with a TTL, for deployments where
// many portal instances serve independent sessions. Supersede-on-issue comes
// free from SET overwriting the key.
type RedisIssuer struct {
	rdb        *redis.Client
	codeLength int
	ttl        time.Duration
}

// NewRedisIssuer constructs a RedisIssuer. Non-positive parameters fall back
// to the package defaults.
func NewRedisIssuer(rdb *redis.Client, codeLength int, ttl time.Duration) *RedisIssuer {
	if codeLength <= 0 {
		codeLength = DefaultCodeLength
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisIssuer{rdb: rdb, codeLength: codeLength, ttl: ttl}
}

func (i *RedisIssuer) key(subject string) string {
	return redisKeyPrefix + subject
}

func (i *RedisIssuer) Issue(ctx context.Context, subject string) (string, error) {
	code, err := GenerateCode(i.codeLength)
	if err != nil {
		return "", err
	}

	if err := i.rdb.Set(ctx, i.key(subject), code, i.ttl).Err(); err != nil {
		return "", fmt.Errorf("store challenge: %w", err)
	}
	return code, nil
}

func (i *RedisIssuer) Redeem(ctx context.Context, subject, suppliedCode string) (bool, error) {
	supplied := strings.TrimSpace(suppliedCode)

	res, err := redeemScript.Run(ctx, i.rdb, []string{i.key(subject)}, supplied).Int()
	if err != nil {
		return false, fmt.Errorf("redeem challenge: %w", err)
	}
	return res == 1, nil
}

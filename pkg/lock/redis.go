package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"go-careers-backend/pkg/logger"
)

// releaseScript deletes the key only if it still holds our token
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// Redis shares bulk locks across every API instance.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, prefix: "lock:"}
}

func (r *Redis) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	redisKey := r.prefix + key
	token := uuid.NewString()

	acquired, err := r.client.SetNX(ctx, redisKey, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !acquired {
		return nil, false, nil
	}

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			// The request context may already be cancelled
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := r.client.Eval(releaseCtx, releaseScript, []string{redisKey}, token).Err(); err != nil {
				logger.Log.Warn("Failed to release bulk lock", "key", redisKey, "error", err)
			}
		})
	}
	return unlock, true, nil
}

func (r *Redis) IsLocked(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

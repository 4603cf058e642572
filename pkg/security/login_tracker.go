package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // Failed attempts before a block
	AttemptWindow time.Duration // How long failed attempts are remembered
	BlockDuration time.Duration // How long a block lasts
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// Redis key patterns
const (
	failLoginUserPrefix    = "fail:login:user:"
	blockedLoginUserPrefix = "blocked:login:user:"
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

type attemptEntry struct {
	count        int
	expires      time.Time
	blockedUntil time.Time
}

// LoginTracker counts failed admin logins per email and blocks the account
// for a while once MaxAttempts is reached. State lives in Redis when a client
// is given, in process memory otherwise.
type LoginTracker struct {
	config LoginTrackerConfig
	client *goredis.Client
	now    func() time.Time

	mu       sync.Mutex
	attempts map[string]*attemptEntry
}

func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig) *LoginTracker {
	if config.MaxAttempts <= 0 {
		config = DefaultLoginTrackerConfig()
	}
	return &LoginTracker{
		config:   config,
		client:   client,
		now:      time.Now,
		attempts: make(map[string]*attemptEntry),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsBlocked checks if the given email is currently blocked
func (lt *LoginTracker) IsBlocked(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if lt.client == nil {
		lt.mu.Lock()
		defer lt.mu.Unlock()
		entry, ok := lt.attempts[email]
		return ok && lt.now().Before(entry.blockedUntil), nil
	}

	exists, err := lt.client.Exists(ctx, blockedLoginUserPrefix+email).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check user block: %w", err)
	}
	return exists > 0, nil
}

// RecordFailedAttempt records a failed login attempt and reports whether the
// account is now blocked
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if lt.client == nil {
		return lt.recordInMemory(email), nil
	}

	ttlSeconds := int(lt.config.AttemptWindow.Seconds())
	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{failLoginUserPrefix + email}, ttlSeconds).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment user counter: %w", err)
	}
	count, ok := result.(int64)
	if !ok {
		return false, errors.New("unexpected result type from Lua script")
	}

	if int(count) < lt.config.MaxAttempts {
		return false, nil
	}
	if err := lt.client.Set(ctx, blockedLoginUserPrefix+email, "1", lt.config.BlockDuration).Err(); err != nil {
		return true, fmt.Errorf("failed to set user block: %w", err)
	}
	return true, nil
}

func (lt *LoginTracker) recordInMemory(email string) bool {
	now := lt.now()

	lt.mu.Lock()
	defer lt.mu.Unlock()

	// Drop stale entries so the map only holds recent failures
	for key, entry := range lt.attempts {
		if now.After(entry.expires) && now.After(entry.blockedUntil) {
			delete(lt.attempts, key)
		}
	}

	entry, ok := lt.attempts[email]
	if !ok {
		entry = &attemptEntry{expires: now.Add(lt.config.AttemptWindow)}
		lt.attempts[email] = entry
	}
	entry.count++

	if entry.count >= lt.config.MaxAttempts {
		entry.blockedUntil = now.Add(lt.config.BlockDuration)
		return true
	}
	return false
}

// ClearAttempts forgets failed attempts after a successful login
func (lt *LoginTracker) ClearAttempts(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if lt.client == nil {
		lt.mu.Lock()
		delete(lt.attempts, email)
		lt.mu.Unlock()
		return nil
	}

	if err := lt.client.Del(ctx, failLoginUserPrefix+email).Err(); err != nil {
		return fmt.Errorf("failed to clear user attempts: %w", err)
	}
	return nil
}

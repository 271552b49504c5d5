// internal/pkg/session/rate_limiter.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxLoginAttempts   = int64(5)
	loginAttemptWindow = 15 * time.Minute
)

// LoginLimiter throttles login attempts per client address and email before
// they reach the backend.
type LoginLimiter struct {
	client *redis.Client
}

func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

func loginKey(ip, email string) string {
	return fmt.Sprintf("console:ratelimit:login:%s:%s", ip, email)
}

// CheckLoginAttempt counts one attempt and reports whether it is allowed
// together with the attempts left in the window.
func (r *LoginLimiter) CheckLoginAttempt(ctx context.Context, ip, email string) (bool, int64, error) {
	key := loginKey(ip, email)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment login attempt: %w", err)
	}

	// First attempt opens the window. A counter left without a TTL would
	// lock the pair out for good, so drop it when the expiry fails.
	if count == 1 {
		if err := r.client.Expire(ctx, key, loginAttemptWindow).Err(); err != nil {
			r.client.Del(ctx, key)
			return false, 0, fmt.Errorf("failed to set login attempt window: %w", err)
		}
	}

	remaining := maxLoginAttempts - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= maxLoginAttempts, remaining, nil
}

// ResetLoginAttempts clears the counter after a successful login.
func (r *LoginLimiter) ResetLoginAttempts(ctx context.Context, ip, email string) error {
	return r.client.Del(ctx, loginKey(ip, email)).Err()
}

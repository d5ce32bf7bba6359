package authinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/remora-hq/staffdesk/pkg/iam/auth"
	"github.com/remora-hq/staffdesk/pkg/logx"
)

// RedisRateLimiter implementación en Redis del RateLimiter.
// Contador de ventana fija: INCR + EXPIRE en la primera petición de la
// ventana. Best-effort: si Redis no responde, la petición pasa.
type RedisRateLimiter struct {
	client *redis.Client
}

// NewRedisRateLimiter crea un rate limiter sobre Redis
func NewRedisRateLimiter(client *redis.Client) auth.RateLimiter {
	return &RedisRateLimiter{
		client: client,
	}
}

// Allow incrementa el contador del identificador y compara con el límite.
// Fail-open: un error de infraestructura nunca bloquea usuarios legítimos.
func (rl *RedisRateLimiter) Allow(ctx context.Context, identifier string, limit int, window time.Duration) bool {
	key := fmt.Sprintf("rate_limit:%s", identifier)

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		logx.WithFields(logx.Fields{"identifier": identifier}).
			Warnf("rate limiter unreachable, allowing request: %v", err)
		return true
	}

	if count == 1 {
		if err := rl.client.Expire(ctx, key, window).Err(); err != nil {
			logx.WithFields(logx.Fields{"identifier": identifier}).
				Warnf("failed to set rate limit window: %v", err)
		}
	}

	return count <= int64(limit)
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/metroworks/issue-service/pkg/util"
)

// IssueRateLimit caps issue creation per client IP per day using a Redis
// INCR/EXPIRE counter. A nil client or non-positive limit disables it, and a
// Redis failure lets the request through rather than blocking reports.
func IssueRateLimit(client *redis.Client, limit int, logger *zap.Logger) fiber.Handler {
	if client == nil || limit <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		key := "ratelimit:issues:" + c.IP()
		count, err := client.Incr(c.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := client.Expire(c.Context(), key, 24*time.Hour).Err(); err != nil {
				logger.Warn("rate limit expire failed", zap.Error(err))
			}
		}
		if count > int64(limit) {
			return apperrors.NewTooManyRequests("daily issue limit reached")
		}
		return c.Next()
	}
}

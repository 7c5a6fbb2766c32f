package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"api/config"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/redis/go-redis/v9"
)

// SubmissionCooldown throttles response submissions per session using a
// redis counter. A session exceeding the threshold within the window is
// locked out for the configured cooldown.
type SubmissionCooldown struct {
	client *redis.Client
	cfg    config.SubmissionCooldownConfig
}

// NewSubmissionCooldown connects to redis using the configured address.
// Returns nil when REDIS_ADDR is unset, in which case the middleware is a
// pass-through.
func NewSubmissionCooldown(cfg config.SubmissionCooldownConfig) *SubmissionCooldown {
	if config.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})
	return &SubmissionCooldown{client: client, cfg: cfg}
}

// Allow reports whether the session may submit another response
func (sc *SubmissionCooldown) Allow(ctx context.Context, sessionID string) bool {
	lockKey := fmt.Sprintf("cooldown:lock:%s", sessionID)
	if exists, err := sc.client.Exists(ctx, lockKey).Result(); err == nil && exists > 0 {
		return false
	}

	countKey := fmt.Sprintf("cooldown:count:%s", sessionID)
	count, err := sc.client.Incr(ctx, countKey).Result()
	if err != nil {
		// Redis being down should not block participants
		log.Printf("Cooldown counter error for session %s: %v", sessionID, err)
		return true
	}
	if count == 1 {
		sc.client.Expire(ctx, countKey, sc.cfg.Window)
	}

	if count > int64(sc.cfg.AttemptsThreshold) {
		sc.client.Set(ctx, lockKey, 1, sc.cfg.CooldownDuration)
		return false
	}
	return true
}

type submissionKeyPayload struct {
	SessionID string `json:"sessionId"`
}

// submissionKey identifies the submitter: the sessionId from the JSON body
// when present, the client IP otherwise. The body is bound with
// ShouldBindBodyWith so the handler can bind it again afterwards.
func submissionKey(c *gin.Context) string {
	var payload submissionKeyPayload
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err == nil && payload.SessionID != "" {
		return payload.SessionID
	}
	return c.ClientIP()
}

// SubmissionCooldownMiddleware rejects over-eager response submissions with
// a 429. Sessions are identified by the sessionId field of the JSON body,
// falling back to the client IP when absent.
func SubmissionCooldownMiddleware(sc *SubmissionCooldown) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sc == nil {
			c.Next()
			return
		}

		if !sc.Allow(c.Request.Context(), submissionKey(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many submissions. Please slow down.",
			})
			return
		}
		c.Next()
	}
}

package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Spok95/sales-training-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter: счётчик попыток в Redis (INCR и срок жизни окна одним скриптом).
// Без клиента или при недоступном Redis запросы пропускаются.
type RateLimiter struct {
	rdb *redis.Client
	log *logging.Log
}

func NewRateLimiter(rdb *redis.Client, log *logging.Log) *RateLimiter {
	return &RateLimiter{rdb: rdb, log: log}
}

// hitScript увеличивает счётчик и ставит срок жизни, если его нет. Ключ без TTL
// (например, после сбоя между командами) получает срок при следующем запросе.
var hitScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {n, ttl}
`)

func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	if rl == nil || rl.rdb == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())

		res, err := hitScript.Run(c, rl.rdb, []string{key}, window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			rl.log.Base.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if res[0] > int64(limit) {
			retry := time.Duration(res[1]) * time.Millisecond
			c.Header("Retry-After", fmt.Sprintf("%.0f", retry.Seconds()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

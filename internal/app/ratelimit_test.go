//go:build testutil
// +build testutil

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Spok95/sales-training-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()
	rc, err := tcredis.RunContainer(ctx, tc.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Terminate(context.Background()) })

	uri, err := rc.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func limitedRouter(rdb *redis.Client, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rl := NewRateLimiter(rdb, logging.Nop())
	r.POST("/login", rl.Limit("login", limit, time.Minute), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func loginFrom(r http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":40000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	rdb := startRedis(t)
	r := limitedRouter(rdb, 2)

	assert.Equal(t, http.StatusNoContent, loginFrom(r, "192.0.2.1").Code)
	assert.Equal(t, http.StatusNoContent, loginFrom(r, "192.0.2.1").Code)
	w := loginFrom(r, "192.0.2.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, loginFrom(r, "192.0.2.2").Code)
}

func TestRateLimiter_KeyWithoutTTLGetsExpiry(t *testing.T) {
	rdb := startRedis(t)
	ctx := context.Background()
	key := "rate_limit:login:192.0.2.9"
	// счётчик, оставшийся без срока жизни
	require.NoError(t, rdb.Set(ctx, key, 50, 0).Err())

	w := loginFrom(limitedRouter(rdb, 10), "192.0.2.9")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	ttl, err := rdb.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute, "ttl = %v", ttl)
}

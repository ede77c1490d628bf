package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Spok95/sales-training-backend/internal/app"
	"github.com/Spok95/sales-training-backend/internal/auth"
	"github.com/Spok95/sales-training-backend/internal/config"
	"github.com/Spok95/sales-training-backend/internal/db"
	"github.com/Spok95/sales-training-backend/internal/logging"
	"github.com/Spok95/sales-training-backend/internal/materials"
	"github.com/Spok95/sales-training-backend/internal/observability"
	"github.com/Spok95/sales-training-backend/internal/progress"
	"github.com/Spok95/sales-training-backend/internal/render"
	"github.com/Spok95/sales-training-backend/internal/roster"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, cfg.Release)
	if err != nil {
		lg.Base.Warn("sentry init failed", zap.Error(err))
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Base.Fatal("db open", zap.Error(err))
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(ctx, database); err != nil {
		observability.CaptureErr(err)
		lg.Base.Fatal("migrate", zap.Error(err))
	}

	r, err := loadRoster(cfg.RosterFile)
	if err != nil {
		lg.Base.Fatal("roster", zap.Error(err))
	}
	renderer, err := render.New(render.Options{ExportsDir: cfg.ExportsDir, Converter: cfg.PDFConverter}, lg)
	if err != nil {
		lg.Base.Fatal("renderer", zap.Error(err))
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	var limiter *app.RateLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			lg.Base.Warn("redis unavailable, login rate limit is best effort", zap.Error(err))
		}
		limiter = app.NewRateLimiter(rdb, lg)
	}

	// отладочный вывод gin только в dev с уровнем debug
	if cfg.Env == "prod" || !lg.Level.Enabled(zapcore.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := app.NewRouter(app.Deps{
		Progress:       progress.NewService(database, lg).WithLocation(cfg.Location),
		Auth:           auth.NewAuthenticator(auth.DBLookup(database), hasher),
		Seeder:         roster.NewSeeder(database, hasher, r, lg),
		Materials:      materials.NewService(database, renderer, lg),
		DB:             database,
		Limiter:        limiter,
		Log:            lg,
		AllowedOrigins: cfg.AllowedOrigins,
		LoginLimit:     cfg.LoginRateLimit,
	})

	srv := app.StartHTTP(ctx, cfg.HTTPAddr, router, lg)
	srv.Wait()
}

func loadRoster(path string) (*roster.Roster, error) {
	if path == "" {
		return roster.Default()
	}
	return roster.Load(path)
}

package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Spok95/sales-training-backend/internal/db"
	"github.com/Spok95/sales-training-backend/internal/logging"
	"github.com/Spok95/sales-training-backend/internal/materials"
	"github.com/Spok95/sales-training-backend/internal/metrics"
	"github.com/Spok95/sales-training-backend/internal/models"
	"github.com/Spok95/sales-training-backend/internal/progress"
	"github.com/Spok95/sales-training-backend/internal/render"
	"github.com/Spok95/sales-training-backend/internal/roster"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ProgressService interface {
	GetProgress(ctx context.Context, email string) (*progress.View, error)
	UpdateModule(ctx context.Context, email string, module int, status models.ModuleStatus, stats *models.ModuleStatsPatch) (*models.ModuleProgress, error)
	UpdateStats(ctx context.Context, email string, patch models.StatsPatch) (*models.UserStats, error)
	RecordSession(ctx context.Context, email string, in progress.SessionInput) (*models.TrainingSession, error)
	TeamStats(ctx context.Context) ([]models.UserStats, error)
	TeamWorkbook(ctx context.Context) ([]byte, string, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.UserStats, error)
}

type Seeder interface {
	SeedAll(ctx context.Context) (*db.SeedReport, error)
	SeedCEO(ctx context.Context) (*db.SeedReport, error)
	Roster() *roster.Roster
}

type MaterialService interface {
	List(ctx context.Context, f models.MaterialFilter) ([]models.TrainingMaterial, error)
	Page(ctx context.Context, id int64) (string, error)
	PDF(ctx context.Context, id int64) (*render.PDF, error)
	Init(ctx context.Context) (*materials.InitResult, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Deps struct {
	Progress  ProgressService
	Auth      Authenticator
	Seeder    Seeder
	Materials MaterialService
	DB        Pinger
	Limiter   *RateLimiter
	Log       *logging.Log

	AllowedOrigins []string
	LoginLimit     int
}

type handlers struct {
	Deps
	seeding *keyLock
}

func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	h := &handlers{Deps: d, seeding: newKeyLock()}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestMetrics(), requestLogger(d.Log))

	config := cors.DefaultConfig()
	if len(d.AllowedOrigins) == 0 || (len(d.AllowedOrigins) == 1 && d.AllowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = d.AllowedOrigins
		config.AllowCredentials = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader}
	config.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	config.ExposeHeaders = []string{"Content-Disposition", requestIDHeader}
	r.Use(cors.New(config))

	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.POST("/login", d.Limiter.Limit("login", d.LoginLimit, time.Minute), h.login)
	r.GET("/check-session", h.checkSession)
	r.POST("/logout", h.logout)

	sp := r.Group("/salesperson/:email")
	sp.GET("", h.getProgress)
	sp.POST("/module/:n", h.updateModule)
	sp.PUT("/stats", h.updateStats)
	sp.POST("/session", h.recordSession)

	r.GET("/team/stats", h.teamStats)
	r.GET("/team/stats/export", h.teamExport)

	r.GET("/init-ceo", h.initCEO)
	r.GET("/init-all-team", h.initAllTeam)
	r.POST("/api/init-training-materials", h.initMaterials)

	r.GET("/materials", h.listMaterials)
	r.GET("/materials/:id", h.materialPage)
	r.GET("/materials/:id/download-pdf", h.materialPDF)

	return r
}

func (h *handlers) health(c *gin.Context) {
	if h.DB == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	start := time.Now()
	err := h.DB.PingContext(ctx)
	metrics.ObserveDBPing(time.Since(start))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSON: пустое тело допустимо и оставляет dst нулевым.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return models.Invalid("", "Invalid JSON body")
	}
	return nil
}

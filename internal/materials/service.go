package materials

import (
	"context"
	"database/sql"

	"github.com/Spok95/sales-training-backend/internal/ctxutil"
	"github.com/Spok95/sales-training-backend/internal/db"
	"github.com/Spok95/sales-training-backend/internal/logging"
	"github.com/Spok95/sales-training-backend/internal/metrics"
	"github.com/Spok95/sales-training-backend/internal/models"
	"github.com/Spok95/sales-training-backend/internal/render"
	"go.uber.org/zap"
)

type Service struct {
	db       *sql.DB
	renderer *render.Renderer
	log      *logging.Log
}

func NewService(database *sql.DB, renderer *render.Renderer, log *logging.Log) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{db: database, renderer: renderer, log: log}
}

func (s *Service) List(ctx context.Context, f models.MaterialFilter) ([]models.TrainingMaterial, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListMaterialsContext(ctx, s.db, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*models.TrainingMaterial, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.GetMaterialContext(ctx, s.db, id)
}

// Page: HTML-страница материала.
func (s *Service) Page(ctx context.Context, id int64) (string, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(m)
}

func (s *Service) PDF(ctx context.Context, id int64) (*render.PDF, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderer.ExportPDF(ctx, m)
}

type InitResult struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
}

// Init заполняет пустой каталог встроенными материалами.
func (s *Service) Init(ctx context.Context) (res *InitResult, err error) {
	defer func() { metrics.ObserveSeed("materials", err) }()

	ctx, cancel := ctxutil.WithTimeout(ctx, ctxutil.DefaultSeedTimeout)
	defer cancel()

	n, err := db.CountMaterialsContext(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return &InitResult{Status: "already_initialized", Message: "Training materials already exist in database"}, nil
	}
	catalog, err := Catalog()
	if err != nil {
		return nil, err
	}
	inserted, err := db.SeedMaterialsContext(ctx, s.db, catalog)
	if err != nil {
		return nil, err
	}
	s.log.FromContext(ctx).Info("training materials initialized", zap.Int("inserted", inserted))
	return &InitResult{Status: "success", Message: "Training materials initialized successfully", Inserted: inserted}, nil
}

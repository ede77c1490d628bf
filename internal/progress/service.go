package progress

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Spok95/sales-training-backend/internal/ctxutil"
	"github.com/Spok95/sales-training-backend/internal/db"
	"github.com/Spok95/sales-training-backend/internal/logging"
	"github.com/Spok95/sales-training-backend/internal/models"
	"go.uber.org/zap"
)

type Service struct {
	db  *sql.DB
	log *logging.Log
	loc *time.Location
	now func() time.Time
}

func NewService(database *sql.DB, log *logging.Log) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{db: database, log: log, loc: time.UTC, now: func() time.Time { return time.Now().UTC() }}
}

// WithLocation задаёт часовой пояс отчётов; в базе время остаётся в UTC.
func (s *Service) WithLocation(loc *time.Location) *Service {
	if loc != nil {
		s.loc = loc
	}
	return s
}

// GetProgress создаёт строку статистики для нового email и возвращает полную сводку.
func (s *Service) GetProgress(ctx context.Context, email string) (*View, error) {
	email, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctxutil.WithEmail(ctx, email))
	defer cancel()

	var (
		stats    *models.UserStats
		rows     []models.ModuleProgress
		sessions []models.TrainingSession
	)
	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var created bool
		var err error
		stats, created, err = db.EnsureStatsContext(ctx, tx, email, models.DisplayNameFromEmail(email))
		if err != nil {
			return err
		}
		if created {
			s.log.FromContext(ctx).Info("stats row created on first read")
		}
		if rows, err = db.ListProgressContext(ctx, tx, email); err != nil {
			return err
		}
		sessions, err = db.ListSessionsContext(ctx, tx, email)
		return err
	})
	if err != nil {
		return nil, err
	}
	v := BuildView(*stats, rows, sessions)
	return &v, nil
}

// UpdateModule двигает статус модуля вперёд и сливает переданные счётчики.
// Пустой статус трактуется как in_progress.
func (s *Service) UpdateModule(ctx context.Context, email string, module int, status models.ModuleStatus, stats *models.ModuleStatsPatch) (*models.ModuleProgress, error) {
	email, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if !models.ValidModule(module) {
		return nil, models.Invalid("module_number", "must be between 1 and 12")
	}
	if status == "" {
		status = models.InProgress
	}
	if !status.Valid() {
		return nil, models.Invalid("status", "must be one of not_started, in_progress, completed")
	}
	if err := stats.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctxutil.WithEmail(ctx, email))
	defer cancel()

	var out *models.ModuleProgress
	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		p, err := db.LockProgressContext(ctx, tx, email, module)
		if err != nil {
			return err
		}
		before := p.Status
		p.Advance(status, s.now())
		p.Merge(stats)
		if out, err = db.SaveProgressContext(ctx, tx, p); err != nil {
			return err
		}
		if before != out.Status {
			s.log.FromContext(ctx).Info("module status changed",
				zap.Int("module", module), zap.String("from", string(before)), zap.String("to", string(out.Status)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStats пишет только переданные поля; строка создаётся при отсутствии.
func (s *Service) UpdateStats(ctx context.Context, email string, patch models.StatsPatch) (*models.UserStats, error) {
	email, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctxutil.WithEmail(ctx, email))
	defer cancel()

	var out *models.UserStats
	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, _, err := db.EnsureStatsContext(ctx, tx, email, models.DisplayNameFromEmail(email)); err != nil {
			return err
		}
		var err error
		out, err = db.ApplyStatsPatchContext(ctx, tx, email, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type SessionInput struct {
	Title        string `json:"title"`
	Date         string `json:"date"`
	Notes        string `json:"notes"`
	ModuleNumber *int   `json:"module_number"`
}

// RecordSession добавляет запись в журнал занятий; дата по умолчанию: текущий момент.
func (s *Service) RecordSession(ctx context.Context, email string, in SessionInput) (*models.TrainingSession, error) {
	email, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.Invalid("title", "is required")
	}
	if in.ModuleNumber != nil && !models.ValidModule(*in.ModuleNumber) {
		return nil, models.Invalid("module_number", "must be between 1 and 12")
	}
	date := s.now()
	if strings.TrimSpace(in.Date) != "" {
		if date, err = ParseSessionDate(in.Date); err != nil {
			return nil, err
		}
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctxutil.WithEmail(ctx, email))
	defer cancel()

	return db.InsertSessionContext(ctx, s.db, models.TrainingSession{
		Email:        email,
		Title:        title,
		Date:         date,
		Notes:        in.Notes,
		ModuleNumber: in.ModuleNumber,
	})
}

// TeamStats: статистика всех пользователей, по email.
func (s *Service) TeamStats(ctx context.Context) ([]models.UserStats, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	out, err := db.ListStatsContext(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.UserStats{}
	}
	return out, nil
}

var sessionDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseSessionDate понимает RFC 3339 и ISO-дату без зоны (считается UTC).
func ParseSessionDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range sessionDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, models.Invalid("date", "must be an ISO 8601 date-time")
}

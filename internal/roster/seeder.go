package roster

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Spok95/sales-training-backend/internal/auth"
	"github.com/Spok95/sales-training-backend/internal/ctxutil"
	"github.com/Spok95/sales-training-backend/internal/db"
	"github.com/Spok95/sales-training-backend/internal/logging"
	"github.com/Spok95/sales-training-backend/internal/metrics"
	"github.com/Spok95/sales-training-backend/internal/models"
	"go.uber.org/zap"
)

// Seeder применяет ростер к базе; повторный запуск даёт то же состояние.
type Seeder struct {
	db     *sql.DB
	hasher auth.Hasher
	roster *Roster
	log    *logging.Log
	now    func() time.Time
}

func NewSeeder(database *sql.DB, hasher auth.Hasher, r *Roster, log *logging.Log) *Seeder {
	if log == nil {
		log = logging.Nop()
	}
	return &Seeder{db: database, hasher: hasher, roster: r, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Seeder) Roster() *Roster { return s.roster }

func (s *Seeder) SeedAll(ctx context.Context) (*db.SeedReport, error) {
	return s.Seed(ctx, s.roster, "team")
}

func (s *Seeder) SeedCEO(ctx context.Context) (*db.SeedReport, error) {
	return s.Seed(ctx, s.roster.CEO(), "ceo")
}

func (s *Seeder) Seed(ctx context.Context, r *Roster, kind string) (rep *db.SeedReport, err error) {
	defer func() { metrics.ObserveSeed(kind, err) }()

	ctx, cancel := ctxutil.WithTimeout(ctxutil.WithOp(ctx, "seed_"+kind), ctxutil.DefaultSeedTimeout)
	defer cancel()

	members := make([]db.SeedMember, 0, len(r.Members))
	for _, m := range r.Members {
		hash, err := s.passwordHash(ctx, m)
		if err != nil {
			return nil, err
		}
		members = append(members, db.SeedMember{
			Email:         m.Email,
			Name:          m.Name,
			Role:          m.Role,
			Completed:     m.Completed,
			CurrentModule: m.CurrentModule,
			PasswordHash:  hash,
		})
	}

	rep, err = db.SeedMembersContext(ctx, s.db, members, s.now())
	if err != nil {
		return nil, err
	}
	for _, res := range rep.Members {
		s.log.FromContext(ctx).Info("roster member seeded",
			zap.String("user", logging.MaskEmail(res.Email)),
			zap.Bool("created", res.Created),
			zap.Int("modules_inserted", res.ModulesInserted),
			zap.Int("modules_promoted", res.ModulesPromoted))
	}
	return rep, nil
}

// passwordHash возвращает nil, если пароль не задан или уже совпадает с сохранённым хешем
// (bcrypt солит каждый хеш, перехеширование ломало бы идемпотентность).
func (s *Seeder) passwordHash(ctx context.Context, m Member) (*string, error) {
	if m.Password == "" {
		return nil, nil
	}
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	cur, err := db.GetStatsContext(dbCtx, s.db, m.Email)
	switch {
	case err == nil && cur.PasswordHash != nil:
		if s.hasher.Compare(*cur.PasswordHash, m.Password) == nil {
			return nil, nil
		}
	case err != nil && !errors.Is(err, models.ErrNotFound):
		return nil, err
	}
	h, err := s.hasher.Hash(m.Password)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

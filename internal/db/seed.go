package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Spok95/sales-training-backend/internal/models"
	"github.com/lib/pq"
)

// SeedMember: участник ростера с уже посчитанным хешем пароля.
type SeedMember struct {
	Email         string
	Name          string
	Role          models.Role
	Completed     []int
	CurrentModule int
	PasswordHash  *string
}

type SeedResult struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Created         bool   `json:"created"`
	ModulesInserted int    `json:"modules_inserted"`
	ModulesPromoted int    `json:"modules_promoted"`
}

type SeedReport struct {
	Members  []SeedResult `json:"members"`
	SeededAt time.Time    `json:"seeded_at"`
}

// SeedMembersContext приводит пользователей к состоянию ростера за одну транзакцию.
// name/role/current_module/пароль перезаписываются; пустой пароль оставляет старый хеш.
// Недостающие модули досоздаются, отмеченные в ростере как пройденные повышаются
// до completed. Понижения статуса и удаления нет: повторный вызов ничего не меняет.
func SeedMembersContext(ctx context.Context, database *sql.DB, members []SeedMember, now time.Time) (*SeedReport, error) {
	report := &SeedReport{SeededAt: now, Members: make([]SeedResult, 0, len(members))}
	err := WithTx(ctx, database, func(tx *sql.Tx) error {
		for _, m := range members {
			res, err := seedMember(ctx, tx, m, now)
			if err != nil {
				return fmt.Errorf("seed %s: %w", m.Email, err)
			}
			report.Members = append(report.Members, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func seedMember(ctx context.Context, tx *sql.Tx, m SeedMember, now time.Time) (SeedResult, error) {
	res := SeedResult{Email: m.Email, Name: m.Name}

	var hash sql.NullString
	if m.PasswordHash != nil {
		hash = sql.NullString{String: *m.PasswordHash, Valid: true}
	}
	// xmax = 0 только у только что вставленной строки
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO salesperson_stats (user_email, name, role, password_hash, current_module, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_email) DO UPDATE
		SET name = EXCLUDED.name,
		    role = EXCLUDED.role,
		    password_hash = COALESCE(EXCLUDED.password_hash, salesperson_stats.password_hash),
		    current_module = EXCLUDED.current_module,
		    updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)
	`, m.Email, m.Name, string(m.Role), hash, m.CurrentModule, now).Scan(&res.Created); err != nil {
		return res, fmt.Errorf("upsert stats: %w", err)
	}

	completed := make([]int64, 0, len(m.Completed))
	for _, n := range m.Completed {
		completed = append(completed, int64(n))
	}

	r, err := tx.ExecContext(ctx, `
		INSERT INTO module_progress (user_email, module_number, status, started_at, completed_at, created_at, updated_at)
		SELECT $1, n,
		       CASE WHEN n = ANY($2::int[]) THEN 'completed' ELSE 'not_started' END,
		       CASE WHEN n = ANY($2::int[]) THEN $3::timestamptz END,
		       CASE WHEN n = ANY($2::int[]) THEN $3::timestamptz END,
		       $3, $3
		FROM generate_series(1, $4::int) AS n
		ON CONFLICT (user_email, module_number) DO NOTHING
	`, m.Email, pq.Array(completed), now, models.ModuleCount)
	if err != nil {
		return res, fmt.Errorf("insert modules: %w", err)
	}
	inserted, _ := r.RowsAffected()
	res.ModulesInserted = int(inserted)

	r, err = tx.ExecContext(ctx, `
		UPDATE module_progress
		SET status = 'completed',
		    started_at = COALESCE(started_at, $3),
		    completed_at = COALESCE(completed_at, $3),
		    updated_at = $3
		WHERE user_email = $1
		  AND module_number = ANY($2::int[])
		  AND status <> 'completed'
	`, m.Email, pq.Array(completed), now)
	if err != nil {
		return res, fmt.Errorf("promote modules: %w", err)
	}
	promoted, _ := r.RowsAffected()
	res.ModulesPromoted = int(promoted)
	return res, nil
}

// SeedMaterialsContext вставляет каталог материалов; существующие (module, type) не трогает.
func SeedMaterialsContext(ctx context.Context, database *sql.DB, materials []models.TrainingMaterial) (int, error) {
	tx, err := database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO training_materials (module_number, material_type, title, subtitle, content, pdf_filename)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (module_number, material_type) DO NOTHING
	`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, m := range materials {
		var pdf sql.NullString
		if m.PDFFilename != nil {
			pdf = sql.NullString{String: *m.PDFFilename, Valid: true}
		}
		r, err := stmt.ExecContext(ctx, m.ModuleNumber, string(m.Type), m.Title, m.Subtitle, m.Content, pdf)
		if err != nil {
			return 0, fmt.Errorf("insert material %d/%s: %w", m.ModuleNumber, m.Type, err)
		}
		if n, _ := r.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

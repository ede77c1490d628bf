package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/sales-training-backend/internal/models"
)

// InsertSessionContext: журнал занятий только дополняется.
func InsertSessionContext(ctx context.Context, q Querier, s models.TrainingSession) (*models.TrainingSession, error) {
	var module sql.NullInt64
	if s.ModuleNumber != nil {
		module = sql.NullInt64{Int64: int64(*s.ModuleNumber), Valid: true}
	}
	out := s
	if err := q.QueryRowContext(ctx, `
		INSERT INTO training_sessions (user_email, session_title, session_date, notes, module_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, s.Email, s.Title, s.Date, s.Notes, module).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSessionsContext: история пользователя, новые сверху.
func ListSessionsContext(ctx context.Context, q Querier, email string) ([]models.TrainingSession, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, user_email, session_title, session_date, notes, module_number, created_at
		FROM training_sessions
		WHERE user_email = $1
		ORDER BY session_date DESC, id DESC
	`, email)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.TrainingSession, 0)
	for rows.Next() {
		var (
			s      models.TrainingSession
			module sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.Email, &s.Title, &s.Date, &s.Notes, &module, &s.CreatedAt); err != nil {
			return nil, err
		}
		if module.Valid {
			n := int(module.Int64)
			s.ModuleNumber = &n
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

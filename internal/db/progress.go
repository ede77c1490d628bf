package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Spok95/sales-training-backend/internal/models"
)

const progressColumns = `id, user_email, module_number, status, started_at, completed_at,
	total_calls, total_meetings, closed_deals, total_revenue, created_at, updated_at`

func scanProgress(r rowScanner) (*models.ModuleProgress, error) {
	var (
		p                  models.ModuleProgress
		started, completed sql.NullTime
	)
	if err := r.Scan(&p.ID, &p.Email, &p.ModuleNumber, &p.Status, &started, &completed,
		&p.TotalCalls, &p.TotalMeetings, &p.ClosedDeals, &p.TotalRevenue,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if started.Valid {
		p.StartedAt = &started.Time
	}
	if completed.Valid {
		p.CompletedAt = &completed.Time
	}
	return &p, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// ListProgressContext: сохранённые строки модулей пользователя (может быть меньше 12).
func ListProgressContext(ctx context.Context, q Querier, email string) ([]models.ModuleProgress, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+progressColumns+`
		FROM module_progress
		WHERE user_email = $1
		ORDER BY module_number
	`, email)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.ModuleProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// LockProgressContext гарантирует наличие строки (email, n) и берёт её под FOR UPDATE.
// Вызывать внутри транзакции.
func LockProgressContext(ctx context.Context, tx *sql.Tx, email string, n int) (*models.ModuleProgress, error) {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO module_progress (user_email, module_number)
		VALUES ($1, $2)
		ON CONFLICT (user_email, module_number) DO NOTHING
	`, email, n); err != nil {
		return nil, fmt.Errorf("ensure progress: %w", err)
	}
	p, err := scanProgress(tx.QueryRowContext(ctx, `
		SELECT `+progressColumns+`
		FROM module_progress
		WHERE user_email = $1 AND module_number = $2
		FOR UPDATE
	`, email, n))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return p, err
}

// SaveProgressContext записывает статус, отметки времени и счётчики строки.
func SaveProgressContext(ctx context.Context, q Querier, p *models.ModuleProgress) (*models.ModuleProgress, error) {
	out, err := scanProgress(q.QueryRowContext(ctx, `
		UPDATE module_progress
		SET status = $1, started_at = $2, completed_at = $3,
		    total_calls = $4, total_meetings = $5, closed_deals = $6, total_revenue = $7,
		    updated_at = now()
		WHERE user_email = $8 AND module_number = $9
		RETURNING `+progressColumns,
		p.Status, nullTime(p.StartedAt), nullTime(p.CompletedAt),
		p.TotalCalls, p.TotalMeetings, p.ClosedDeals, p.TotalRevenue,
		p.Email, p.ModuleNumber))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return out, err
}

// ListAllProgressContext: строки прогресса всей команды, по email и номеру модуля.
func ListAllProgressContext(ctx context.Context, q Querier) ([]models.ModuleProgress, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+progressColumns+` FROM module_progress ORDER BY user_email, module_number`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.ModuleProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Spok95/sales-training-backend/internal/models"
)

const statsColumns = `id, user_email, name, password_hash, role,
	total_calls, total_meetings, closed_deals,
	total_revenue, revenue_month, revenue_quarter, revenue_ytd,
	current_module, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStats(r rowScanner) (*models.UserStats, error) {
	var (
		s    models.UserStats
		hash sql.NullString
	)
	if err := r.Scan(&s.ID, &s.Email, &s.Name, &hash, &s.Role,
		&s.TotalCalls, &s.TotalMeetings, &s.ClosedDeals,
		&s.TotalRevenue, &s.RevenueMonth, &s.RevenueQuarter, &s.RevenueYTD,
		&s.CurrentModule, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if hash.Valid {
		s.PasswordHash = &hash.String
	}
	return &s, nil
}

// GetStatsContext: строка статистики по email; models.ErrNotFound, если её нет.
func GetStatsContext(ctx context.Context, q Querier, email string) (*models.UserStats, error) {
	s, err := scanStats(q.QueryRowContext(ctx, `SELECT `+statsColumns+` FROM salesperson_stats WHERE user_email = $1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return s, err
}

// EnsureStatsContext создаёт строку с нулевыми счётчиками, если её ещё нет.
// Параллельные вызовы для одного email дают ровно одну строку.
func EnsureStatsContext(ctx context.Context, q Querier, email, name string) (*models.UserStats, bool, error) {
	s, err := scanStats(q.QueryRowContext(ctx, `
		INSERT INTO salesperson_stats (user_email, name)
		VALUES ($1, $2)
		ON CONFLICT (user_email) DO NOTHING
		RETURNING `+statsColumns, email, name))
	if err == nil {
		return s, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("ensure stats: %w", err)
	}
	s, err = GetStatsContext(ctx, q, email)
	return s, false, err
}

// ApplyStatsPatchContext пишет только переданные поля патча и всегда обновляет updated_at.
func ApplyStatsPatchContext(ctx context.Context, q Querier, email string, p models.StatsPatch) (*models.UserStats, error) {
	sets := make([]string, 0, 10)
	args := make([]any, 0, 10)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.TotalCalls != nil {
		add("total_calls", *p.TotalCalls)
	}
	if p.TotalMeetings != nil {
		add("total_meetings", *p.TotalMeetings)
	}
	if p.ClosedDeals != nil {
		add("closed_deals", *p.ClosedDeals)
	}
	if p.TotalRevenue != nil {
		add("total_revenue", *p.TotalRevenue)
	}
	if p.RevenueMonth != nil {
		add("revenue_month", *p.RevenueMonth)
	}
	if p.RevenueQuarter != nil {
		add("revenue_quarter", *p.RevenueQuarter)
	}
	if p.RevenueYTD != nil {
		add("revenue_ytd", *p.RevenueYTD)
	}
	if p.CurrentModule != nil {
		add("current_module", *p.CurrentModule)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, email)

	q1 := fmt.Sprintf(`UPDATE salesperson_stats SET %s WHERE user_email = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), statsColumns)
	s, err := scanStats(q.QueryRowContext(ctx, q1, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return s, err
}

// SetPasswordHashContext: пароль пользователя (используется сидером и CLI).
func SetPasswordHashContext(ctx context.Context, q Querier, email, hash string) error {
	res, err := q.ExecContext(ctx, `
		UPDATE salesperson_stats SET password_hash = $1, updated_at = now()
		WHERE user_email = $2
	`, hash, email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListStatsContext: вся команда, по email.
func ListStatsContext(ctx context.Context, q Querier) ([]models.UserStats, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+statsColumns+` FROM salesperson_stats ORDER BY user_email`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.UserStats
	for rows.Next() {
		s, err := scanStats(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

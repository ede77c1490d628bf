package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Spok95/sales-training-backend/internal/models"
)

const materialColumns = `id, module_number, material_type, title, subtitle, content, pdf_filename, created_at, updated_at`

func scanMaterial(r rowScanner) (*models.TrainingMaterial, error) {
	var (
		m   models.TrainingMaterial
		pdf sql.NullString
	)
	if err := r.Scan(&m.ID, &m.ModuleNumber, &m.Type, &m.Title, &m.Subtitle, &m.Content, &pdf,
		&m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if pdf.Valid && pdf.String != "" {
		m.PDFFilename = &pdf.String
	}
	return &m, nil
}

// ListMaterialsContext: каталог, фильтры по модулю и типу необязательны.
func ListMaterialsContext(ctx context.Context, q Querier, f models.MaterialFilter) ([]models.TrainingMaterial, error) {
	query := `SELECT ` + materialColumns + ` FROM training_materials WHERE 1=1`
	args := []any{}
	idx := 1
	if f.Module != nil {
		query += fmt.Sprintf(" AND module_number = $%d", idx)
		args = append(args, *f.Module)
		idx++
	}
	if f.Type != nil {
		query += fmt.Sprintf(" AND material_type = $%d", idx)
		args = append(args, string(*f.Type))
	}
	query += " ORDER BY module_number, material_type"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.TrainingMaterial, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func GetMaterialContext(ctx context.Context, q Querier, id int64) (*models.TrainingMaterial, error) {
	m, err := scanMaterial(q.QueryRowContext(ctx, `SELECT `+materialColumns+` FROM training_materials WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	return m, err
}

func CountMaterialsContext(ctx context.Context, q Querier) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT count(*) FROM training_materials`).Scan(&n)
	return n, err
}

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Spok95/sales-training-backend/internal/db/migrations"
	"github.com/pressly/goose/v3"
)

// Migrate накатывает встроенные миграции; повторный вызов ничего не меняет.
func Migrate(ctx context.Context, database *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, database, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

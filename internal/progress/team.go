package progress

import (
	"context"
	"database/sql"

	"github.com/Spok95/sales-training-backend/internal/ctxutil"
	"github.com/Spok95/sales-training-backend/internal/db"
	"github.com/Spok95/sales-training-backend/internal/export"
)

// TeamWorkbook: XLSX со статистикой команды и статусами модулей; возвращает байты и имя файла.
func (s *Service) TeamWorkbook(ctx context.Context) ([]byte, string, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	report := export.TeamReport{GeneratedAt: s.now().In(s.loc), Location: s.loc}
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		if report.Stats, err = db.ListStatsContext(ctx, tx); err != nil {
			return err
		}
		report.Progress, err = db.ListAllProgressContext(ctx, tx)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	wb, err := export.TeamWorkbook(report)
	if err != nil {
		return nil, "", err
	}
	data, err := wb.Bytes()
	if err != nil {
		return nil, "", err
	}
	return data, export.TeamReportFilename(report.GeneratedAt), nil
}

package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/Spok95/sales-training-backend/internal/models"
	"github.com/xuri/excelize/v2"
)

func TestTeamWorkbook(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	wb, err := TeamWorkbook(TeamReport{
		Stats: []models.UserStats{
			{Email: "a@x.com", Name: "A", Role: models.Salesperson, CurrentModule: 3, TotalCalls: 12, TotalRevenue: 1500.5, UpdatedAt: now},
			{Email: "b@x.com", Name: "B", Role: models.Trainer, CurrentModule: 1, UpdatedAt: now},
		},
		Progress: []models.ModuleProgress{
			{Email: "a@x.com", ModuleNumber: 1, Status: models.Completed},
			{Email: "a@x.com", ModuleNumber: 2, Status: models.Completed},
			{Email: "a@x.com", ModuleNumber: 3, Status: models.InProgress},
		},
		GeneratedAt: now,
	})
	if err != nil {
		t.Fatal(err)
	}
	data, err := wb.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != "Team" || got[1] != "Modules" {
		t.Fatalf("sheets = %v", got)
	}
	if v, _ := f.GetCellValue("Team", "E2"); v != "2" {
		t.Fatalf("completed count = %q, want 2", v)
	}
	if v, _ := f.GetCellValue("Team", "F2"); v != "12" {
		t.Fatalf("calls = %q", v)
	}
	if v, _ := f.GetCellValue("Modules", "D2"); v != "in_progress" {
		t.Fatalf("M03 for a@x.com = %q", v)
	}
	if v, _ := f.GetCellValue("Modules", "B3"); v != "not_started" {
		t.Fatalf("M01 for b@x.com = %q", v)
	}
}

func TestTeamWorkbook_LocalDates(t *testing.T) {
	updated := time.Date(2025, 6, 1, 22, 30, 0, 0, time.UTC)
	wb, err := TeamWorkbook(TeamReport{
		Stats:    []models.UserStats{{Email: "a@x.com", CurrentModule: 1, UpdatedAt: updated}},
		Location: time.FixedZone("UTC+3", 3*3600),
	})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := wb.File.GetCellValue("Team", "M2"); v != "2025-06-02 01:30" {
		t.Fatalf("updated = %q", v)
	}
}

func TestColName(t *testing.T) {
	for n, want := range map[int]string{1: "A", 26: "Z", 27: "AA", 53: "BA"} {
		if got := colName(n); got != want {
			t.Fatalf("colName(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestTeamReportFilename(t *testing.T) {
	if got := TeamReportFilename(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)); got != "team_stats_2025-06-01.xlsx" {
		t.Fatalf("got %q", got)
	}
}

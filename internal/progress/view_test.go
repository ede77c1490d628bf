package progress

import (
	"testing"
	"time"

	"github.com/Spok95/sales-training-backend/internal/models"
)

func TestBuildView_DefaultFill(t *testing.T) {
	v := BuildView(models.UserStats{Email: "new@x.com", Name: "New", CurrentModule: 1}, nil, nil)

	if len(v.ModulesStatus) != models.ModuleCount {
		t.Fatalf("modules = %d, want %d", len(v.ModulesStatus), models.ModuleCount)
	}
	for i, m := range v.ModulesStatus {
		if m.ModuleNumber != i+1 {
			t.Fatalf("entry %d has module %d", i, m.ModuleNumber)
		}
		if m.Status != models.NotStarted || m.StartedAt != nil || m.CompletedAt != nil {
			t.Fatalf("module %d: %+v", m.ModuleNumber, m)
		}
	}
	if len(v.CompletedModules) != 0 || len(v.InProgressModules) != 0 {
		t.Fatalf("expected empty lists, got %v %v", v.CompletedModules, v.InProgressModules)
	}
	if v.TotalCalls != 0 || v.TotalRevenue != 0 {
		t.Fatal("counters must be zero")
	}
	if v.Sessions == nil {
		t.Fatal("sessions must serialize as []")
	}
}

func TestBuildView_MixedRows(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	rows := []models.ModuleProgress{
		{ModuleNumber: 2, Status: models.Completed, StartedAt: &now, CompletedAt: &now},
		{ModuleNumber: 1, Status: models.Completed, StartedAt: &now, CompletedAt: &now},
		{ModuleNumber: 5, Status: models.InProgress, StartedAt: &now},
		{ModuleNumber: 13, Status: models.Completed},
	}
	v := BuildView(models.UserStats{CurrentModule: 3, TotalCalls: 4}, rows, nil)

	if got := v.CompletedModules; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("completed = %v", got)
	}
	if got := v.InProgressModules; len(got) != 1 || got[0] != 5 {
		t.Fatalf("in progress = %v", got)
	}
	if v.CurrentModule != 3 || v.ModulesStatus[2].Status != models.NotStarted {
		t.Fatalf("current module must not be marked: %+v", v.ModulesStatus[2])
	}
	if v.ModulesStatus[4].StartedAt == nil || !v.ModulesStatus[4].StartedAt.Equal(now) {
		t.Fatal("started_at lost for module 5")
	}
	if v.TotalCalls != 4 {
		t.Fatalf("total calls = %d", v.TotalCalls)
	}
}

func TestParseSessionDate(t *testing.T) {
	cases := map[string]time.Time{
		"2025-03-04T10:20:30Z":       time.Date(2025, 3, 4, 10, 20, 30, 0, time.UTC),
		"2025-03-04T10:20:30+02:00":  time.Date(2025, 3, 4, 8, 20, 30, 0, time.UTC),
		"2025-03-04T10:20:30":        time.Date(2025, 3, 4, 10, 20, 30, 0, time.UTC),
		"2025-03-04T10:20:30.123456": time.Date(2025, 3, 4, 10, 20, 30, 123456000, time.UTC),
		"2025-03-04":                 time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseSessionDate(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: got %v, want %v", in, got, want)
		}
	}
	if _, err := ParseSessionDate("yesterday"); !models.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

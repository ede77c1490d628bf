package export

import (
	"fmt"
	"time"

	"github.com/Spok95/sales-training-backend/internal/models"
)

type TeamReport struct {
	Stats       []models.UserStats
	Progress    []models.ModuleProgress
	GeneratedAt time.Time
	// Location: часовой пояс для колонок с датами, nil означает UTC.
	Location *time.Location
}

// TeamWorkbook: лист "Team" со счётчиками и лист "Modules" со статусами 1..12.
func TeamWorkbook(r TeamReport) (*Workbook, error) {
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}
	team := SheetSpec{
		Title: "Team",
		Header: []string{"Email", "Name", "Role", "Current module", "Completed",
			"Calls", "Meetings", "Closed deals", "Revenue", "Revenue (month)",
			"Revenue (quarter)", "Revenue (YTD)", "Updated"},
	}
	modules := SheetSpec{Title: "Modules", Header: []string{"Email"}}
	for n := 1; n <= models.ModuleCount; n++ {
		modules.Header = append(modules.Header, fmt.Sprintf("M%02d", n))
	}

	status := make(map[string]map[int]models.ModuleStatus, len(r.Stats))
	for _, p := range r.Progress {
		if status[p.Email] == nil {
			status[p.Email] = make(map[int]models.ModuleStatus, models.ModuleCount)
		}
		status[p.Email][p.ModuleNumber] = p.Status
	}

	for _, s := range r.Stats {
		completed := 0
		row := []any{s.Email}
		for n := 1; n <= models.ModuleCount; n++ {
			st, ok := status[s.Email][n]
			if !ok {
				st = models.NotStarted
			}
			if st == models.Completed {
				completed++
			}
			row = append(row, string(st))
		}
		modules.Rows = append(modules.Rows, row)

		team.Rows = append(team.Rows, []any{
			s.Email, s.Name, string(s.Role), s.CurrentModule, completed,
			s.TotalCalls, s.TotalMeetings, s.ClosedDeals, s.TotalRevenue, s.RevenueMonth,
			s.RevenueQuarter, s.RevenueYTD, s.UpdatedAt.In(loc).Format("2006-01-02 15:04"),
		})
	}
	return NewWorkbook([]SheetSpec{team, modules})
}

func TeamReportFilename(t time.Time) string {
	return sanitizeFileName(fmt.Sprintf("team_stats_%s.xlsx", t.Format("2006-01-02")))
}

package progress

import (
	"time"

	"github.com/Spok95/sales-training-backend/internal/models"
)

type ModuleEntry struct {
	ModuleNumber int                 `json:"module_number"`
	Status       models.ModuleStatus `json:"status"`
	StartedAt    *time.Time          `json:"started_at"`
	CompletedAt  *time.Time          `json:"completed_at"`
}

// View: сводка прогресса пользователя в формате фронтенда.
type View struct {
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	Role              models.Role              `json:"role"`
	CurrentModule     int                      `json:"currentModule"`
	CompletedModules  []int                    `json:"completedModules"`
	InProgressModules []int                    `json:"inProgressModules"`
	ModulesStatus     []ModuleEntry            `json:"modulesStatus"`
	TotalCalls        int                      `json:"totalCalls"`
	TotalMeetings     int                      `json:"totalMeetings"`
	ClosedDeals       int                      `json:"closedDeals"`
	TotalRevenue      float64                  `json:"totalRevenue"`
	RevenueMonth      float64                  `json:"revenueMonth"`
	RevenueQuarter    float64                  `json:"revenueQuarter"`
	RevenueYTD        float64                  `json:"revenueYTD"`
	Sessions          []models.TrainingSession `json:"sessions"`
}

// BuildView собирает сводку: ровно 12 модулей по порядку, отсутствующие строки
// становятся not_started без отметок времени. Строки вне диапазона 1..12 игнорируются.
func BuildView(stats models.UserStats, rows []models.ModuleProgress, sessions []models.TrainingSession) View {
	byNum := make(map[int]models.ModuleProgress, len(rows))
	for _, r := range rows {
		if models.ValidModule(r.ModuleNumber) {
			byNum[r.ModuleNumber] = r
		}
	}

	v := View{
		Name:              stats.Name,
		Email:             stats.Email,
		Role:              stats.Role,
		CurrentModule:     stats.CurrentModule,
		CompletedModules:  []int{},
		InProgressModules: []int{},
		ModulesStatus:     make([]ModuleEntry, 0, models.ModuleCount),
		TotalCalls:        stats.TotalCalls,
		TotalMeetings:     stats.TotalMeetings,
		ClosedDeals:       stats.ClosedDeals,
		TotalRevenue:      stats.TotalRevenue,
		RevenueMonth:      stats.RevenueMonth,
		RevenueQuarter:    stats.RevenueQuarter,
		RevenueYTD:        stats.RevenueYTD,
		Sessions:          sessions,
	}
	if v.Sessions == nil {
		v.Sessions = []models.TrainingSession{}
	}

	for n := 1; n <= models.ModuleCount; n++ {
		r, ok := byNum[n]
		if !ok {
			v.ModulesStatus = append(v.ModulesStatus, ModuleEntry{ModuleNumber: n, Status: models.NotStarted})
			continue
		}
		v.ModulesStatus = append(v.ModulesStatus, ModuleEntry{
			ModuleNumber: n,
			Status:       r.Status,
			StartedAt:    r.StartedAt,
			CompletedAt:  r.CompletedAt,
		})
		switch r.Status {
		case models.Completed:
			v.CompletedModules = append(v.CompletedModules, n)
		case models.InProgress:
			v.InProgressModules = append(v.InProgressModules, n)
		}
	}
	return v
}

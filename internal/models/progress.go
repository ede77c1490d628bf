package models

import "time"

type ModuleStatus string

const (
	NotStarted ModuleStatus = "not_started"
	InProgress ModuleStatus = "in_progress"
	Completed  ModuleStatus = "completed"
)

func (s ModuleStatus) Valid() bool {
	switch s {
	case NotStarted, InProgress, Completed:
		return true
	}
	return false
}

func (s ModuleStatus) rank() int {
	switch s {
	case InProgress:
		return 1
	case Completed:
		return 2
	default:
		return 0
	}
}

// ModuleProgress: строка module_progress, ключ (email, module_number).
type ModuleProgress struct {
	ID            int64        `db:"id" json:"id"`
	Email         string       `db:"user_email" json:"user_email"`
	ModuleNumber  int          `db:"module_number" json:"module_number"`
	Status        ModuleStatus `db:"status" json:"status"`
	StartedAt     *time.Time   `db:"started_at" json:"started_at"`
	CompletedAt   *time.Time   `db:"completed_at" json:"completed_at"`
	TotalCalls    int          `db:"total_calls" json:"total_calls"`
	TotalMeetings int          `db:"total_meetings" json:"total_meetings"`
	ClosedDeals   int          `db:"closed_deals" json:"closed_deals"`
	TotalRevenue  float64      `db:"total_revenue" json:"total_revenue"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`
}

// Advance переводит модуль в target, не откатывая статус назад.
// started_at и completed_at выставляются один раз и никогда не стираются;
// при завершении без старта started_at заполняется тем же моментом.
func (p *ModuleProgress) Advance(target ModuleStatus, now time.Time) {
	if target.rank() > p.Status.rank() {
		p.Status = target
	}
	switch target {
	case InProgress:
		if p.StartedAt == nil {
			p.StartedAt = timePtr(now)
		}
	case Completed:
		if p.StartedAt == nil {
			p.StartedAt = timePtr(now)
		}
		if p.CompletedAt == nil {
			p.CompletedAt = timePtr(now)
		}
	}
	p.UpdatedAt = now
}

// ModuleStatsPatch: счётчики модуля, переданные вместе со статусом.
type ModuleStatsPatch struct {
	TotalCalls    *int     `json:"total_calls"`
	TotalMeetings *int     `json:"total_meetings"`
	ClosedDeals   *int     `json:"closed_deals"`
	TotalRevenue  *float64 `json:"total_revenue"`
}

func (s *ModuleStatsPatch) Validate() error {
	if s == nil {
		return nil
	}
	for field, v := range map[string]*int{
		"total_calls":    s.TotalCalls,
		"total_meetings": s.TotalMeetings,
		"closed_deals":   s.ClosedDeals,
	} {
		if v != nil && *v < 0 {
			return Invalid("stats."+field, "must not be negative")
		}
	}
	return nil
}

func (p *ModuleProgress) Merge(s *ModuleStatsPatch) {
	if s == nil {
		return
	}
	if s.TotalCalls != nil {
		p.TotalCalls = *s.TotalCalls
	}
	if s.TotalMeetings != nil {
		p.TotalMeetings = *s.TotalMeetings
	}
	if s.ClosedDeals != nil {
		p.ClosedDeals = *s.ClosedDeals
	}
	if s.TotalRevenue != nil {
		p.TotalRevenue = *s.TotalRevenue
	}
}

func timePtr(t time.Time) *time.Time { return &t }

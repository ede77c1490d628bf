package models

import (
	"strings"
	"time"
)

type Role string

const (
	Salesperson Role = "salesperson"
	Trainer     Role = "trainer"
)

func (r Role) Valid() bool {
	return r == Salesperson || r == Trainer
}

// ModuleCount: фиксированное число модулей программы.
const ModuleCount = 12

func ValidModule(n int) bool { return n >= 1 && n <= ModuleCount }

// UserStats соответствует строке salesperson_stats с ключом user_email.
type UserStats struct {
	ID             int64     `db:"id" json:"id"`
	Email          string    `db:"user_email" json:"user_email"`
	Name           string    `db:"name" json:"name"`
	PasswordHash   *string   `db:"password_hash" json:"-"`
	Role           Role      `db:"role" json:"role"`
	TotalCalls     int       `db:"total_calls" json:"total_calls"`
	TotalMeetings  int       `db:"total_meetings" json:"total_meetings"`
	ClosedDeals    int       `db:"closed_deals" json:"closed_deals"`
	TotalRevenue   float64   `db:"total_revenue" json:"total_revenue"`
	RevenueMonth   float64   `db:"revenue_month" json:"revenue_month"`
	RevenueQuarter float64   `db:"revenue_quarter" json:"revenue_quarter"`
	RevenueYTD     float64   `db:"revenue_ytd" json:"revenue_ytd"`
	CurrentModule  int       `db:"current_module" json:"current_module"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// StatsPatch задаёт частичное обновление, nil означает «поле не передано».
type StatsPatch struct {
	Name           *string  `json:"name"`
	TotalCalls     *int     `json:"total_calls"`
	TotalMeetings  *int     `json:"total_meetings"`
	ClosedDeals    *int     `json:"closed_deals"`
	TotalRevenue   *float64 `json:"total_revenue"`
	RevenueMonth   *float64 `json:"revenue_month"`
	RevenueQuarter *float64 `json:"revenue_quarter"`
	RevenueYTD     *float64 `json:"revenue_ytd"`
	CurrentModule  *int     `json:"current_module"`
}

func (p StatsPatch) Validate() error {
	if p.CurrentModule != nil && !ValidModule(*p.CurrentModule) {
		return Invalid("current_module", "must be between 1 and 12")
	}
	for field, v := range map[string]*int{
		"total_calls":    p.TotalCalls,
		"total_meetings": p.TotalMeetings,
		"closed_deals":   p.ClosedDeals,
	} {
		if v != nil && *v < 0 {
			return Invalid(field, "must not be negative")
		}
	}
	return nil
}

// NormalizeEmail приводит ключ пользователя к единому виду.
func NormalizeEmail(s string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(s))
	at := strings.IndexByte(e, '@')
	if at <= 0 || at == len(e)-1 {
		return "", Invalid("email", "must be a valid email address")
	}
	return e, nil
}

// DisplayNameFromEmail: "john.doe@x.com" -> "John.doe".
func DisplayNameFromEmail(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	if local == "" {
		return ""
	}
	return strings.ToUpper(local[:1]) + strings.ToLower(local[1:])
}

package models

import (
	"time"

	"github.com/kasflow/backend/internal/date"
	"github.com/shopspring/decimal"
)

// MonthTotals sums income and expense amounts of one calendar month.
// Transfers move money between the owner's accounts and are left out.
type MonthTotals struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// DayTotal is the amount spent on one day.
type DayTotal struct {
	Date  date.Date       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// CategoryTotal is the amount spent in one category over a period.
type CategoryTotal struct {
	CategoryID int64           `json:"category_id"`
	Name       string          `json:"name"`
	Icon       string          `json:"icon"`
	Total      decimal.Decimal `json:"total"`
}

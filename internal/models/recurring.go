package models

import (
	"time"

	"github.com/kasflow/backend/internal/date"
	"github.com/shopspring/decimal"
)

// Frequency is how often a recurring rule fires.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// NeedsDayOfMonth reports whether rules of this frequency must set DayOfMonth.
func (f Frequency) NeedsDayOfMonth() bool {
	return f == Monthly || f == Yearly
}

// RecurringTransaction is a template the scheduler turns into transactions.
type RecurringTransaction struct {
	ID                   int64           `json:"id" db:"id"`
	OwnerID              int64           `json:"owner_id" db:"owner_id"`
	AccountID            int64           `json:"account_id" db:"account_id"`
	CategoryID           *int64          `json:"category_id" db:"category_id"`
	Type                 TransactionType `json:"type" db:"type"`
	DestinationAccountID *int64          `json:"destination_account_id" db:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount" db:"amount"`
	Description          string          `json:"description" db:"description"`
	Frequency            Frequency       `json:"frequency" db:"frequency"`
	DayOfMonth           *int            `json:"day_of_month" db:"day_of_month"`
	StartDate            date.Date       `json:"start_date" db:"start_date"`
	EndDate              *date.Date      `json:"end_date" db:"end_date"`
	CreatedAt            time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at" db:"updated_at"`
}

// Flow returns the flow generated transactions will carry.
func (r RecurringTransaction) Flow() (Flow, error) {
	return NewFlow(r.Type, r.DestinationAccountID)
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the kind of account. Credit balances are left out of totals.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
	AccountCash       AccountType = "cash"
	AccountOther      AccountType = "other"
)

// Account holds a running balance that only the balance mutator changes.
type Account struct {
	ID             int64           `json:"id" db:"id"`
	OwnerID        int64           `json:"owner_id" db:"owner_id"`
	Name           string          `json:"name" db:"name"`
	Type           AccountType     `json:"type" db:"type"`
	Balance        decimal.Decimal `json:"balance" db:"balance"`
	OpeningBalance decimal.Decimal `json:"opening_balance" db:"opening_balance"`
	Description    string          `json:"description" db:"description"`
	Version        int             `json:"version" db:"version"` // bumped on every balance mutation
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsDeleted reports whether the account was closed.
func (a *Account) IsDeleted() bool { return a.DeletedAt != nil }

// AccountFlows aggregates the stored transactions touching one account.
type AccountFlows struct {
	Income      decimal.Decimal
	Expense     decimal.Decimal
	TransferOut decimal.Decimal
	TransferIn  decimal.Decimal
}

// Reconciliation compares the running balance against the balance derived from
// the opening balance and the account's existing transactions.
type Reconciliation struct {
	AccountID  int64           `json:"account_id"`
	Balance    decimal.Decimal `json:"balance"`
	Derived    decimal.Decimal `json:"derived"`
	Drift      decimal.Decimal `json:"drift"`
	Consistent bool            `json:"consistent"`
}

// NewReconciliation derives the expected balance of a from its flows.
func NewReconciliation(a *Account, f AccountFlows) Reconciliation {
	derived := a.OpeningBalance.
		Add(f.Income).
		Sub(f.Expense).
		Sub(f.TransferOut).
		Add(f.TransferIn)
	drift := a.Balance.Sub(derived)
	return Reconciliation{
		AccountID:  a.ID,
		Balance:    a.Balance,
		Derived:    derived,
		Drift:      drift,
		Consistent: drift.IsZero(),
	}
}

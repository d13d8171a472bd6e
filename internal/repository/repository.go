// Package repository defines the storage boundary of the ledger and its
// PostgreSQL implementation.
package repository

import (
	"context"
	"errors"

	"github.com/kasflow/backend/internal/date"
	"github.com/kasflow/backend/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Tx is the set of operations available inside one unit of work. Every write
// made through a Tx commits or rolls back together.
type Tx interface {
	// LockAccounts locks the given accounts in ascending id order. Ids that do
	// not exist are absent from the result.
	LockAccounts(ctx context.Context, ids ...int64) (map[int64]*models.Account, error)
	AdjustBalance(ctx context.Context, accountID int64, delta decimal.Decimal) error
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	LockTransaction(ctx context.Context, id int64) (*models.Transaction, error)
	InsertTransaction(ctx context.Context, t *models.Transaction) error
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	GeneratedTransactionExists(ctx context.Context, recurringID int64, on date.Date) (bool, error)
}

// LedgerStore is what the ledger service and the scheduler need.
type LedgerStore interface {
	WithinUnitOfWork(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)
	ListTransactions(ctx context.Context, ownerID int64, from, to date.Date) ([]models.Transaction, error)
	ListActiveRecurring(ctx context.Context, on date.Date) ([]models.RecurringTransaction, error)
}

// AccountStore persists accounts outside of a unit of work.
type AccountStore interface {
	CreateAccount(ctx context.Context, a *models.Account) error
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	ListAccounts(ctx context.Context, ownerID int64) ([]models.Account, error)
	UpdateAccount(ctx context.Context, a *models.Account) error
	SoftDeleteAccount(ctx context.Context, id int64) error
	AccountFlows(ctx context.Context, accountID int64) (models.AccountFlows, error)
}

// CategoryStore persists default and owner-defined categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c *models.Category) error
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	// ListCategories returns the owner's categories and the default ones.
	ListCategories(ctx context.Context, ownerID int64) ([]models.Category, error)
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error
	CategoryNameTaken(ctx context.Context, ownerID int64, name string, t models.CategoryType, excludeID int64) (bool, error)
	CategoryInUse(ctx context.Context, id int64) (bool, error)
}

// RecurringFilter narrows ListRecurring. Zero fields match every rule.
type RecurringFilter struct {
	Search    string // case-insensitive substring of the description
	Type      models.TransactionType
	Frequency models.Frequency
}

// RecurringStore persists recurring transaction rules.
type RecurringStore interface {
	CreateRecurring(ctx context.Context, r *models.RecurringTransaction) error
	GetRecurring(ctx context.Context, id int64) (*models.RecurringTransaction, error)
	// ListRecurring returns the owner's rules matching f, newest first.
	ListRecurring(ctx context.Context, ownerID int64, f RecurringFilter) ([]models.RecurringTransaction, error)
	UpdateRecurring(ctx context.Context, r *models.RecurringTransaction) error
	DeleteRecurring(ctx context.Context, id int64) error
}

// SummaryStore answers the grouped queries behind the dashboard. Date ranges
// are inclusive on both ends.
type SummaryStore interface {
	// MonthlyTotals returns one row per month that has income or expense
	// transactions, oldest first.
	MonthlyTotals(ctx context.Context, ownerID int64, from, to date.Date) ([]models.MonthTotals, error)
	// DailyExpenses returns one row per day that has expenses, oldest first.
	DailyExpenses(ctx context.Context, ownerID int64, from, to date.Date) ([]models.DayTotal, error)
	TopExpenseCategories(ctx context.Context, ownerID int64, from, to date.Date, limit int) ([]models.CategoryTotal, error)
	RecentTransactions(ctx context.Context, ownerID int64, limit int) ([]models.Transaction, error)
	CountTransactions(ctx context.Context, ownerID int64, from, to date.Date) (int, error)
	// CountCategories counts the owner's categories and the default ones.
	CountCategories(ctx context.Context, ownerID int64) (int, error)
}

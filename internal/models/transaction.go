package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kasflow/backend/internal/date"
	"github.com/shopspring/decimal"
)

// TransactionType is the stored form of a Flow.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is a known type.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// Flow is the closed set of money movements a transaction can record:
// Income, Expense or Transfer. Only Transfer carries a destination.
type Flow interface {
	Type() TransactionType
	isFlow()
}

// Income adds the amount to the account.
type Income struct{}

// Expense subtracts the amount from the account.
type Expense struct{}

// Transfer moves the amount from the account to DestinationAccountID.
type Transfer struct {
	DestinationAccountID int64
}

func (Income) Type() TransactionType   { return TypeIncome }
func (Expense) Type() TransactionType  { return TypeExpense }
func (Transfer) Type() TransactionType { return TypeTransfer }

func (Income) isFlow()   {}
func (Expense) isFlow()  {}
func (Transfer) isFlow() {}

var (
	ErrUnknownType           = errors.New("unknown transaction type")
	ErrMissingDestination    = errors.New("transfer requires a destination account")
	ErrUnexpectedDestination = errors.New("destination account is only allowed for transfers")
)

// NewFlow builds the flow stored as a type column plus a nullable destination column.
func NewFlow(t TransactionType, destinationAccountID *int64) (Flow, error) {
	switch t {
	case TypeIncome, TypeExpense:
		if destinationAccountID != nil {
			return nil, ErrUnexpectedDestination
		}
		if t == TypeIncome {
			return Income{}, nil
		}
		return Expense{}, nil
	case TypeTransfer:
		if destinationAccountID == nil {
			return nil, ErrMissingDestination
		}
		return Transfer{DestinationAccountID: *destinationAccountID}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
}

// DestinationOf returns the destination account of a transfer flow, nil otherwise.
func DestinationOf(f Flow) *int64 {
	if tr, ok := f.(Transfer); ok {
		id := tr.DestinationAccountID
		return &id
	}
	return nil
}

// Transaction is a single ledger row owned by one user.
type Transaction struct {
	ID                     int64           `db:"id"`
	OwnerID                int64           `db:"owner_id"`
	AccountID              int64           `db:"account_id"`
	CategoryID             *int64          `db:"category_id"`
	Flow                   Flow            `db:"-"`
	Amount                 decimal.Decimal `db:"amount"`
	Description            string          `db:"description"`
	TransactionDate        date.Date       `db:"transaction_date"`
	RecurringTransactionID *int64          `db:"recurring_transaction_id"`
	CreatedAt              time.Time       `db:"created_at"`
	UpdatedAt              time.Time       `db:"updated_at"`
}

// Type returns the flow's type, or "" when the flow is unset.
func (t Transaction) Type() TransactionType {
	if t.Flow == nil {
		return ""
	}
	return t.Flow.Type()
}

// DestinationAccountID is set for transfers only.
func (t Transaction) DestinationAccountID() *int64 { return DestinationOf(t.Flow) }

// AccountIDs lists every account whose balance the transaction touches.
func (t Transaction) AccountIDs() []int64 {
	ids := []int64{t.AccountID}
	if dst := t.DestinationAccountID(); dst != nil {
		ids = append(ids, *dst)
	}
	return ids
}

type transactionJSON struct {
	ID                     int64           `json:"id"`
	OwnerID                int64           `json:"owner_id"`
	AccountID              int64           `json:"account_id"`
	CategoryID             *int64          `json:"category_id"`
	Type                   TransactionType `json:"type"`
	Amount                 decimal.Decimal `json:"amount"`
	Description            string          `json:"description"`
	TransactionDate        date.Date       `json:"transaction_date"`
	DestinationAccountID   *int64          `json:"destination_account_id"`
	RecurringTransactionID *int64          `json:"recurring_transaction_id"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		ID:                     t.ID,
		OwnerID:                t.OwnerID,
		AccountID:              t.AccountID,
		CategoryID:             t.CategoryID,
		Type:                   t.Type(),
		Amount:                 t.Amount,
		Description:            t.Description,
		TransactionDate:        t.TransactionDate,
		DestinationAccountID:   t.DestinationAccountID(),
		RecurringTransactionID: t.RecurringTransactionID,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	})
}

func (t *Transaction) UnmarshalJSON(b []byte) error {
	var v transactionJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	flow, err := NewFlow(v.Type, v.DestinationAccountID)
	if err != nil {
		return err
	}
	*t = Transaction{
		ID:                     v.ID,
		OwnerID:                v.OwnerID,
		AccountID:              v.AccountID,
		CategoryID:             v.CategoryID,
		Flow:                   flow,
		Amount:                 v.Amount,
		Description:            v.Description,
		TransactionDate:        v.TransactionDate,
		RecurringTransactionID: v.RecurringTransactionID,
		CreatedAt:              v.CreatedAt,
		UpdatedAt:              v.UpdatedAt,
	}
	return nil
}

// MonthlyTotals sums transaction amounts of one month by type.
type MonthlyTotals struct {
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Transfer decimal.Decimal `json:"transfer"`
	Net      decimal.Decimal `json:"net"`
}

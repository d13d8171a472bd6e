package services

import (
	"context"
	"errors"
	"log"
	"slices"
	"time"

	"github.com/kasflow/backend/internal/audit"
	"github.com/kasflow/backend/internal/date"
	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/repository"
	"github.com/shopspring/decimal"
)

const recurringSuffix = " (Recurring)"

// TransactionInput is the caller-supplied part of a transaction.
type TransactionInput struct {
	AccountID            int64                  `json:"account_id" validate:"required,gt=0"`
	CategoryID           *int64                 `json:"category_id" validate:"omitempty,gt=0"`
	Type                 models.TransactionType `json:"type" validate:"required,oneof=income expense transfer"`
	DestinationAccountID *int64                 `json:"destination_account_id" validate:"omitempty,gt=0"`
	Amount               decimal.Decimal        `json:"amount" validate:"required,gt=0"`
	Description          string                 `json:"description" validate:"max=500"`
	TransactionDate      date.Date              `json:"transaction_date" validate:"required"`

	// set by the scheduler only
	recurringID *int64
}

// MonthlyStatement is one owner's transactions for a calendar month.
type MonthlyStatement struct {
	Year         int                  `json:"year"`
	Month        time.Month           `json:"month"`
	Transactions []models.Transaction `json:"transactions"`
	Totals       models.MonthlyTotals `json:"totals"`
}

// LedgerService creates, updates and deletes transactions while keeping every
// account balance equal to the sum of its transactions' effects.
type LedgerService struct {
	store     repository.LedgerStore
	mutator   BalanceMutator
	validator *ValidationHelper
	audit     *audit.Logger
}

// NewLedgerService returns a LedgerService. A nil auditLogger logs to the
// standard logger.
func NewLedgerService(store repository.LedgerStore, auditLogger *audit.Logger) *LedgerService {
	if auditLogger == nil {
		auditLogger = audit.NewLogger()
	}
	return &LedgerService{
		store:     store,
		validator: NewValidationHelper(),
		audit:     auditLogger,
	}
}

// Create validates in, records the transaction and applies its effect.
func (s *LedgerService) Create(ctx context.Context, ownerID int64, in TransactionInput) (*models.Transaction, error) {
	flow, err := s.validateInput(in)
	if err != nil {
		return nil, err
	}

	tr := &models.Transaction{
		OwnerID:                ownerID,
		AccountID:              in.AccountID,
		CategoryID:             in.CategoryID,
		Flow:                   flow,
		Amount:                 in.Amount,
		Description:            in.Description,
		TransactionDate:        in.TransactionDate,
		RecurringTransactionID: in.recurringID,
	}

	err = s.store.WithinUnitOfWork(ctx, func(ctx context.Context, tx repository.Tx) error {
		if tr.RecurringTransactionID != nil {
			exists, err := tx.GeneratedTransactionExists(ctx, *tr.RecurringTransactionID, tr.TransactionDate)
			if err != nil {
				return err
			}
			if exists {
				return ErrAlreadyGenerated
			}
		}

		accounts, err := tx.LockAccounts(ctx, tr.AccountIDs()...)
		if err != nil {
			return err
		}
		if err := s.checkEffect(ctx, tx, ownerID, tr, accounts, nil); err != nil {
			return err
		}
		if err := tx.InsertTransaction(ctx, tr); err != nil {
			return err
		}
		return s.mutator.ApplyAll(ctx, tx, Effects(tr))
	})
	if tr.RecurringTransactionID != nil && errors.Is(err, repository.ErrDuplicate) {
		// a concurrent run inserted the same (rule, date) first
		err = ErrAlreadyGenerated
	}
	if errors.Is(err, ErrAlreadyGenerated) {
		return nil, ErrAlreadyGenerated
	}
	if err != nil {
		return nil, s.fail("TRANSACTION_CREATE", ownerID, 0, err)
	}

	s.audit.LogTransaction("TRANSACTION_CREATE", ownerID, tr.ID, tr.AccountID, tr.Amount, map[string]any{
		"type":                   tr.Type(),
		"destination_account_id": tr.DestinationAccountID(),
	})
	return tr, nil
}

// Update replaces the transaction's fields. The old effect is reversed from
// the pre-update snapshot before the new effect is applied.
func (s *LedgerService) Update(ctx context.Context, id, ownerID int64, in TransactionInput) (*models.Transaction, error) {
	flow, err := s.validateInput(in)
	if err != nil {
		return nil, err
	}

	var updated *models.Transaction
	err = s.store.WithinUnitOfWork(ctx, func(ctx context.Context, tx repository.Tx) error {
		old, err := s.lockOwned(ctx, tx, id, ownerID)
		if err != nil {
			return err
		}

		next := *old
		next.AccountID = in.AccountID
		next.CategoryID = in.CategoryID
		next.Flow = flow
		next.Amount = in.Amount
		next.Description = in.Description
		next.TransactionDate = in.TransactionDate

		accounts, err := tx.LockAccounts(ctx, append(old.AccountIDs(), next.AccountIDs()...)...)
		if err != nil {
			return err
		}
		if err := s.checkEffect(ctx, tx, ownerID, &next, accounts, old.AccountIDs()); err != nil {
			return err
		}

		if err := s.mutator.ApplyAll(ctx, tx, Reversal(old)); err != nil {
			return err
		}
		if err := tx.UpdateTransaction(ctx, &next); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return invalid("transaction_date", "rule already generated a transaction on this date")
			}
			return err
		}
		if err := s.mutator.ApplyAll(ctx, tx, Effects(&next)); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, s.fail("TRANSACTION_UPDATE", ownerID, id, err)
	}

	s.audit.LogTransaction("TRANSACTION_UPDATE", ownerID, updated.ID, updated.AccountID, updated.Amount, map[string]any{
		"type":                   updated.Type(),
		"destination_account_id": updated.DestinationAccountID(),
	})
	return updated, nil
}

// Delete reverses the transaction's effect and removes the row.
func (s *LedgerService) Delete(ctx context.Context, id, ownerID int64) error {
	var removed *models.Transaction
	err := s.store.WithinUnitOfWork(ctx, func(ctx context.Context, tx repository.Tx) error {
		old, err := s.lockOwned(ctx, tx, id, ownerID)
		if err != nil {
			return err
		}
		if _, err := tx.LockAccounts(ctx, old.AccountIDs()...); err != nil {
			return err
		}
		if err := s.mutator.ApplyAll(ctx, tx, Reversal(old)); err != nil {
			return err
		}
		if err := tx.DeleteTransaction(ctx, id); err != nil {
			return err
		}
		removed = old
		return nil
	})
	if err != nil {
		return s.fail("TRANSACTION_DELETE", ownerID, id, err)
	}

	s.audit.LogTransaction("TRANSACTION_DELETE", ownerID, removed.ID, removed.AccountID, removed.Amount, nil)
	return nil
}

// Get returns the transaction if ownerID owns it.
func (s *LedgerService) Get(ctx context.Context, id, ownerID int64) (*models.Transaction, error) {
	tr, err := s.store.GetTransaction(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Resource: "transaction", ID: id}
	}
	if err != nil {
		return nil, asDomainError("get transaction", err)
	}
	if tr.OwnerID != ownerID {
		return nil, &AuthorizationError{Resource: "transaction", ID: id}
	}
	return tr, nil
}

// ListMonth returns the owner's transactions dated within year/month along
// with per-type totals.
func (s *LedgerService) ListMonth(ctx context.Context, ownerID int64, year int, month time.Month) (*MonthlyStatement, error) {
	if month < time.January || month > time.December {
		return nil, invalid("month", "must be between 1 and 12")
	}
	if year < 1 {
		return nil, invalid("year", "must be positive")
	}

	from := date.New(year, month, 1)
	items, err := s.store.ListTransactions(ctx, ownerID, from, from.EndOfMonth())
	if err != nil {
		return nil, asDomainError("list transactions", err)
	}
	if items == nil {
		items = []models.Transaction{}
	}

	totals := models.MonthlyTotals{}
	for _, tr := range items {
		switch tr.Flow.(type) {
		case models.Income:
			totals.Income = totals.Income.Add(tr.Amount)
		case models.Expense:
			totals.Expense = totals.Expense.Add(tr.Amount)
		case models.Transfer:
			totals.Transfer = totals.Transfer.Add(tr.Amount)
		}
	}
	totals.Net = totals.Income.Sub(totals.Expense)

	return &MonthlyStatement{Year: year, Month: month, Transactions: items, Totals: totals}, nil
}

func (s *LedgerService) validateInput(in TransactionInput) (models.Flow, error) {
	if err := s.validator.ValidateStruct(&in); err != nil {
		return nil, err
	}
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}
	return validateFlow(in.Type, in.AccountID, in.DestinationAccountID, in.CategoryID)
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	if !amount.Equal(amount.Round(2)) {
		return invalid("amount", "must have at most two decimal places")
	}
	return nil
}

// validateFlow checks the shape rules shared by transactions and recurring rules.
func validateFlow(t models.TransactionType, accountID int64, destinationID, categoryID *int64) (models.Flow, error) {
	flow, err := models.NewFlow(t, destinationID)
	switch {
	case errors.Is(err, models.ErrMissingDestination), errors.Is(err, models.ErrUnexpectedDestination):
		return nil, invalid("destination_account_id", err.Error())
	case err != nil:
		return nil, invalid("type", err.Error())
	}

	if tr, ok := flow.(models.Transfer); ok {
		if tr.DestinationAccountID == accountID {
			return nil, invalid("destination_account_id", "must differ from account_id")
		}
		if categoryID != nil {
			return nil, invalid("category_id", "must be empty for transfers")
		}
	} else if categoryID == nil {
		return nil, invalid("category_id", "required for "+string(t))
	}
	return flow, nil
}

// checkEffect verifies that ownerID may apply tr's effect. Accounts listed in
// reapplied already carry the transaction and may be soft-deleted.
func (s *LedgerService) checkEffect(ctx context.Context, tx repository.Tx, ownerID int64, tr *models.Transaction, accounts map[int64]*models.Account, reapplied []int64) error {
	check := func(field string, id int64) error {
		acc, ok := accounts[id]
		if !ok {
			return &NotFoundError{Resource: "account", ID: id}
		}
		if acc.OwnerID != ownerID {
			return &AuthorizationError{Resource: "account", ID: id}
		}
		if acc.IsDeleted() && !slices.Contains(reapplied, id) {
			return invalid(field, "account is closed")
		}
		return nil
	}

	if err := check("account_id", tr.AccountID); err != nil {
		return err
	}
	if dst := tr.DestinationAccountID(); dst != nil {
		if err := check("destination_account_id", *dst); err != nil {
			return err
		}
	}

	if tr.CategoryID == nil {
		return nil
	}
	cat, err := tx.GetCategory(ctx, *tr.CategoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Resource: "category", ID: *tr.CategoryID}
	}
	if err != nil {
		return err
	}
	if !cat.VisibleTo(ownerID) {
		return &AuthorizationError{Resource: "category", ID: cat.ID}
	}
	if !cat.Type.Accepts(tr.Type()) {
		return invalid("category_id", "category type does not match transaction type")
	}
	return nil
}

func (s *LedgerService) lockOwned(ctx context.Context, tx repository.Tx, id, ownerID int64) (*models.Transaction, error) {
	tr, err := tx.LockTransaction(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Resource: "transaction", ID: id}
	}
	if err != nil {
		return nil, err
	}
	if tr.OwnerID != ownerID {
		return nil, &AuthorizationError{Resource: "transaction", ID: id}
	}
	return tr, nil
}

func (s *LedgerService) fail(op string, ownerID, transactionID int64, err error) error {
	err = asDomainError(op, err)
	if errors.Is(err, ErrConsistency) {
		log.Printf("[LEDGER] %s rolled back for owner %d: %v", op, ownerID, err)
		s.audit.LogError(op, ownerID, transactionID, err)
	}
	return err
}

// createGenerated materializes rule for the given day. It returns
// ErrAlreadyGenerated when a transaction for (rule, on) exists.
func (s *LedgerService) createGenerated(ctx context.Context, rule models.RecurringTransaction, on date.Date) (*models.Transaction, error) {
	ruleID := rule.ID
	return s.Create(ctx, rule.OwnerID, TransactionInput{
		AccountID:            rule.AccountID,
		CategoryID:           rule.CategoryID,
		Type:                 rule.Type,
		DestinationAccountID: rule.DestinationAccountID,
		Amount:               rule.Amount,
		Description:          rule.Description + recurringSuffix,
		TransactionDate:      on,
		recurringID:          &ruleID,
	})
}

package services

import (
	"context"
	"errors"

	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/repository"
	"github.com/shopspring/decimal"
)

// BalanceDelta is a signed change to one account's running balance.
type BalanceDelta struct {
	AccountID int64
	Amount    decimal.Decimal
}

// Effects returns the balance changes a transaction causes. Income credits the
// source account, expense debits it, a transfer moves the amount from source
// to destination.
func Effects(t *models.Transaction) []BalanceDelta {
	switch f := t.Flow.(type) {
	case models.Income:
		return []BalanceDelta{{AccountID: t.AccountID, Amount: t.Amount}}
	case models.Expense:
		return []BalanceDelta{{AccountID: t.AccountID, Amount: t.Amount.Neg()}}
	case models.Transfer:
		return []BalanceDelta{
			{AccountID: t.AccountID, Amount: t.Amount.Neg()},
			{AccountID: f.DestinationAccountID, Amount: t.Amount},
		}
	}
	return nil
}

// Reversal is the exact negation of Effects.
func Reversal(t *models.Transaction) []BalanceDelta {
	effects := Effects(t)
	for i := range effects {
		effects[i].Amount = effects[i].Amount.Neg()
	}
	return effects
}

// BalanceMutator is the only writer of account balances. It never opens its
// own unit of work.
type BalanceMutator struct{}

// Apply adds delta to the account's balance inside tx.
func (BalanceMutator) Apply(ctx context.Context, tx repository.Tx, accountID int64, delta decimal.Decimal) error {
	err := tx.AdjustBalance(ctx, accountID, delta)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Resource: "account", ID: accountID}
	}
	return err
}

// ApplyAll applies deltas in order and stops at the first failure, which
// aborts the caller's unit of work. Zero deltas are skipped.
func (m BalanceMutator) ApplyAll(ctx context.Context, tx repository.Tx, deltas []BalanceDelta) error {
	for _, d := range deltas {
		if d.Amount.IsZero() {
			continue
		}
		if err := m.Apply(ctx, tx, d.AccountID, d.Amount); err != nil {
			return err
		}
	}
	return nil
}

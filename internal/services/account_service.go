package services

import (
	"context"
	"errors"
	"log"

	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/repository"
	"github.com/shopspring/decimal"
)

// CreateAccountInput opens an account with a starting balance.
type CreateAccountInput struct {
	Name        string             `json:"name" validate:"required,max=255"`
	Type        models.AccountType `json:"type" validate:"required,oneof=checking savings credit investment cash other"`
	Balance     decimal.Decimal    `json:"balance"`
	Description string             `json:"description" validate:"max=500"`
}

// UpdateAccountInput has no balance: only the ledger changes it.
type UpdateAccountInput struct {
	Name        string             `json:"name" validate:"required,max=255"`
	Type        models.AccountType `json:"type" validate:"required,oneof=checking savings credit investment cash other"`
	Description string             `json:"description" validate:"max=500"`
}

// AccountService manages accounts. Balances change only through the ledger.
type AccountService struct {
	store     repository.AccountStore
	validator *ValidationHelper
}

// NewAccountService returns an AccountService backed by store.
func NewAccountService(store repository.AccountStore) *AccountService {
	return &AccountService{store: store, validator: NewValidationHelper()}
}

// Create opens an account. The initial balance is also kept as the opening
// balance that reconciliation starts from.
func (s *AccountService) Create(ctx context.Context, ownerID int64, in CreateAccountInput) (*models.Account, error) {
	if err := s.validator.ValidateStruct(&in); err != nil {
		return nil, err
	}
	if !in.Balance.Equal(in.Balance.Round(2)) {
		return nil, invalid("balance", "must have at most two decimal places")
	}

	acc := &models.Account{
		OwnerID:        ownerID,
		Name:           in.Name,
		Type:           in.Type,
		Balance:        in.Balance,
		OpeningBalance: in.Balance,
		Description:    in.Description,
	}
	if err := s.store.CreateAccount(ctx, acc); err != nil {
		return nil, asDomainError("create account", err)
	}
	return acc, nil
}

// Get returns the account if ownerID owns it.
func (s *AccountService) Get(ctx context.Context, id, ownerID int64) (*models.Account, error) {
	acc, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if acc.IsDeleted() {
		return nil, &NotFoundError{Resource: "account", ID: id}
	}
	return acc, nil
}

// List returns the owner's open accounts.
func (s *AccountService) List(ctx context.Context, ownerID int64) ([]models.Account, error) {
	accounts, err := s.store.ListAccounts(ctx, ownerID)
	if err != nil {
		return nil, asDomainError("list accounts", err)
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}

// Update edits the account's name, type and description.
func (s *AccountService) Update(ctx context.Context, id, ownerID int64, in UpdateAccountInput) (*models.Account, error) {
	if err := s.validator.ValidateStruct(&in); err != nil {
		return nil, err
	}
	acc, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	acc.Name = in.Name
	acc.Type = in.Type
	acc.Description = in.Description
	if err := s.store.UpdateAccount(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "account", ID: id}
		}
		return nil, asDomainError("update account", err)
	}
	return acc, nil
}

// Delete closes the account. Its transactions stay and can still be edited or
// deleted, but no new effect may target it.
func (s *AccountService) Delete(ctx context.Context, id, ownerID int64) error {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return err
	}
	if err := s.store.SoftDeleteAccount(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Resource: "account", ID: id}
		}
		return asDomainError("delete account", err)
	}
	return nil
}

// Reconcile compares the running balance with the one derived from the
// opening balance and the stored transactions.
func (s *AccountService) Reconcile(ctx context.Context, id, ownerID int64) (*models.Reconciliation, error) {
	acc, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, acc)
}

// ReconcileAll reconciles every open account of the owner.
func (s *AccountService) ReconcileAll(ctx context.Context, ownerID int64) ([]models.Reconciliation, error) {
	accounts, err := s.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Reconciliation, 0, len(accounts))
	for i := range accounts {
		r, err := s.reconcile(ctx, &accounts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *AccountService) reconcile(ctx context.Context, acc *models.Account) (*models.Reconciliation, error) {
	flows, err := s.store.AccountFlows(ctx, acc.ID)
	if err != nil {
		return nil, asDomainError("reconcile account", err)
	}
	r := models.NewReconciliation(acc, flows)
	if !r.Consistent {
		log.Printf("[LEDGER] account %d drifted: balance=%s derived=%s", acc.ID, r.Balance, r.Derived)
	}
	return &r, nil
}

func (s *AccountService) owned(ctx context.Context, id, ownerID int64) (*models.Account, error) {
	acc, err := s.store.GetAccount(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Resource: "account", ID: id}
	}
	if err != nil {
		return nil, asDomainError("get account", err)
	}
	if acc.OwnerID != ownerID {
		return nil, &AuthorizationError{Resource: "account", ID: id}
	}
	return acc, nil
}

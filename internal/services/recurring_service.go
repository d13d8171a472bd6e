package services

import (
	"context"
	"errors"
	"strings"

	"github.com/kasflow/backend/internal/date"
	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/recurrence"
	"github.com/kasflow/backend/internal/repository"
	"github.com/shopspring/decimal"
)

// maxPreviewDays bounds the range Preview walks day by day.
const maxPreviewDays = 366

// RecurringInput is the caller-supplied part of a recurring rule.
type RecurringInput struct {
	AccountID            int64                  `json:"account_id" validate:"required,gt=0"`
	CategoryID           *int64                 `json:"category_id" validate:"omitempty,gt=0"`
	Type                 models.TransactionType `json:"type" validate:"required,oneof=income expense transfer"`
	DestinationAccountID *int64                 `json:"destination_account_id" validate:"omitempty,gt=0"`
	Amount               decimal.Decimal        `json:"amount" validate:"required,gt=0"`
	Description          string                 `json:"description" validate:"max=480"`
	Frequency            models.Frequency       `json:"frequency" validate:"required,oneof=daily weekly monthly yearly"`
	DayOfMonth           *int                   `json:"day_of_month" validate:"omitempty,min=1,max=31"`
	StartDate            date.Date              `json:"start_date" validate:"required"`
	EndDate              *date.Date             `json:"end_date" validate:"omitempty"`
}

// RecurringService manages recurring rules. Generating their transactions is
// the scheduler's job.
type RecurringService struct {
	store      repository.RecurringStore
	accounts   repository.AccountStore
	categories repository.CategoryStore
	validator  *ValidationHelper
}

// NewRecurringService returns a RecurringService that checks accounts and
// categories against their stores.
func NewRecurringService(store repository.RecurringStore, accounts repository.AccountStore, categories repository.CategoryStore) *RecurringService {
	return &RecurringService{
		store:      store,
		accounts:   accounts,
		categories: categories,
		validator:  NewValidationHelper(),
	}
}

// Create validates and stores a new rule for ownerID.
func (s *RecurringService) Create(ctx context.Context, ownerID int64, in RecurringInput) (*models.RecurringTransaction, error) {
	if err := s.validate(ctx, ownerID, in); err != nil {
		return nil, err
	}
	rule := &models.RecurringTransaction{OwnerID: ownerID}
	in.applyTo(rule)
	if err := s.store.CreateRecurring(ctx, rule); err != nil {
		return nil, asDomainError("create recurring transaction", err)
	}
	return rule, nil
}

// Get returns the rule if ownerID owns it.
func (s *RecurringService) Get(ctx context.Context, id, ownerID int64) (*models.RecurringTransaction, error) {
	rule, err := s.store.GetRecurring(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Resource: "recurring transaction", ID: id}
	}
	if err != nil {
		return nil, asDomainError("get recurring transaction", err)
	}
	if rule.OwnerID != ownerID {
		return nil, &AuthorizationError{Resource: "recurring transaction", ID: id}
	}
	return rule, nil
}

// List returns the owner's rules, newest first. Type and frequency must be
// known values when set; search matches the description case-insensitively.
func (s *RecurringService) List(ctx context.Context, ownerID int64, f repository.RecurringFilter) ([]models.RecurringTransaction, error) {
	f.Search = strings.TrimSpace(f.Search)
	if f.Type != "" && !f.Type.Valid() {
		return nil, invalid("type", "must be income, expense or transfer")
	}
	if f.Frequency != "" && !f.Frequency.Valid() {
		return nil, invalid("frequency", "must be daily, weekly, monthly or yearly")
	}
	if len(f.Search) > 255 {
		return nil, invalid("search", "must be at most 255 characters")
	}

	rules, err := s.store.ListRecurring(ctx, ownerID, f)
	if err != nil {
		return nil, asDomainError("list recurring transactions", err)
	}
	if rules == nil {
		rules = []models.RecurringTransaction{}
	}
	return rules, nil
}

// Update replaces the rule. Transactions it already generated are left as they are.
func (s *RecurringService) Update(ctx context.Context, id, ownerID int64, in RecurringInput) (*models.RecurringTransaction, error) {
	rule, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, ownerID, in); err != nil {
		return nil, err
	}
	in.applyTo(rule)
	if err := s.store.UpdateRecurring(ctx, rule); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Resource: "recurring transaction", ID: id}
		}
		return nil, asDomainError("update recurring transaction", err)
	}
	return rule, nil
}

// Delete removes the rule and keeps the transactions it generated.
func (s *RecurringService) Delete(ctx context.Context, id, ownerID int64) error {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return err
	}
	if err := s.store.DeleteRecurring(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Resource: "recurring transaction", ID: id}
		}
		return asDomainError("delete recurring transaction", err)
	}
	return nil
}

// Preview lists the days in [from, to] on which the rule will fire.
func (s *RecurringService) Preview(ctx context.Context, id, ownerID int64, from, to date.Date) ([]date.Date, error) {
	if from.IsZero() || to.IsZero() {
		return nil, invalid("from", "from and to are required")
	}
	if to.Before(from) {
		return nil, invalid("to", "must not be before from")
	}
	if to.DaysSince(from) > maxPreviewDays {
		return nil, invalid("to", "range must not exceed one year")
	}
	rule, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	days := recurrence.Occurrences(*rule, from, to)
	if days == nil {
		days = []date.Date{}
	}
	return days, nil
}

func (s *RecurringService) validate(ctx context.Context, ownerID int64, in RecurringInput) error {
	if err := s.validator.ValidateStruct(&in); err != nil {
		return err
	}
	if err := validateAmount(in.Amount); err != nil {
		return err
	}
	if _, err := validateFlow(in.Type, in.AccountID, in.DestinationAccountID, in.CategoryID); err != nil {
		return err
	}
	if in.Frequency.NeedsDayOfMonth() && in.DayOfMonth == nil {
		return invalid("day_of_month", "required for monthly and yearly rules")
	}
	if in.EndDate != nil && !in.EndDate.After(in.StartDate) {
		return invalid("end_date", "must be after start_date")
	}

	if err := s.checkAccount(ctx, ownerID, "account_id", in.AccountID); err != nil {
		return err
	}
	if in.DestinationAccountID != nil {
		if err := s.checkAccount(ctx, ownerID, "destination_account_id", *in.DestinationAccountID); err != nil {
			return err
		}
	}
	if in.CategoryID != nil {
		c, err := s.categories.GetCategory(ctx, *in.CategoryID)
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Resource: "category", ID: *in.CategoryID}
		}
		if err != nil {
			return asDomainError("get category", err)
		}
		if !c.VisibleTo(ownerID) {
			return &AuthorizationError{Resource: "category", ID: c.ID}
		}
		if !c.Type.Accepts(in.Type) {
			return invalid("category_id", "category type does not match transaction type")
		}
	}
	return nil
}

func (s *RecurringService) checkAccount(ctx context.Context, ownerID int64, field string, id int64) error {
	acc, err := s.accounts.GetAccount(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Resource: "account", ID: id}
	}
	if err != nil {
		return asDomainError("get account", err)
	}
	if acc.OwnerID != ownerID {
		return &AuthorizationError{Resource: "account", ID: id}
	}
	if acc.IsDeleted() {
		return invalid(field, "account is closed")
	}
	return nil
}

func (in RecurringInput) applyTo(r *models.RecurringTransaction) {
	r.AccountID = in.AccountID
	r.CategoryID = in.CategoryID
	r.Type = in.Type
	r.DestinationAccountID = in.DestinationAccountID
	r.Amount = in.Amount
	r.Description = in.Description
	r.Frequency = in.Frequency
	r.DayOfMonth = in.DayOfMonth
	r.StartDate = in.StartDate
	r.EndDate = in.EndDate
}

package services

import (
	"context"

	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) CreateAccount(ctx context.Context, a *models.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountStore) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountStore) ListAccounts(ctx context.Context, ownerID int64) ([]models.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountStore) UpdateAccount(ctx context.Context, a *models.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountStore) SoftDeleteAccount(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccountStore) AccountFlows(ctx context.Context, accountID int64) (models.AccountFlows, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(models.AccountFlows), args.Error(1)
}

type MockCategoryStore struct {
	mock.Mock
}

func (m *MockCategoryStore) CreateCategory(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryStore) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryStore) ListCategories(ctx context.Context, ownerID int64) ([]models.Category, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryStore) UpdateCategory(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryStore) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryStore) CategoryNameTaken(ctx context.Context, ownerID int64, name string, t models.CategoryType, excludeID int64) (bool, error) {
	args := m.Called(ctx, ownerID, name, t, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryStore) CategoryInUse(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockRecurringStore struct {
	mock.Mock
}

func (m *MockRecurringStore) CreateRecurring(ctx context.Context, r *models.RecurringTransaction) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecurringStore) GetRecurring(ctx context.Context, id int64) (*models.RecurringTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecurringTransaction), args.Error(1)
}

func (m *MockRecurringStore) ListRecurring(ctx context.Context, ownerID int64, f repository.RecurringFilter) ([]models.RecurringTransaction, error) {
	args := m.Called(ctx, ownerID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecurringTransaction), args.Error(1)
}

func (m *MockRecurringStore) UpdateRecurring(ctx context.Context, r *models.RecurringTransaction) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecurringStore) DeleteRecurring(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

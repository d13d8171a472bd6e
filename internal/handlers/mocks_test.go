package handlers

import (
	"context"
	"time"

	"github.com/kasflow/backend/internal/date"
	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/repository"
	"github.com/kasflow/backend/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Create(ctx context.Context, ownerID int64, in services.TransactionInput) (*models.Transaction, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionService) Update(ctx context.Context, id, ownerID int64, in services.TransactionInput) (*models.Transaction, error) {
	args := m.Called(ctx, id, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionService) Delete(ctx context.Context, id, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockTransactionService) Get(ctx context.Context, id, ownerID int64) (*models.Transaction, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListMonth(ctx context.Context, ownerID int64, year int, month time.Month) (*services.MonthlyStatement, error) {
	args := m.Called(ctx, ownerID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MonthlyStatement), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Create(ctx context.Context, ownerID int64, in services.CreateAccountInput) (*models.Account, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) Get(ctx context.Context, id, ownerID int64) (*models.Account, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) List(ctx context.Context, ownerID int64) ([]models.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountService) Update(ctx context.Context, id, ownerID int64, in services.UpdateAccountInput) (*models.Account, error) {
	args := m.Called(ctx, id, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) Delete(ctx context.Context, id, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockAccountService) Reconcile(ctx context.Context, id, ownerID int64) (*models.Reconciliation, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reconciliation), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, ownerID int64) ([]models.Category, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, ownerID int64, in services.CategoryInput) (*models.Category, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id, ownerID int64, in services.CategoryInput) (*models.Category, error) {
	args := m.Called(ctx, id, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

type MockRecurringService struct {
	mock.Mock
}

func (m *MockRecurringService) Create(ctx context.Context, ownerID int64, in services.RecurringInput) (*models.RecurringTransaction, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecurringTransaction), args.Error(1)
}

func (m *MockRecurringService) Get(ctx context.Context, id, ownerID int64) (*models.RecurringTransaction, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecurringTransaction), args.Error(1)
}

func (m *MockRecurringService) List(ctx context.Context, ownerID int64, f repository.RecurringFilter) ([]models.RecurringTransaction, error) {
	args := m.Called(ctx, ownerID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecurringTransaction), args.Error(1)
}

func (m *MockRecurringService) Update(ctx context.Context, id, ownerID int64, in services.RecurringInput) (*models.RecurringTransaction, error) {
	args := m.Called(ctx, id, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecurringTransaction), args.Error(1)
}

func (m *MockRecurringService) Delete(ctx context.Context, id, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockRecurringService) Preview(ctx context.Context, id, ownerID int64, from, to date.Date) ([]date.Date, error) {
	args := m.Called(ctx, id, ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]date.Date), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Dashboard(ctx context.Context, ownerID int64, today date.Date) (*services.Dashboard, error) {
	args := m.Called(ctx, ownerID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Dashboard), args.Error(1)
}

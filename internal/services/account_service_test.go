package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("opening balance mirrors initial balance", func(t *testing.T) {
		store := new(MockAccountStore)
		svc := NewAccountService(store)

		store.On("CreateAccount", ctx, mock.MatchedBy(func(a *models.Account) bool {
			return a.OwnerID == owner && a.Balance.Equal(amt("150.25")) && a.OpeningBalance.Equal(amt("150.25"))
		})).Return(nil)

		acc, err := svc.Create(ctx, owner, CreateAccountInput{Name: "Wallet", Type: models.AccountCash, Balance: amt("150.25")})
		require.NoError(t, err)
		assert.Equal(t, "Wallet", acc.Name)
		store.AssertExpectations(t)
	})

	t.Run("invalid type", func(t *testing.T) {
		store := new(MockAccountStore)
		svc := NewAccountService(store)

		_, err := svc.Create(ctx, owner, CreateAccountInput{Name: "Wallet", Type: "piggybank"})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "type", ve.Field)
		store.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		store := new(MockAccountStore)
		svc := NewAccountService(store)
		store.On("CreateAccount", ctx, mock.Anything).Return(errors.New("connection refused"))

		_, err := svc.Create(ctx, owner, CreateAccountInput{Name: "Wallet", Type: models.AccountCash})
		assert.ErrorIs(t, err, ErrConsistency)
	})
}

func TestAccountService_Update(t *testing.T) {
	ctx := context.Background()
	store := new(MockAccountStore)
	svc := NewAccountService(store)

	store.On("GetAccount", ctx, int64(10)).Return(&models.Account{ID: 10, OwnerID: owner, Name: "Old", Balance: amt("50")}, nil)
	store.On("UpdateAccount", ctx, mock.MatchedBy(func(a *models.Account) bool {
		return a.Name == "New" && a.Balance.Equal(amt("50"))
	})).Return(nil)

	acc, err := svc.Update(ctx, 10, owner, UpdateAccountInput{Name: "New", Type: models.AccountSavings})
	require.NoError(t, err)
	assert.Equal(t, models.AccountSavings, acc.Type)
	store.AssertExpectations(t)
}

func TestAccountService_GetOwnership(t *testing.T) {
	ctx := context.Background()
	store := new(MockAccountStore)
	svc := NewAccountService(store)
	closed := time.Now()

	store.On("GetAccount", ctx, int64(10)).Return(&models.Account{ID: 10, OwnerID: 2}, nil)
	store.On("GetAccount", ctx, int64(11)).Return(nil, repository.ErrNotFound)
	store.On("GetAccount", ctx, int64(12)).Return(&models.Account{ID: 12, OwnerID: owner, DeletedAt: &closed}, nil)

	_, err := svc.Get(ctx, 10, owner)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Get(ctx, 11, owner)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, 12, owner)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 10, owner), ErrUnauthorized)
	store.AssertNotCalled(t, "SoftDeleteAccount", mock.Anything, mock.Anything)
}

func TestAccountService_Delete(t *testing.T) {
	ctx := context.Background()
	store := new(MockAccountStore)
	svc := NewAccountService(store)

	store.On("GetAccount", ctx, int64(10)).Return(&models.Account{ID: 10, OwnerID: owner}, nil)
	store.On("SoftDeleteAccount", ctx, int64(10)).Return(nil)

	assert.NoError(t, svc.Delete(ctx, 10, owner))
	store.AssertExpectations(t)
}

func TestAccountService_Reconcile(t *testing.T) {
	ctx := context.Background()
	store := new(MockAccountStore)
	svc := NewAccountService(store)

	store.On("GetAccount", ctx, int64(10)).Return(&models.Account{
		ID: 10, OwnerID: owner, OpeningBalance: amt("1000"), Balance: amt("1150"),
	}, nil)
	store.On("AccountFlows", ctx, int64(10)).Return(models.AccountFlows{
		Income: amt("500"), Expense: amt("100"), TransferOut: amt("300"), TransferIn: amt("50"),
	}, nil)

	r, err := svc.Reconcile(ctx, 10, owner)
	require.NoError(t, err)
	assert.True(t, r.Consistent)
	assert.True(t, amt("1150").Equal(r.Derived))
}

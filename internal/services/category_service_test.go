package services

import (
	"context"
	"testing"

	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("owned scope", func(t *testing.T) {
		store := new(MockCategoryStore)
		svc := NewCategoryService(store)

		store.On("CategoryNameTaken", ctx, owner, "Coffee", models.CategoryExpense, int64(0)).Return(false, nil)
		store.On("CreateCategory", ctx, mock.MatchedBy(func(c *models.Category) bool {
			return c.OwnedBy(owner) && c.Name == "Coffee"
		})).Return(nil)

		c, err := svc.Create(ctx, owner, CategoryInput{Name: "  Coffee ", Type: models.CategoryExpense})
		require.NoError(t, err)
		assert.False(t, c.IsDefault())
		store.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		store := new(MockCategoryStore)
		svc := NewCategoryService(store)

		store.On("CategoryNameTaken", ctx, owner, "Coffee", models.CategoryExpense, int64(0)).Return(true, nil)

		_, err := svc.Create(ctx, owner, CategoryInput{Name: "Coffee", Type: models.CategoryExpense})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "name", ve.Field)
		store.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	})

	t.Run("unique violation from storage", func(t *testing.T) {
		store := new(MockCategoryStore)
		svc := NewCategoryService(store)

		store.On("CategoryNameTaken", ctx, owner, "Coffee", models.CategoryExpense, int64(0)).Return(false, nil)
		store.On("CreateCategory", ctx, mock.Anything).Return(repository.ErrDuplicate)

		_, err := svc.Create(ctx, owner, CategoryInput{Name: "Coffee", Type: models.CategoryExpense})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestCategoryService_DefaultsAreReadOnly(t *testing.T) {
	ctx := context.Background()
	store := new(MockCategoryStore)
	svc := NewCategoryService(store)

	store.On("GetCategory", ctx, int64(1)).Return(&models.Category{ID: 1, Scope: models.DefaultScope{}, Type: models.CategoryIncome}, nil)

	_, err := svc.Update(ctx, 1, owner, CategoryInput{Name: "Pay", Type: models.CategoryIncome})
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.ErrorIs(t, svc.Delete(ctx, 1, owner), ErrUnauthorized)
	store.AssertNotCalled(t, "DeleteCategory", mock.Anything, mock.Anything)
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()
	own := func() *models.Category {
		return &models.Category{ID: 5, Scope: models.OwnedScope{OwnerID: owner}, Name: "Food", Type: models.CategoryExpense}
	}

	t.Run("type change rejected while in use", func(t *testing.T) {
		store := new(MockCategoryStore)
		svc := NewCategoryService(store)

		store.On("GetCategory", ctx, int64(5)).Return(own(), nil)
		store.On("CategoryNameTaken", ctx, owner, "Food", models.CategoryIncome, int64(5)).Return(false, nil)
		store.On("CategoryInUse", ctx, int64(5)).Return(true, nil)

		_, err := svc.Update(ctx, 5, owner, CategoryInput{Name: "Food", Type: models.CategoryIncome})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "type", ve.Field)
	})

	t.Run("rename", func(t *testing.T) {
		store := new(MockCategoryStore)
		svc := NewCategoryService(store)

		store.On("GetCategory", ctx, int64(5)).Return(own(), nil)
		store.On("CategoryNameTaken", ctx, owner, "Groceries", models.CategoryExpense, int64(5)).Return(false, nil)
		store.On("UpdateCategory", ctx, mock.Anything).Return(nil)

		c, err := svc.Update(ctx, 5, owner, CategoryInput{Name: "Groceries", Type: models.CategoryExpense, Icon: "cart"})
		require.NoError(t, err)
		assert.Equal(t, "cart", c.Icon)
		store.AssertExpectations(t)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("in use", func(t *testing.T) {
		store := new(MockCategoryStore)
		svc := NewCategoryService(store)

		store.On("GetCategory", ctx, int64(5)).Return(&models.Category{ID: 5, Scope: models.OwnedScope{OwnerID: owner}}, nil)
		store.On("CategoryInUse", ctx, int64(5)).Return(true, nil)

		assert.ErrorIs(t, svc.Delete(ctx, 5, owner), ErrValidation)
		store.AssertNotCalled(t, "DeleteCategory", mock.Anything, mock.Anything)
	})

	t.Run("unused", func(t *testing.T) {
		store := new(MockCategoryStore)
		svc := NewCategoryService(store)

		store.On("GetCategory", ctx, int64(5)).Return(&models.Category{ID: 5, Scope: models.OwnedScope{OwnerID: owner}}, nil)
		store.On("CategoryInUse", ctx, int64(5)).Return(false, nil)
		store.On("DeleteCategory", ctx, int64(5)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, 5, owner))
		store.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		store := new(MockCategoryStore)
		svc := NewCategoryService(store)

		store.On("GetCategory", ctx, int64(6)).Return(nil, repository.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, 6, owner), ErrNotFound)
	})
}

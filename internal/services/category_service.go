package services

import (
	"context"
	"errors"
	"strings"

	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/repository"
)

// CategoryInput is the caller-supplied part of a category.
type CategoryInput struct {
	Name string              `json:"name" validate:"required,max=100"`
	Type models.CategoryType `json:"type" validate:"required,oneof=income expense"`
	Icon string              `json:"icon" validate:"max=50"`
}

// CategoryService manages owner-defined categories. Default categories are read-only.
type CategoryService struct {
	store     repository.CategoryStore
	validator *ValidationHelper
}

// NewCategoryService returns a CategoryService backed by store.
func NewCategoryService(store repository.CategoryStore) *CategoryService {
	return &CategoryService{store: store, validator: NewValidationHelper()}
}

// List returns the owner's categories together with the default ones.
func (s *CategoryService) List(ctx context.Context, ownerID int64) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, asDomainError("list categories", err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// Create adds a category owned by ownerID. Names are unique per owner and type.
func (s *CategoryService) Create(ctx context.Context, ownerID int64, in CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.ValidateStruct(&in); err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, ownerID, in, 0); err != nil {
		return nil, err
	}

	c := &models.Category{
		Scope: models.OwnedScope{OwnerID: ownerID},
		Name:  in.Name,
		Type:  in.Type,
		Icon:  in.Icon,
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("name", "category already exists")
		}
		return nil, asDomainError("create category", err)
	}
	return c, nil
}

// Update edits one of the owner's categories. Default categories are read-only.
func (s *CategoryService) Update(ctx context.Context, id, ownerID int64, in CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.ValidateStruct(&in); err != nil {
		return nil, err
	}
	c, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, ownerID, in, id); err != nil {
		return nil, err
	}
	if in.Type != c.Type {
		// referencing transactions would no longer match their category
		used, err := s.store.CategoryInUse(ctx, id)
		if err != nil {
			return nil, asDomainError("update category", err)
		}
		if used {
			return nil, invalid("type", "cannot change the type of a category in use")
		}
	}

	c.Name, c.Type, c.Icon = in.Name, in.Type, in.Icon
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("name", "category already exists")
		}
		return nil, asDomainError("update category", err)
	}
	return c, nil
}

// Delete removes an unused category owned by ownerID.
func (s *CategoryService) Delete(ctx context.Context, id, ownerID int64) error {
	if _, err := s.owned(ctx, id, ownerID); err != nil {
		return err
	}
	used, err := s.store.CategoryInUse(ctx, id)
	if err != nil {
		return asDomainError("delete category", err)
	}
	if used {
		return invalid("category", "referenced by transactions or recurring rules")
	}
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Resource: "category", ID: id}
		}
		return asDomainError("delete category", err)
	}
	return nil
}

func (s *CategoryService) checkName(ctx context.Context, ownerID int64, in CategoryInput, excludeID int64) error {
	taken, err := s.store.CategoryNameTaken(ctx, ownerID, in.Name, in.Type, excludeID)
	if err != nil {
		return asDomainError("check category name", err)
	}
	if taken {
		return invalid("name", "category already exists")
	}
	return nil
}

func (s *CategoryService) owned(ctx context.Context, id, ownerID int64) (*models.Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Resource: "category", ID: id}
	}
	if err != nil {
		return nil, asDomainError("get category", err)
	}
	if !c.OwnedBy(ownerID) {
		return nil, &AuthorizationError{Resource: "category", ID: id}
	}
	return c, nil
}

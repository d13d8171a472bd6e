package handlers

import (
	"context"
	"net/http"

	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/services"
)

// CategoryService is what CategoryHandler needs from the service layer.
type CategoryService interface {
	List(ctx context.Context, ownerID int64) ([]models.Category, error)
	Create(ctx context.Context, ownerID int64, in services.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id, ownerID int64, in services.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id, ownerID int64) error
}

// CategoryHandler serves /categories.
type CategoryHandler struct {
	service CategoryService
}

// NewCategoryHandler returns a CategoryHandler backed by service.
func NewCategoryHandler(service CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List returns the default categories plus the caller's own
// @Summary List categories
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	categories, err := h.service.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CategoryInput true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} services.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var in services.CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.service.Create(r.Context(), owner, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body services.CategoryInput true "Category"
// @Success 200 {object} models.Category
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in services.CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.service.Update(r.Context(), id, owner, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// @Summary Delete category
// @Tags Categories
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id, owner); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

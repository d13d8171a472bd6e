package handlers

import (
	"context"
	"net/http"

	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/services"
)

// AccountService is what AccountHandler needs from the service layer.
type AccountService interface {
	Create(ctx context.Context, ownerID int64, in services.CreateAccountInput) (*models.Account, error)
	Get(ctx context.Context, id, ownerID int64) (*models.Account, error)
	List(ctx context.Context, ownerID int64) ([]models.Account, error)
	Update(ctx context.Context, id, ownerID int64, in services.UpdateAccountInput) (*models.Account, error)
	Delete(ctx context.Context, id, ownerID int64) error
	Reconcile(ctx context.Context, id, ownerID int64) (*models.Reconciliation, error)
}

// AccountHandler serves /accounts.
type AccountHandler struct {
	service AccountService
}

// NewAccountHandler returns an AccountHandler backed by service.
func NewAccountHandler(service AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// @Summary List accounts
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Account
// @Router /accounts [get]
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	accounts, err := h.service.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// Create opens an account; the balance given becomes the opening balance
// @Summary Create account
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CreateAccountInput true "Account"
// @Success 201 {object} models.Account
// @Failure 400 {object} services.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var in services.CreateAccountInput
	if !decodeJSON(w, r, &in) {
		return
	}
	acc, err := h.service.Create(r.Context(), owner, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

// @Summary Get account
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} models.Account
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	acc, err := h.service.Get(r.Context(), id, owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// Update edits name, type and description. The balance is not accepted.
// @Summary Update account
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body services.UpdateAccountInput true "Account"
// @Success 200 {object} models.Account
// @Failure 400 {object} services.ErrorResponse
// @Router /accounts/{id} [put]
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in services.UpdateAccountInput
	if !decodeJSON(w, r, &in) {
		return
	}
	acc, err := h.service.Update(r.Context(), id, owner, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// @Summary Close account
// @Tags Accounts
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 204
// @Router /accounts/{id} [delete]
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Reconcile compares the running balance with the transaction history
// @Summary Reconcile account
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} models.Reconciliation
// @Router /accounts/{id}/reconcile [get]
func (h *AccountHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rec, err := h.service.Reconcile(r.Context(), id, owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

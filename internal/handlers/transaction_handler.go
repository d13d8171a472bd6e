package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/services"
)

// TransactionService is what TransactionHandler needs from the ledger.
type TransactionService interface {
	Create(ctx context.Context, ownerID int64, in services.TransactionInput) (*models.Transaction, error)
	Update(ctx context.Context, id, ownerID int64, in services.TransactionInput) (*models.Transaction, error)
	Delete(ctx context.Context, id, ownerID int64) error
	Get(ctx context.Context, id, ownerID int64) (*models.Transaction, error)
	ListMonth(ctx context.Context, ownerID int64, year int, month time.Month) (*services.MonthlyStatement, error)
}

// TransactionHandler serves /transactions.
type TransactionHandler struct {
	service TransactionService
	now     func() time.Time
}

// NewTransactionHandler returns a TransactionHandler backed by service.
func NewTransactionHandler(service TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service, now: time.Now}
}

// List returns one month of transactions with totals
// @Summary List transactions
// @Description List the caller's transactions for a calendar month (defaults to the current month)
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} services.MonthlyStatement
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	now := h.now()
	year, month := now.Year(), int(now.Month())
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			services.SendErrorResponse(w, "Invalid year", http.StatusBadRequest, nil)
			return
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			services.SendErrorResponse(w, "Invalid month", http.StatusBadRequest, nil)
			return
		}
		month = n
	}

	statement, err := h.service.ListMonth(r.Context(), owner, year, time.Month(month))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statement)
}

// Create records a transaction and applies its balance effect
// @Summary Create transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.TransactionInput true "Transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 503 {object} services.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var in services.TransactionInput
	if !decodeJSON(w, r, &in) {
		return
	}

	tr, err := h.service.Create(r.Context(), owner, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tr)
}

// @Summary Get transaction
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} services.ErrorResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	tr, err := h.service.Get(r.Context(), id, owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

// Update replaces a transaction, moving its balance effect
// @Summary Update transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param request body services.TransactionInput true "Transaction"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in services.TransactionInput
	if !decodeJSON(w, r, &in) {
		return
	}

	tr, err := h.service.Update(r.Context(), id, owner, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

// Delete removes a transaction and reverses its balance effect
// @Summary Delete transaction
// @Tags Transactions
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

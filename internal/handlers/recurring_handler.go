package handlers

import (
	"context"
	"net/http"

	"github.com/kasflow/backend/internal/date"
	"github.com/kasflow/backend/internal/models"
	"github.com/kasflow/backend/internal/repository"
	"github.com/kasflow/backend/internal/services"
)

// RecurringService is what RecurringHandler needs from the service layer.
type RecurringService interface {
	Create(ctx context.Context, ownerID int64, in services.RecurringInput) (*models.RecurringTransaction, error)
	Get(ctx context.Context, id, ownerID int64) (*models.RecurringTransaction, error)
	List(ctx context.Context, ownerID int64, f repository.RecurringFilter) ([]models.RecurringTransaction, error)
	Update(ctx context.Context, id, ownerID int64, in services.RecurringInput) (*models.RecurringTransaction, error)
	Delete(ctx context.Context, id, ownerID int64) error
	Preview(ctx context.Context, id, ownerID int64, from, to date.Date) ([]date.Date, error)
}

// RecurringHandler serves /recurring-transactions.
type RecurringHandler struct {
	service RecurringService
}

// NewRecurringHandler returns a RecurringHandler backed by service.
func NewRecurringHandler(service RecurringService) *RecurringHandler {
	return &RecurringHandler{service: service}
}

// List returns the caller's rules, newest first
// @Summary List recurring rules
// @Tags Recurring
// @Produce json
// @Security BearerAuth
// @Param search query string false "Text the description contains"
// @Param type query string false "income, expense or transfer"
// @Param frequency query string false "daily, weekly, monthly or yearly"
// @Success 200 {array} models.RecurringTransaction
// @Failure 400 {object} services.ErrorResponse
// @Router /recurring-transactions [get]
func (h *RecurringHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := repository.RecurringFilter{
		Search:    q.Get("search"),
		Type:      models.TransactionType(q.Get("type")),
		Frequency: models.Frequency(q.Get("frequency")),
	}
	rules, err := h.service.List(r.Context(), owner, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

// @Summary Create recurring rule
// @Tags Recurring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.RecurringInput true "Rule"
// @Success 201 {object} models.RecurringTransaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /recurring-transactions [post]
func (h *RecurringHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var in services.RecurringInput
	if !decodeJSON(w, r, &in) {
		return
	}
	rule, err := h.service.Create(r.Context(), owner, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

// @Summary Get recurring rule
// @Tags Recurring
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rule ID"
// @Success 200 {object} models.RecurringTransaction
// @Failure 404 {object} services.ErrorResponse
// @Router /recurring-transactions/{id} [get]
func (h *RecurringHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rule, err := h.service.Get(r.Context(), id, owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

// Update replaces the rule. Transactions already generated are left as they are.
// @Summary Update recurring rule
// @Tags Recurring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rule ID"
// @Param request body services.RecurringInput true "Rule"
// @Success 200 {object} models.RecurringTransaction
// @Failure 400 {object} services.ErrorResponse
// @Router /recurring-transactions/{id} [put]
func (h *RecurringHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in services.RecurringInput
	if !decodeJSON(w, r, &in) {
		return
	}
	rule, err := h.service.Update(r.Context(), id, owner, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

// @Summary Delete recurring rule
// @Tags Recurring
// @Security BearerAuth
// @Param id path int true "Rule ID"
// @Success 204
// @Router /recurring-transactions/{id} [delete]
func (h *RecurringHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Occurrences lists the dates a rule fires on within [from, to]
// @Summary Preview occurrences
// @Tags Recurring
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rule ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {array} string
// @Failure 400 {object} services.ErrorResponse
// @Router /recurring-transactions/{id}/occurrences [get]
func (h *RecurringHandler) Occurrences(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	from, err := date.Parse(r.URL.Query().Get("from"))
	if err != nil {
		services.SendErrorResponse(w, "Invalid from date", http.StatusBadRequest, nil)
		return
	}
	to, err := date.Parse(r.URL.Query().Get("to"))
	if err != nil {
		services.SendErrorResponse(w, "Invalid to date", http.StatusBadRequest, nil)
		return
	}

	dates, err := h.service.Preview(r.Context(), id, owner, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dates)
}

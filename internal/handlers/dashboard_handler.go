package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/kasflow/backend/internal/date"
	"github.com/kasflow/backend/internal/services"
)

// DashboardService is what DashboardHandler needs from the service layer.
type DashboardService interface {
	Dashboard(ctx context.Context, ownerID int64, today date.Date) (*services.Dashboard, error)
}

// DashboardHandler serves the overview of the caller's finances.
type DashboardHandler struct {
	service DashboardService
	loc     *time.Location
	now     func() time.Time
}

// NewDashboardHandler returns a DashboardHandler that takes "today" in loc.
func NewDashboardHandler(service DashboardService, loc *time.Location) *DashboardHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{service: service, loc: loc, now: time.Now}
}

// Get returns balances, monthly totals and recent activity
// @Summary Dashboard
// @Description Balances, current and previous month totals, top expense categories, the last 7 days of spending and a 6 month trend
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day to report on (YYYY-MM-DD), defaults to today"
// @Success 200 {object} services.Dashboard
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	today := date.FromTime(h.now().In(h.loc))
	if v := r.URL.Query().Get("date"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			services.SendErrorResponse(w, "Invalid date", http.StatusBadRequest, nil)
			return
		}
		today = d
	}

	dashboard, err := h.service.Dashboard(r.Context(), owner, today)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

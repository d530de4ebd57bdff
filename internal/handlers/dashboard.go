package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"wellness-backend/internal/middleware"
	"wellness-backend/internal/models"
)

type dashboardService interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (models.Dashboard, error)
	Score(ctx context.Context, userID uuid.UUID) (int, error)
	Insights(ctx context.Context, userID uuid.UUID) ([]models.Insight, error)
	Series(ctx context.Context, userID uuid.UUID, category, field string, days int) ([]models.SeriesPoint, error)
}

type DashboardHandler struct {
	dashboard dashboardService
}

func NewDashboardHandler(dashboard dashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	d, err := h.dashboard.Dashboard(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

func (h *DashboardHandler) Score(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	score, err := h.dashboard.Score(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"score": score})
}

func (h *DashboardHandler) Insights(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	insights, err := h.dashboard.Insights(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"insights": insights})
}

// Series serves chart data: ?category=sleep&field=hours&days=7. Field defaults per category.
func (h *DashboardHandler) Series(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	q := r.URL.Query()

	days, err := queryDays(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	series, err := h.dashboard.Series(r.Context(), userID, q.Get("category"), q.Get("field"), days)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"series": series})
}

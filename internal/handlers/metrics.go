package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"wellness-backend/internal/middleware"
	"wellness-backend/internal/models"
)

type metricService interface {
	Log(ctx context.Context, userID uuid.UUID, req models.CreateMetricRequest) (*models.MetricSample, error)
	List(ctx context.Context, userID uuid.UUID, category string, days int) ([]models.MetricSample, error)
	Delete(ctx context.Context, userID, sampleID uuid.UUID) error
}

type MetricHandler struct {
	metrics metricService
}

func NewMetricHandler(metrics metricService) *MetricHandler {
	return &MetricHandler{metrics: metrics}
}

func (h *MetricHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateMetricRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	sample, err := h.metrics.Log(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sample)
}

func (h *MetricHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	days, err := queryDays(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	samples, err := h.metrics.List(r.Context(), userID, r.URL.Query().Get("category"), days)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if samples == nil {
		samples = []models.MetricSample{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"samples": samples})
}

func (h *MetricHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sampleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid metric ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.metrics.Delete(r.Context(), userID, sampleID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Metric deleted"})
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"wellness-backend/internal/models"
	"wellness-backend/internal/services"
)

type stubDashboardService struct {
	dashboard  models.Dashboard
	seriesArgs []string
	seriesDays int
}

func (s *stubDashboardService) Dashboard(ctx context.Context, userID uuid.UUID) (models.Dashboard, error) {
	return s.dashboard, nil
}

func (s *stubDashboardService) Score(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.dashboard.Score, nil
}

func (s *stubDashboardService) Insights(ctx context.Context, userID uuid.UUID) ([]models.Insight, error) {
	return s.dashboard.Insights, nil
}

func (s *stubDashboardService) Series(ctx context.Context, userID uuid.UUID, category, field string, days int) ([]models.SeriesPoint, error) {
	s.seriesArgs = []string{category, field}
	s.seriesDays = days
	if field == "steps" {
		return nil, &services.ValidationError{Fields: map[string]string{"field": "unknown field"}}
	}
	return make([]models.SeriesPoint, days), nil
}

func TestDashboardHandler_Overview(t *testing.T) {
	svc := &stubDashboardService{dashboard: models.Dashboard{
		Score: 72,
		Insights: []models.Insight{
			{Title: "Optimal Sleep Duration", Severity: models.SeveritySuccess},
		},
	}}
	h := NewDashboardHandler(svc)

	rr := httptest.NewRecorder()
	h.Overview(rr, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil), uuid.New()))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var got models.Dashboard
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Score != 72 || len(got.Insights) != 1 || got.Insights[0].Severity != "success" {
		t.Fatalf("unexpected dashboard: %+v", got)
	}
}

func TestDashboardHandler_Score(t *testing.T) {
	h := NewDashboardHandler(&stubDashboardService{dashboard: models.Dashboard{Score: 55}})

	rr := httptest.NewRecorder()
	h.Score(rr, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/score", nil), uuid.New()))

	var payload map[string]int
	json.NewDecoder(rr.Body).Decode(&payload)
	if payload["score"] != 55 {
		t.Fatalf("expected score 55, got %v", payload)
	}
}

func TestDashboardHandler_Series(t *testing.T) {
	svc := &stubDashboardService{}
	h := NewDashboardHandler(svc)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/series?category=sleep&field=hours&days=7", nil)
	h.Series(rr, withUser(req, uuid.New()))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if svc.seriesArgs[0] != "sleep" || svc.seriesArgs[1] != "hours" || svc.seriesDays != 7 {
		t.Fatalf("unexpected series args: %v days=%d", svc.seriesArgs, svc.seriesDays)
	}

	var payload map[string][]models.SeriesPoint
	json.NewDecoder(rr.Body).Decode(&payload)
	if len(payload["series"]) != 7 {
		t.Fatalf("expected 7 points, got %d", len(payload["series"]))
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/series?category=sleep&field=steps", nil)
	h.Series(rr, withUser(req, uuid.New()))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d for unknown field, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestDashboardHandler_SeriesRejectsOversizedDays(t *testing.T) {
	svc := &stubDashboardService{}
	h := NewDashboardHandler(svc)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/series?category=sleep&days=1000000000", nil)
	h.Series(rr, withUser(req, uuid.New()))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if svc.seriesArgs != nil {
		t.Fatalf("service must not be called for an oversized range")
	}

	var resp models.ErrorResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Error.Code != "VALIDATION_ERROR" || resp.Error.Fields["days"] == "" {
		t.Fatalf("expected days field error, got %+v", resp.Error)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/series?category=sleep&days=365", nil)
	h.Series(rr, withUser(req, uuid.New()))
	if rr.Code != http.StatusOK || svc.seriesDays != 365 {
		t.Fatalf("expected the maximum range to be accepted, got status %d days %d", rr.Code, svc.seriesDays)
	}
}

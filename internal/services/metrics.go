package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"wellness-backend/internal/models"
	"wellness-backend/internal/scoring"
)

type metricStore interface {
	Create(ctx context.Context, s *models.MetricSample) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MetricSample, error)
	ListByUser(ctx context.Context, userID uuid.UUID, category models.Category, since time.Time) ([]models.MetricSample, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type updatePublisher interface {
	PublishUpdate(ctx context.Context, userID uuid.UUID, msg models.WSMessage)
}

// MetricService loads a user's samples and hands them to the scoring engine.
// The history is rebuilt on every call.
type MetricService struct {
	store     metricStore
	engine    *scoring.Engine
	publisher updatePublisher
	now       func() time.Time
}

func NewMetricService(store metricStore, engine *scoring.Engine, publisher updatePublisher) *MetricService {
	return &MetricService{
		store:     store,
		engine:    engine,
		publisher: publisher,
		now:       time.Now,
	}
}

// Log stores a new sample and pushes the refreshed score to the user's open dashboards.
func (s *MetricService) Log(ctx context.Context, userID uuid.UUID, req models.CreateMetricRequest) (*models.MetricSample, error) {
	if !models.IsValidCategory(req.Category) {
		return nil, &ValidationError{Fields: map[string]string{
			"category": "category must be sleep, activity, diet, or stress",
		}}
	}

	now := s.now()
	recordedAt := now
	if req.RecordedAt != nil && !req.RecordedAt.IsZero() {
		recordedAt = *req.RecordedAt
	}

	sample := &models.MetricSample{
		UserID:       userID,
		Category:     models.Category(req.Category),
		RecordedAt:   recordedAt,
		Hours:        req.Hours,
		Quality:      req.Quality,
		Minutes:      req.Minutes,
		Intensity:    req.Intensity,
		MealQuality:  req.MealQuality,
		WaterGlasses: req.WaterGlasses,
		Level:        req.Level,
		Notes:        req.Notes,
	}

	if err := s.store.Create(ctx, sample); err != nil {
		return nil, fmt.Errorf("failed to store metric sample: %w", err)
	}

	if s.publisher != nil {
		history, err := s.History(ctx, userID)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("skipping live score update")
		} else {
			s.publisher.PublishUpdate(ctx, userID, models.WSMessage{
				Type:    models.WSTypeScoreUpdated,
				Payload: models.ScoreUpdate{Score: s.engine.Score(history, now), Category: sample.Category},
			})
		}
	}

	return sample, nil
}

// List returns the user's samples from the last days days. An empty category means all.
func (s *MetricService) List(ctx context.Context, userID uuid.UUID, category string, days int) ([]models.MetricSample, error) {
	if category != "" && !models.IsValidCategory(category) {
		return nil, &ValidationError{Fields: map[string]string{"category": "unknown category"}}
	}
	days, err := s.rangeDays(days)
	if err != nil {
		return nil, err
	}
	return s.store.ListByUser(ctx, userID, models.Category(category), s.now().AddDate(0, 0, -days))
}

func (s *MetricService) Delete(ctx context.Context, userID, sampleID uuid.UUID) error {
	sample, err := s.store.GetByID(ctx, sampleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Message: "Metric sample not found"}
		}
		return err
	}
	if sample.UserID != userID {
		return &ForbiddenError{Message: "Access denied"}
	}
	return s.store.Delete(ctx, sampleID)
}

// History builds the user's MetricHistory for the engine's lookback window.
func (s *MetricService) History(ctx context.Context, userID uuid.UUID) (models.MetricHistory, error) {
	var history models.MetricHistory
	since := s.now().AddDate(0, 0, -s.engine.WindowDays())

	samples, err := s.store.ListByUser(ctx, userID, "", since)
	if err != nil {
		return history, fmt.Errorf("failed to load metric history: %w", err)
	}
	for _, sample := range samples {
		history.Add(sample)
	}
	return history, nil
}

func (s *MetricService) Dashboard(ctx context.Context, userID uuid.UUID) (models.Dashboard, error) {
	history, err := s.History(ctx, userID)
	if err != nil {
		return models.Dashboard{}, err
	}
	return s.engine.Summarize(history, s.now()), nil
}

func (s *MetricService) Score(ctx context.Context, userID uuid.UUID) (int, error) {
	history, err := s.History(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.engine.Score(history, s.now()), nil
}

func (s *MetricService) Insights(ctx context.Context, userID uuid.UUID) ([]models.Insight, error) {
	history, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.engine.Insights(history, s.now()), nil
}

// Series charts one field of one category, one point per day.
func (s *MetricService) Series(ctx context.Context, userID uuid.UUID, category, field string, days int) ([]models.SeriesPoint, error) {
	if !models.IsValidCategory(category) {
		return nil, &ValidationError{Fields: map[string]string{"category": "unknown category"}}
	}

	f := scoring.DefaultField(models.Category(category))
	if field != "" {
		parsed, ok := scoring.ParseField(field)
		if !ok {
			return nil, &ValidationError{Fields: map[string]string{"field": "unknown field"}}
		}
		f = parsed
	}

	days, err := s.rangeDays(days)
	if err != nil {
		return nil, err
	}
	now := s.now()
	samples, err := s.store.ListByUser(ctx, userID, models.Category(category), now.AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("failed to load series samples: %w", err)
	}
	return s.engine.Series(samples, f, days, now), nil
}

// rangeDays defaults a non-positive range to the engine window and rejects
// anything above scoring.MaxRangeDays.
func (s *MetricService) rangeDays(days int) (int, error) {
	if days <= 0 {
		return s.engine.WindowDays(), nil
	}
	if days > scoring.MaxRangeDays {
		return 0, &ValidationError{Fields: map[string]string{
			"days": fmt.Sprintf("days must be at most %d", scoring.MaxRangeDays),
		}}
	}
	return days, nil
}

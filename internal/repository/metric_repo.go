package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wellness-backend/internal/models"
)

type MetricRepo struct {
	pool *pgxpool.Pool
}

func NewMetricRepo(pool *pgxpool.Pool) *MetricRepo {
	return &MetricRepo{pool: pool}
}

const metricColumns = `id, user_id, category, recorded_at, hours, quality, minutes, intensity,
	meal_quality, water_glasses, level, notes, created_at`

func (r *MetricRepo) Create(ctx context.Context, s *models.MetricSample) error {
	query := `
		INSERT INTO metric_samples (user_id, category, recorded_at, hours, quality, minutes, intensity,
			meal_quality, water_glasses, level, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		s.UserID, s.Category, s.RecordedAt, s.Hours, s.Quality, s.Minutes, s.Intensity,
		s.MealQuality, s.WaterGlasses, s.Level, s.Notes,
	).Scan(&s.ID, &s.CreatedAt)
}

func (r *MetricRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MetricSample, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+metricColumns+` FROM metric_samples WHERE id = $1`, id)
	return scanMetric(row)
}

// ListByUser returns samples recorded at or after since, oldest first. An
// empty category returns every category.
func (r *MetricRepo) ListByUser(ctx context.Context, userID uuid.UUID, category models.Category, since time.Time) ([]models.MetricSample, error) {
	query := `SELECT ` + metricColumns + ` FROM metric_samples WHERE user_id = $1 AND recorded_at >= $2`
	args := []interface{}{userID, since}
	if category != "" {
		query += " AND category = $3"
		args = append(args, category)
	}
	query += " ORDER BY recorded_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.MetricSample
	for rows.Next() {
		s, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, *s)
	}
	return samples, rows.Err()
}

func (r *MetricRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM metric_samples WHERE id = $1", id)
	return err
}

func scanMetric(row pgx.Row) (*models.MetricSample, error) {
	var s models.MetricSample
	err := row.Scan(
		&s.ID, &s.UserID, &s.Category, &s.RecordedAt, &s.Hours, &s.Quality, &s.Minutes, &s.Intensity,
		&s.MealQuality, &s.WaterGlasses, &s.Level, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

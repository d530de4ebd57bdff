package scoring

import (
	"time"

	"wellness-backend/internal/models"
)

const (
	seriesDayKey   = "2006-01-02"
	seriesDayLabel = "Mon Jan 2"
)

// MaxRangeDays bounds any day range taken from a request.
const MaxRangeDays = 365

// PrepareSeries returns exactly days points, one per calendar day ending on
// now's day, oldest first. Each value is the mean of that day's samples for
// field, or 0 for a day without samples. days is clamped to MaxRangeDays.
func PrepareSeries(samples []models.MetricSample, field Field, days int, now time.Time) []models.SeriesPoint {
	if days <= 0 {
		days = DefaultWindowDays
	}
	if days > MaxRangeDays {
		days = MaxRangeDays
	}

	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[string]*bucket, days)
	for _, s := range samples {
		key := s.RecordedAt.In(loc).Format(seriesDayKey)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += field.Value(s)
		b.count++
	}

	points := make([]models.SeriesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		p := models.SeriesPoint{Date: day.Format(seriesDayLabel)}
		if b, ok := buckets[day.Format(seriesDayKey)]; ok && b.count > 0 {
			p.Value = b.sum / float64(b.count)
		}
		points = append(points, p)
	}
	return points
}

// Series is PrepareSeries with the engine's window as the default length.
func (e *Engine) Series(samples []models.MetricSample, field Field, days int, now time.Time) []models.SeriesPoint {
	if days <= 0 {
		days = e.windowDays
	}
	return PrepareSeries(samples, field, days, now)
}

// Package scoring turns a user's recent metric samples into a 0-100 wellness
// score, threshold insights and per-day chart series. Everything here is a
// pure function of its arguments.
package scoring

import (
	"math"
	"time"

	"wellness-backend/internal/models"
)

const DefaultWindowDays = 7

// Target optima. A mean at or above its target earns a full sub-score.
const (
	TargetSleepHours        = 8.0
	TargetSleepQuality      = 10.0
	TargetActivityMinutes   = 30.0
	TargetActivityIntensity = 10.0
	TargetMealQuality       = 10.0
	TargetWaterGlasses      = 8.0
	StressScale             = 10.0
)

// Weights must sum to 1.
const (
	WeightSleepHours        = 0.15
	WeightSleepQuality      = 0.15
	WeightActivityMinutes   = 0.20
	WeightActivityIntensity = 0.10
	WeightMealQuality       = 0.15
	WeightWaterGlasses      = 0.05
	WeightStress            = 0.20
)

// Engine holds the lookback window. It carries no other state and is safe
// for concurrent use.
type Engine struct {
	windowDays int
}

// New returns an Engine with the given lookback window in days. Non-positive
// values fall back to DefaultWindowDays.
func New(windowDays int) *Engine {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return &Engine{windowDays: windowDays}
}

var defaultEngine = New(DefaultWindowDays)

// ComputeScore scores history over the default 7-day window ending at now.
func ComputeScore(history models.MetricHistory, now time.Time) int {
	return defaultEngine.Score(history, now)
}

// ComputeInsights evaluates the insight rules over the default window.
func ComputeInsights(history models.MetricHistory, now time.Time) []models.Insight {
	return defaultEngine.Insights(history, now)
}

func (e *Engine) WindowDays() int {
	return e.windowDays
}

// Score maps history to a wellness score in [0, 100]. A category without
// samples in the window contributes nothing, so an empty history scores 0.
func (e *Engine) Score(history models.MetricHistory, now time.Time) int {
	w := e.means(history, now)
	m := w.Means

	var total float64
	if w.counts[models.CategorySleep] > 0 {
		total += WeightSleepHours * subScore(m.SleepHours, TargetSleepHours)
		total += WeightSleepQuality * subScore(m.SleepQuality, TargetSleepQuality)
	}
	if w.counts[models.CategoryActivity] > 0 {
		total += WeightActivityMinutes * subScore(m.ActivityMinutes, TargetActivityMinutes)
		total += WeightActivityIntensity * subScore(m.ActivityIntensity, TargetActivityIntensity)
	}
	if w.counts[models.CategoryDiet] > 0 {
		total += WeightMealQuality * subScore(m.MealQuality, TargetMealQuality)
		total += WeightWaterGlasses * subScore(m.WaterGlasses, TargetWaterGlasses)
	}
	if w.counts[models.CategoryStress] > 0 {
		total += WeightStress * stressSubScore(m.StressLevel)
	}

	return clampInt(int(math.Round(total)), 0, 100)
}

// Summarize bundles score, insights and means for the dashboard.
func (e *Engine) Summarize(history models.MetricHistory, now time.Time) models.Dashboard {
	return models.Dashboard{
		Score:    e.Score(history, now),
		Insights: e.Insights(history, now),
		Means:    e.means(history, now).Means,
	}
}

type windowMeans struct {
	models.Means
	counts map[models.Category]int
}

func (e *Engine) windowStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -e.windowDays)
}

func (e *Engine) means(history models.MetricHistory, now time.Time) windowMeans {
	start := e.windowStart(now)
	w := windowMeans{counts: make(map[models.Category]int, len(models.AllCategories))}

	in := make(map[models.Category][]models.MetricSample, len(models.AllCategories))
	for _, c := range models.AllCategories {
		in[c] = inWindow(history.Samples(c), start, now)
		w.counts[c] = len(in[c])
	}
	sleep := in[models.CategorySleep]
	activity := in[models.CategoryActivity]
	diet := in[models.CategoryDiet]
	stress := in[models.CategoryStress]

	w.SleepHours = mean(sleep, FieldHours)
	w.SleepQuality = mean(sleep, FieldQuality)
	w.ActivityMinutes = mean(activity, FieldMinutes)
	w.ActivityIntensity = mean(activity, FieldIntensity)
	w.MealQuality = mean(diet, FieldMealQuality)
	w.WaterGlasses = mean(diet, FieldWaterGlasses)
	w.StressLevel = mean(stress, FieldLevel)
	return w
}

// inWindow keeps samples recorded in [start, now].
func inWindow(samples []models.MetricSample, start, now time.Time) []models.MetricSample {
	var out []models.MetricSample
	for _, s := range samples {
		if s.RecordedAt.Before(start) || s.RecordedAt.After(now) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// mean is 0 for an empty slice.
func mean(samples []models.MetricSample, f Field) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += f.Value(s)
	}
	return sum / float64(len(samples))
}

func subScore(m, target float64) float64 {
	return clampFloat(m/target*100, 0, 100)
}

// stressSubScore is inverted: lower stress scores higher.
func stressSubScore(level float64) float64 {
	return clampFloat((StressScale-level)/StressScale*100, 0, 100)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

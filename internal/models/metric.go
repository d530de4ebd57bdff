package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups metric samples by what was tracked.
type Category string

const (
	CategorySleep    Category = "sleep"
	CategoryActivity Category = "activity"
	CategoryDiet     Category = "diet"
	CategoryStress   Category = "stress"
)

var AllCategories = []Category{CategorySleep, CategoryActivity, CategoryDiet, CategoryStress}

func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// MetricSample is one timestamped observation. Only the fields belonging to
// its category carry meaning; the rest stay zero.
type MetricSample struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Category   Category  `json:"category"`
	RecordedAt time.Time `json:"recorded_at"`

	// sleep
	Hours   float64 `json:"hours"`
	Quality float64 `json:"quality"`

	// activity
	Minutes   float64 `json:"minutes"`
	Intensity float64 `json:"intensity"`

	// diet
	MealQuality  float64 `json:"meal_quality"`
	WaterGlasses float64 `json:"water_glasses"`

	// stress
	Level float64 `json:"level"`

	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MetricHistory holds one user's samples per category, ordered by RecordedAt.
type MetricHistory struct {
	Sleep    []MetricSample `json:"sleep"`
	Activity []MetricSample `json:"activity"`
	Diet     []MetricSample `json:"diet"`
	Stress   []MetricSample `json:"stress"`
}

// Samples returns the slice for a category, or nil for an unknown one.
func (h MetricHistory) Samples(c Category) []MetricSample {
	switch c {
	case CategorySleep:
		return h.Sleep
	case CategoryActivity:
		return h.Activity
	case CategoryDiet:
		return h.Diet
	case CategoryStress:
		return h.Stress
	}
	return nil
}

// Add appends s to the slice matching its category. Unknown categories are dropped.
func (h *MetricHistory) Add(s MetricSample) {
	switch s.Category {
	case CategorySleep:
		h.Sleep = append(h.Sleep, s)
	case CategoryActivity:
		h.Activity = append(h.Activity, s)
	case CategoryDiet:
		h.Diet = append(h.Diet, s)
	case CategoryStress:
		h.Stress = append(h.Stress, s)
	}
}

type CreateMetricRequest struct {
	Category     string     `json:"category"`
	RecordedAt   *time.Time `json:"recorded_at"`
	Hours        float64    `json:"hours"`
	Quality      float64    `json:"quality"`
	Minutes      float64    `json:"minutes"`
	Intensity    float64    `json:"intensity"`
	MealQuality  float64    `json:"meal_quality"`
	WaterGlasses float64    `json:"water_glasses"`
	Level        float64    `json:"level"`
	Notes        *string    `json:"notes"`
}

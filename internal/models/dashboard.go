package models

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

type Insight struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// SeriesPoint is one day on a dashboard chart.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Means are the per-field averages over the lookback window.
type Means struct {
	SleepHours        float64 `json:"sleep_hours"`
	SleepQuality      float64 `json:"sleep_quality"`
	ActivityMinutes   float64 `json:"activity_minutes"`
	ActivityIntensity float64 `json:"activity_intensity"`
	MealQuality       float64 `json:"meal_quality"`
	WaterGlasses      float64 `json:"water_glasses"`
	StressLevel       float64 `json:"stress_level"`
}

type Dashboard struct {
	Score    int       `json:"score"`
	Insights []Insight `json:"insights"`
	Means    Means     `json:"means"`
}

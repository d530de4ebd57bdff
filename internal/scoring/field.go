package scoring

import "wellness-backend/internal/models"

// Field names a numeric column of a MetricSample.
type Field string

const (
	FieldHours        Field = "hours"
	FieldQuality      Field = "quality"
	FieldMinutes      Field = "minutes"
	FieldIntensity    Field = "intensity"
	FieldMealQuality  Field = "meal_quality"
	FieldWaterGlasses Field = "water_glasses"
	FieldLevel        Field = "level"
)

var allFields = []Field{
	FieldHours, FieldQuality, FieldMinutes, FieldIntensity,
	FieldMealQuality, FieldWaterGlasses, FieldLevel,
}

// ParseField reports whether s names a known field.
func ParseField(s string) (Field, bool) {
	for _, f := range allFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// DefaultField is the field charted for a category when none is requested.
func DefaultField(c models.Category) Field {
	switch c {
	case models.CategoryActivity:
		return FieldMinutes
	case models.CategoryDiet:
		return FieldMealQuality
	case models.CategoryStress:
		return FieldLevel
	default:
		return FieldHours
	}
}

// Value reads f from s. Unknown fields read as 0.
func (f Field) Value(s models.MetricSample) float64 {
	switch f {
	case FieldHours:
		return s.Hours
	case FieldQuality:
		return s.Quality
	case FieldMinutes:
		return s.Minutes
	case FieldIntensity:
		return s.Intensity
	case FieldMealQuality:
		return s.MealQuality
	case FieldWaterGlasses:
		return s.WaterGlasses
	case FieldLevel:
		return s.Level
	}
	return 0
}

package scoring

import (
	"fmt"
	"time"

	"wellness-backend/internal/models"
)

// Insight thresholds. Means falling between a warning and a success bound
// produce no insight for that category.
const (
	SleepWarnBelowHours  = 6.0
	SleepOptimalMinHours = 7.0
	SleepOptimalMaxHours = 9.0

	ActivityWarnBelowMinutes = 20.0
	ActivityGoodFromMinutes  = 30.0

	StressWarnAboveLevel = 7.0
	StressGoodBelowLevel = 4.0

	// minRuleInsights is the count below which the filler insight is appended.
	minRuleInsights = 2
)

const (
	TitleSleepAlert    = "Sleep Duration Alert"
	TitleSleepOptimal  = "Optimal Sleep Duration"
	TitleActivityLow   = "Low Activity Level"
	TitleActivityGreat = "Great Activity Level"
	TitleStressHigh    = "High Stress Levels"
	TitleStressManaged = "Stress Well Managed"
	TitleKeepTracking  = "Keep Tracking"

	keepTrackingDescription = "Log your sleep, activity, meals and stress every day to unlock more personalized insights."
)

// Insights applies the threshold rules in order sleep, activity, stress, and
// appends one info insight when fewer than two rules fired.
func (e *Engine) Insights(history models.MetricHistory, now time.Time) []models.Insight {
	w := e.means(history, now)
	insights := make([]models.Insight, 0, 4)

	// A category with no samples in the window fires no rule, so an empty
	// history yields only the filler rather than three zero-mean warnings.
	if w.counts[models.CategorySleep] > 0 {
		h := w.SleepHours
		switch {
		case h < SleepWarnBelowHours:
			insights = append(insights, models.Insight{
				Title:       TitleSleepAlert,
				Description: fmt.Sprintf("You averaged %.1f hours of sleep over the last %d days. Aim for 7-9 hours a night.", h, e.windowDays),
				Severity:    models.SeverityWarning,
			})
		case h >= SleepOptimalMinHours && h <= SleepOptimalMaxHours:
			insights = append(insights, models.Insight{
				Title:       TitleSleepOptimal,
				Description: fmt.Sprintf("You averaged %.1f hours of sleep. That's right in the healthy range.", h),
				Severity:    models.SeveritySuccess,
			})
		}
	}

	// No activity samples: no rule.
	if w.counts[models.CategoryActivity] > 0 {
		m := w.ActivityMinutes
		switch {
		case m < ActivityWarnBelowMinutes:
			insights = append(insights, models.Insight{
				Title:       TitleActivityLow,
				Description: fmt.Sprintf("You averaged %.0f active minutes a day. Try to build up to 30 minutes.", m),
				Severity:    models.SeverityWarning,
			})
		case m >= ActivityGoodFromMinutes:
			insights = append(insights, models.Insight{
				Title:       TitleActivityGreat,
				Description: fmt.Sprintf("You averaged %.0f active minutes a day. Keep it up!", m),
				Severity:    models.SeveritySuccess,
			})
		}
	}

	// No stress samples: no rule.
	if w.counts[models.CategoryStress] > 0 {
		l := w.StressLevel
		switch {
		case l > StressWarnAboveLevel:
			insights = append(insights, models.Insight{
				Title:       TitleStressHigh,
				Description: fmt.Sprintf("Your average stress level was %.1f/10. Consider breathing exercises or a short walk.", l),
				Severity:    models.SeverityWarning,
			})
		case l < StressGoodBelowLevel:
			insights = append(insights, models.Insight{
				Title:       TitleStressManaged,
				Description: fmt.Sprintf("Your average stress level was %.1f/10. Whatever you're doing is working.", l),
				Severity:    models.SeveritySuccess,
			})
		}
	}

	if len(insights) < minRuleInsights {
		insights = append(insights, models.Insight{
			Title:       TitleKeepTracking,
			Description: keepTrackingDescription,
			Severity:    models.SeverityInfo,
		})
	}

	return insights
}

package progress

import (
	"math"

	"training-portal/internal/models"
)

// Summary is a user's completion over a visible module set.
type Summary struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Summarize counts completed modules among the visible set. Modules with
// no progress record count as not started.
func Summarize(progress map[string]models.ModuleProgress, visible []models.Module) Summary {
	completed := 0
	for _, m := range visible {
		if p, ok := progress[m.ID]; ok && p.IsCompleted {
			completed++
		}
	}
	return Summary{
		Completed:  completed,
		Total:      len(visible),
		Percentage: Percent(completed, len(visible)),
	}
}

// Percent is round(100 * part / whole), 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// MeanPercentage averages individual percentages with equal weight per
// user, regardless of how many modules each user is eligible for. This is
// deliberately not a pooled completed-over-total ratio.
func MeanPercentage(percentages []int) int {
	if len(percentages) == 0 {
		return 0
	}
	sum := 0
	for _, p := range percentages {
		sum += p
	}
	return int(math.Round(float64(sum) / float64(len(percentages))))
}

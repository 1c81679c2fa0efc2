package session

import (
	"math"

	"training-portal/internal/models"
)

// EvaluationSummary holds the per-question and overall Likert averages to
// one decimal place.
type EvaluationSummary struct {
	Count            int                `json:"count"`
	QuestionAverages map[string]float64 `json:"questionAverages"`
	Overall          float64            `json:"overall"`
}

var evaluationKeys = [5]string{"q1", "q2", "q3", "q4", "q5"}

// SummarizeEvaluations reduces all submitted evaluations for a session.
// Returns nil when there are none; callers render that as "no data".
func SummarizeEvaluations(evals []models.SessionEvaluation) *EvaluationSummary {
	if len(evals) == 0 {
		return nil
	}

	var sums [5]int
	grandTotal := 0
	for _, e := range evals {
		for i, score := range e.Scores() {
			sums[i] += score
			grandTotal += score
		}
	}

	averages := make(map[string]float64, len(evaluationKeys))
	for i, key := range evaluationKeys {
		averages[key] = round1(float64(sums[i]) / float64(len(evals)))
	}

	return &EvaluationSummary{
		Count:            len(evals),
		QuestionAverages: averages,
		Overall:          round1(float64(grandTotal) / float64(len(evals)*5)),
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

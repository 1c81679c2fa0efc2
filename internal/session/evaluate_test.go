package session

import (
	"testing"

	"training-portal/internal/models"
)

func TestSummarizeEvaluationsNoData(t *testing.T) {
	if got := SummarizeEvaluations(nil); got != nil {
		t.Fatalf("got %+v, want nil for zero evaluations", got)
	}
	if got := SummarizeEvaluations([]models.SessionEvaluation{}); got != nil {
		t.Fatalf("got %+v, want nil for zero evaluations", got)
	}
}

func TestSummarizeEvaluationsAverages(t *testing.T) {
	evals := []models.SessionEvaluation{
		{HospitalNumber: "H-1", Q1: 4, Q2: 5, Q3: 3, Q4: 5, Q5: 4},
		{HospitalNumber: "H-2", Q1: 5, Q2: 5, Q3: 4, Q4: 5, Q5: 5},
	}

	got := SummarizeEvaluations(evals)
	if got == nil {
		t.Fatal("got nil summary")
	}
	if got.Count != 2 {
		t.Fatalf("count = %d, want 2", got.Count)
	}
	if got.QuestionAverages["q1"] != 4.5 {
		t.Fatalf("q1 average = %v, want 4.5", got.QuestionAverages["q1"])
	}
	if got.QuestionAverages["q3"] != 3.5 {
		t.Fatalf("q3 average = %v, want 3.5", got.QuestionAverages["q3"])
	}
	// (4+5+3+5+4 + 5+5+4+5+5) / 10 = 4.5
	if got.Overall != 4.5 {
		t.Fatalf("overall = %v, want 4.5", got.Overall)
	}
}

func TestSummarizeEvaluationsAllFives(t *testing.T) {
	evals := []models.SessionEvaluation{
		{HospitalNumber: "H-1", Q1: 5, Q2: 5, Q3: 5, Q4: 5, Q5: 5},
		{HospitalNumber: "H-2", Q1: 5, Q2: 5, Q3: 5, Q4: 5, Q5: 5},
	}

	got := SummarizeEvaluations(evals)
	if got.Overall != 5.0 {
		t.Fatalf("overall = %v, want 5.0", got.Overall)
	}
	for key, avg := range got.QuestionAverages {
		if avg != 5.0 {
			t.Fatalf("%s average = %v, want 5.0", key, avg)
		}
	}
}

func TestSummarizeEvaluationsOneDecimal(t *testing.T) {
	// Three evaluations with q1 = 3, 4, 4 average to 3.666..., reported
	// as 3.7.
	evals := []models.SessionEvaluation{
		{HospitalNumber: "H-1", Q1: 3, Q2: 3, Q3: 3, Q4: 3, Q5: 3},
		{HospitalNumber: "H-2", Q1: 4, Q2: 4, Q3: 4, Q4: 4, Q5: 4},
		{HospitalNumber: "H-3", Q1: 4, Q2: 4, Q3: 4, Q4: 4, Q5: 4},
	}

	got := SummarizeEvaluations(evals)
	if got.QuestionAverages["q1"] != 3.7 {
		t.Fatalf("q1 average = %v, want 3.7", got.QuestionAverages["q1"])
	}
	if got.Overall != 3.7 {
		t.Fatalf("overall = %v, want 3.7", got.Overall)
	}
}

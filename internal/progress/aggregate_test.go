package progress

import (
	"testing"
	"time"

	"training-portal/internal/models"
)

func modules(ids ...string) []models.Module {
	out := make([]models.Module, len(ids))
	for i, id := range ids {
		out[i] = models.Module{ID: id}
	}
	return out
}

func TestSummarize(t *testing.T) {
	visible := modules("a", "b", "c")
	progress := map[string]models.ModuleProgress{
		"a": {ModuleID: "a", IsCompleted: true},
		"b": {ModuleID: "b", IsCompleted: false},
		// "c" never started: no record at all
	}

	got := Summarize(progress, visible)
	if got.Completed != 1 || got.Total != 3 {
		t.Fatalf("got %+v, want 1/3", got)
	}
	if got.Percentage != 33 {
		t.Fatalf("percentage = %d, want 33", got.Percentage)
	}
}

func TestSummarizeEmptyModuleSet(t *testing.T) {
	got := Summarize(nil, nil)
	if got.Percentage != 0 || got.Completed != 0 || got.Total != 0 {
		t.Fatalf("got %+v, want zero summary", got)
	}
}

func TestPercentBounds(t *testing.T) {
	cases := []struct {
		part, whole, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 7, 0},
		{1, 3, 33},
		{2, 3, 67},
		{9, 10, 90},
		{10, 10, 100},
	}
	for _, tc := range cases {
		got := Percent(tc.part, tc.whole)
		if got != tc.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tc.part, tc.whole, got, tc.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("Percent(%d, %d) = %d out of range", tc.part, tc.whole, got)
		}
	}
}

func TestMeanPercentageWeightsUsersEqually(t *testing.T) {
	// One user at 100% of 1 module and one at 0% of 9 modules average to
	// 50, not to the pooled 10%.
	if got := MeanPercentage([]int{100, 0}); got != 50 {
		t.Fatalf("got %d, want 50", got)
	}
	if got := MeanPercentage(nil); got != 0 {
		t.Fatalf("empty cohort: got %d, want 0", got)
	}
	if got := MeanPercentage([]int{33, 33, 34}); got != 33 {
		t.Fatalf("got %d, want 33", got)
	}
}

func TestMergeQuizResultMonotonic(t *testing.T) {
	now := time.Now()
	p := models.ModuleProgress{HospitalNumber: "H-1", ModuleID: "a"}

	p = mergeQuizResult(p, 90, true, map[string]int{"q1": 2}, now)
	if !p.IsCompleted || p.HighScore != 90 || !p.IsUnlocked {
		t.Fatalf("after pass: %+v", p)
	}

	// A later failed attempt must not lower the score or un-complete.
	p = mergeQuizResult(p, 40, false, map[string]int{"q1": 0}, now)
	if !p.IsCompleted {
		t.Fatal("isCompleted reverted to false")
	}
	if p.HighScore != 90 {
		t.Fatalf("highScore = %d, want 90", p.HighScore)
	}
	if got := p.LastAttemptAnswers.Data(); got["q1"] != 0 {
		t.Fatalf("lastAttemptAnswers not overwritten: %v", got)
	}
	if len(p.Attempts) != 2 {
		t.Fatalf("attempt history has %d entries, want 2", len(p.Attempts))
	}
	if p.Attempts[0].Score != 90 || p.Attempts[1].Score != 40 {
		t.Fatalf("attempt history out of order: %+v", p.Attempts)
	}
}

package quiz

import (
	"errors"
	"fmt"
	"testing"

	"training-portal/internal/models"
)

func makeQuestions(n int) []models.Question {
	out := make([]models.Question, n)
	for i := range out {
		out[i] = models.Question{
			ID:                 fmt.Sprintf("q%d", i+1),
			Text:               fmt.Sprintf("Question %d", i+1),
			Options:            []string{"a", "b", "c", "d"},
			CorrectAnswerIndex: i % 4,
		}
	}
	return out
}

// answerAll walks the whole attempt, answering correctly for the first
// `correct` questions and wrong for the rest.
func answerAll(t *testing.T, a *Attempt, correct int) {
	t.Helper()
	for i := range a.Questions {
		q := a.Questions[i]
		option := q.CorrectAnswerIndex
		if i >= correct {
			option = (q.CorrectAnswerIndex + 1) % len(q.Options)
		}
		if err := a.Select(option); err != nil {
			t.Fatalf("select q%d: %v", i, err)
		}
		if _, err := a.Submit(); err != nil {
			t.Fatalf("submit q%d: %v", i, err)
		}
		if err := a.Next(); err != nil {
			t.Fatalf("next q%d: %v", i, err)
		}
	}
}

func TestNewAttemptRejectsEmptyQuestionList(t *testing.T) {
	if _, err := NewAttempt("m", nil); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("got %v, want ErrNoQuestions", err)
	}
}

func TestNineOfTenIsAPass(t *testing.T) {
	a, err := NewAttempt("m", makeQuestions(10))
	if err != nil {
		t.Fatal(err)
	}
	answerAll(t, a, 9)

	if !a.Finished() {
		t.Fatalf("phase = %s, want result", a.Phase)
	}
	if got := a.Score(); got != 90 {
		t.Fatalf("score = %d, want 90", got)
	}
	if !a.Passed() {
		t.Fatal("90 must pass at the 90 threshold")
	}
}

func TestEightOfTenFails(t *testing.T) {
	a, _ := NewAttempt("m", makeQuestions(10))
	answerAll(t, a, 8)

	if a.Score() != 80 || a.Passed() {
		t.Fatalf("score = %d passed = %v, want 80 and fail", a.Score(), a.Passed())
	}
}

func TestScoreFormula(t *testing.T) {
	for total := 1; total <= 7; total++ {
		for correct := 0; correct <= total; correct++ {
			a, _ := NewAttempt("m", makeQuestions(total))
			answerAll(t, a, correct)

			want := int(float64(correct)/float64(total)*100 + 0.5)
			if got := a.Score(); got != want {
				t.Errorf("%d/%d: score = %d, want %d", correct, total, got, want)
			}
			if a.Passed() != (a.Score() >= PassingScore) {
				t.Errorf("%d/%d: passed inconsistent with threshold", correct, total)
			}
		}
	}
}

func TestSubmitRequiresSelection(t *testing.T) {
	a, _ := NewAttempt("m", makeQuestions(2))
	if _, err := a.Submit(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("got %v, want ErrNoSelection", err)
	}
}

func TestSelectBounds(t *testing.T) {
	a, _ := NewAttempt("m", makeQuestions(1))
	if err := a.Select(-1); !errors.Is(err, ErrBadOption) {
		t.Fatalf("got %v, want ErrBadOption", err)
	}
	if err := a.Select(4); !errors.Is(err, ErrBadOption) {
		t.Fatalf("got %v, want ErrBadOption", err)
	}
}

func TestNextOnlyAfterSubmit(t *testing.T) {
	a, _ := NewAttempt("m", makeQuestions(2))
	if err := a.Next(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("got %v, want ErrWrongPhase", err)
	}
}

func TestSelectionCanChangeBeforeSubmit(t *testing.T) {
	a, _ := NewAttempt("m", makeQuestions(1))
	q := a.Questions[0]

	if err := a.Select((q.CorrectAnswerIndex + 1) % 4); err != nil {
		t.Fatal(err)
	}
	if err := a.Select(q.CorrectAnswerIndex); err != nil {
		t.Fatal(err)
	}
	correct, err := a.Submit()
	if err != nil || !correct {
		t.Fatalf("submit after reselect: correct=%v err=%v", correct, err)
	}
}

func TestAnswersRecordedPerQuestion(t *testing.T) {
	a, _ := NewAttempt("m", makeQuestions(3))
	answerAll(t, a, 2)

	if len(a.Answers) != 3 {
		t.Fatalf("answer map has %d entries, want 3", len(a.Answers))
	}
	for i, q := range a.Questions {
		if _, ok := a.Answers[q.ID]; !ok {
			t.Fatalf("question %d missing from answer map", i)
		}
	}
}

func TestRetakeResetsFailedAttempt(t *testing.T) {
	a, _ := NewAttempt("m", makeQuestions(4))
	answerAll(t, a, 1)

	if a.Passed() {
		t.Fatal("setup: attempt should have failed")
	}
	if err := a.Retake(); err != nil {
		t.Fatal(err)
	}
	if a.Phase != PhaseAnswering || a.Index != 0 || a.CorrectCount != 0 || len(a.Answers) != 0 {
		t.Fatalf("retake did not reset: %+v", a)
	}

	// A clean second run can now pass.
	answerAll(t, a, 4)
	if !a.Passed() {
		t.Fatal("full-marks retake should pass")
	}
}

func TestRetakeRefusedAfterPass(t *testing.T) {
	a, _ := NewAttempt("m", makeQuestions(2))
	answerAll(t, a, 2)

	if err := a.Retake(); !errors.Is(err, ErrAlreadyPassed) {
		t.Fatalf("got %v, want ErrAlreadyPassed", err)
	}
}

func TestRetakeOnlyFromResult(t *testing.T) {
	a, _ := NewAttempt("m", makeQuestions(2))
	if err := a.Retake(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("got %v, want ErrWrongPhase", err)
	}
}

func TestViewHidesCorrectAnswerUntilSubmit(t *testing.T) {
	a, _ := NewAttempt("m", makeQuestions(1))

	v := a.View()
	if v.CorrectAnswerIndex != nil || v.WasCorrect != nil {
		t.Fatal("answering view must not reveal the answer")
	}

	a.Select(a.Questions[0].CorrectAnswerIndex)
	a.Submit()

	v = a.View()
	if v.CorrectAnswerIndex == nil || v.WasCorrect == nil || !*v.WasCorrect {
		t.Fatalf("answered view should reveal correctness: %+v", v)
	}

	a.Next()
	v = a.View()
	if v.Score == nil || v.Passed == nil {
		t.Fatalf("result view should carry score: %+v", v)
	}
}

package quiz

import (
	"errors"
	"testing"

	"gorm.io/datatypes"

	"training-portal/internal/models"
)

type stubGenerator struct {
	questions []models.Question
	err       error
	calls     int
}

func (g *stubGenerator) Generate(m models.Module) ([]models.Question, error) {
	g.calls++
	return g.questions, g.err
}

func TestQuestionsForPrefersFixedQuiz(t *testing.T) {
	gen := &stubGenerator{}
	m := models.Module{
		ID: "m",
		Questions: datatypes.NewJSONSlice([]models.Question{
			{ID: "q1", Options: []string{"a", "b"}, CorrectAnswerIndex: 0},
		}),
	}

	got := QuestionsFor(m, gen)
	if len(got) != 1 || got[0].ID != "q1" {
		t.Fatalf("got %+v, want the fixed question", got)
	}
	if gen.calls != 0 {
		t.Fatal("generator must not be consulted when a fixed quiz exists")
	}
}

func TestQuestionsForSkipsUnscoreableFixedQuestions(t *testing.T) {
	// A fixed quiz whose only question is invalid behaves like no quiz.
	m := models.Module{
		ID: "m",
		Questions: datatypes.NewJSONSlice([]models.Question{
			{ID: "bad", Options: []string{"a"}, CorrectAnswerIndex: 5},
		}),
	}

	got := QuestionsFor(m, nil)
	if len(got) != len(fallbackPool) {
		t.Fatalf("got %d questions, want fallback pool of %d", len(got), len(fallbackPool))
	}
}

func TestQuestionsForUsesGenerator(t *testing.T) {
	gen := &stubGenerator{
		questions: []models.Question{
			{ID: "g1", Options: []string{"a", "b"}, CorrectAnswerIndex: 1},
		},
	}

	got := QuestionsFor(models.Module{ID: "m"}, gen)
	if len(got) != 1 || got[0].ID != "g1" {
		t.Fatalf("got %+v, want the generated question", got)
	}
}

func TestQuestionsForFallsBackOnGeneratorFailure(t *testing.T) {
	cases := map[string]*stubGenerator{
		"error":  {err: errors.New("upstream down")},
		"empty":  {},
		"no gen": nil,
	}
	for name, gen := range cases {
		var g Generator
		if gen != nil {
			g = gen
		}
		got := QuestionsFor(models.Module{ID: "m"}, g)
		if len(got) == 0 {
			t.Fatalf("%s: question list must never be empty", name)
		}
		if len(got) != len(fallbackPool) {
			t.Fatalf("%s: got %d questions, want the fallback pool", name, len(got))
		}
	}
}

func TestFallbackQuestionsAreScoreable(t *testing.T) {
	for _, q := range FallbackQuestions() {
		if !q.Valid() {
			t.Fatalf("fallback question %s is not scoreable", q.ID)
		}
	}
}

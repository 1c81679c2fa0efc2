package quiz

import (
	"errors"
	"math"
	"time"

	"training-portal/internal/models"
)

// PassingScore is the global pass threshold. It is not configurable per
// module.
const PassingScore = 90

type Phase string

const (
	PhaseAnswering Phase = "answering"
	PhaseAnswered  Phase = "answered"
	PhaseResult    Phase = "result"
)

var (
	ErrNoQuestions   = errors.New("quiz has no questions")
	ErrNoSelection   = errors.New("no option selected")
	ErrBadOption     = errors.New("option index out of range")
	ErrWrongPhase    = errors.New("action not allowed in current phase")
	ErrAlreadyPassed = errors.New("passed attempts cannot be retaken")
)

// Attempt is one quiz sitting: a strictly linear walk over a fixed
// question list. It is a plain value so it serializes cleanly into the
// attempt cache between handler calls.
type Attempt struct {
	ModuleID     string            `json:"moduleId"`
	Questions    []models.Question `json:"questions"`
	Phase        Phase             `json:"phase"`
	Index        int               `json:"index"`
	Selected     int               `json:"selected"`
	Answers      map[string]int    `json:"answers"`
	CorrectCount int               `json:"correctCount"`
	StartedAt    time.Time         `json:"startedAt"`
}

// NewAttempt starts a sitting. An empty question list is refused here so
// no later step can divide by zero.
func NewAttempt(moduleID string, questions []models.Question) (*Attempt, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Attempt{
		ModuleID:  moduleID,
		Questions: questions,
		Phase:     PhaseAnswering,
		Selected:  -1,
		Answers:   make(map[string]int),
		StartedAt: time.Now(),
	}, nil
}

func (a *Attempt) current() models.Question {
	return a.Questions[a.Index]
}

// Select marks an option on the current question without locking it in.
func (a *Attempt) Select(option int) error {
	if a.Phase != PhaseAnswering {
		return ErrWrongPhase
	}
	if option < 0 || option >= len(a.current().Options) {
		return ErrBadOption
	}
	a.Selected = option
	return nil
}

// Submit locks in the selected option, records it in the answer map, and
// reveals correctness. Requires a selection.
func (a *Attempt) Submit() (bool, error) {
	if a.Phase != PhaseAnswering {
		return false, ErrWrongPhase
	}
	if a.Selected < 0 {
		return false, ErrNoSelection
	}

	q := a.current()
	a.Answers[q.ID] = a.Selected
	correct := a.Selected == q.CorrectAnswerIndex
	if correct {
		a.CorrectCount++
	}
	a.Phase = PhaseAnswered
	return correct, nil
}

// Next advances past an answered question, to the next question or to the
// terminal result.
func (a *Attempt) Next() error {
	if a.Phase != PhaseAnswered {
		return ErrWrongPhase
	}
	if a.Index+1 < len(a.Questions) {
		a.Index++
		a.Selected = -1
		a.Phase = PhaseAnswering
		return nil
	}
	a.Phase = PhaseResult
	return nil
}

// Score is round(100 * correct / total).
func (a *Attempt) Score() int {
	return int(math.Round(float64(a.CorrectCount) / float64(len(a.Questions)) * 100))
}

func (a *Attempt) Passed() bool {
	return a.Score() >= PassingScore
}

func (a *Attempt) Finished() bool {
	return a.Phase == PhaseResult
}

// Retake discards a failed sitting and starts over on the same questions.
// The discarded answers are not persisted by the engine; the caller only
// records attempts it finishes.
func (a *Attempt) Retake() error {
	if a.Phase != PhaseResult {
		return ErrWrongPhase
	}
	if a.Passed() {
		return ErrAlreadyPassed
	}
	a.Index = 0
	a.Selected = -1
	a.Answers = make(map[string]int)
	a.CorrectCount = 0
	a.Phase = PhaseAnswering
	a.StartedAt = time.Now()
	return nil
}

// View is the attempt as shown to the learner. The correct index is only
// revealed once the current question has been submitted.
type View struct {
	ModuleID           string               `json:"moduleId"`
	Phase              Phase                `json:"phase"`
	Index              int                  `json:"index"`
	Total              int                  `json:"total"`
	Question           *models.QuestionView `json:"question,omitempty"`
	Selected           int                  `json:"selected"`
	CorrectAnswerIndex *int                 `json:"correctAnswerIndex,omitempty"`
	WasCorrect         *bool                `json:"wasCorrect,omitempty"`
	Score              *int                 `json:"score,omitempty"`
	Passed             *bool                `json:"passed,omitempty"`
}

func (a *Attempt) View() View {
	v := View{
		ModuleID: a.ModuleID,
		Phase:    a.Phase,
		Index:    a.Index,
		Total:    len(a.Questions),
		Selected: a.Selected,
	}

	switch a.Phase {
	case PhaseAnswering:
		qv := a.current().ToView()
		v.Question = &qv
	case PhaseAnswered:
		q := a.current()
		qv := q.ToView()
		v.Question = &qv
		correctIndex := q.CorrectAnswerIndex
		wasCorrect := a.Selected == correctIndex
		v.CorrectAnswerIndex = &correctIndex
		v.WasCorrect = &wasCorrect
	case PhaseResult:
		score := a.Score()
		passed := a.Passed()
		v.Score = &score
		v.Passed = &passed
	}

	return v
}

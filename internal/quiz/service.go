package quiz

import (
	"errors"
	"fmt"
	"log"
	"time"

	"training-portal/internal/models"
	"training-portal/internal/module"
	"training-portal/internal/progress"
	"training-portal/internal/session"
	"training-portal/pkg/cache"
)

const attemptTTL = 2 * time.Hour

var ErrNoAttempt = errors.New("no quiz attempt in progress")

type Service struct {
	cache     *cache.RedisCache
	modules   *module.Service
	progress  *progress.Service
	sessions  *session.Service
	generator Generator
}

// NewService wires the quiz flow. generator may be nil; modules without a
// fixed quiz then fall straight back to the static pool.
func NewService(cache *cache.RedisCache, modules *module.Service, progressService *progress.Service, sessions *session.Service, generator Generator) *Service {
	return &Service{
		cache:     cache,
		modules:   modules,
		progress:  progressService,
		sessions:  sessions,
		generator: generator,
	}
}

func attemptKey(hospitalNumber, moduleID string) string {
	return fmt.Sprintf("attempt:%s:%s", hospitalNumber, moduleID)
}

// StartAttempt begins a sitting for the module, replacing any stale one.
func (s *Service) StartAttempt(hospitalNumber, moduleID string) (*Attempt, error) {
	m, err := s.modules.GetModule(moduleID)
	if err != nil {
		return nil, err
	}

	questions := QuestionsFor(*m, s.generator)
	attempt, err := NewAttempt(m.ID, questions)
	if err != nil {
		return nil, err
	}

	if err := s.save(hospitalNumber, attempt); err != nil {
		return nil, err
	}
	log.Printf("User %s started quiz for module %s (%d questions)", hospitalNumber, moduleID, len(questions))
	return attempt, nil
}

func (s *Service) GetAttempt(hospitalNumber, moduleID string) (*Attempt, error) {
	var attempt Attempt
	if err := s.cache.GetJSON(attemptKey(hospitalNumber, moduleID), &attempt); err != nil {
		return nil, ErrNoAttempt
	}
	return &attempt, nil
}

func (s *Service) save(hospitalNumber string, attempt *Attempt) error {
	return s.cache.SetJSON(attemptKey(hospitalNumber, attempt.ModuleID), attempt, attemptTTL)
}

// mutate loads the attempt, applies fn, and persists the new state.
func (s *Service) mutate(hospitalNumber, moduleID string, fn func(*Attempt) error) (*Attempt, error) {
	attempt, err := s.GetAttempt(hospitalNumber, moduleID)
	if err != nil {
		return nil, err
	}
	if err := fn(attempt); err != nil {
		return nil, err
	}
	if err := s.save(hospitalNumber, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *Service) Select(hospitalNumber, moduleID string, option int) (*Attempt, error) {
	return s.mutate(hospitalNumber, moduleID, func(a *Attempt) error {
		return a.Select(option)
	})
}

func (s *Service) Submit(hospitalNumber, moduleID string) (*Attempt, error) {
	return s.mutate(hospitalNumber, moduleID, func(a *Attempt) error {
		_, err := a.Submit()
		return err
	})
}

func (s *Service) Next(hospitalNumber, moduleID string) (*Attempt, error) {
	return s.mutate(hospitalNumber, moduleID, func(a *Attempt) error {
		return a.Next()
	})
}

func (s *Service) Retake(hospitalNumber, moduleID string) (*Attempt, error) {
	return s.mutate(hospitalNumber, moduleID, func(a *Attempt) error {
		return a.Retake()
	})
}

// FinishResult is what the learner gets back after closing a sitting.
type FinishResult struct {
	Score    int                    `json:"score"`
	Passed   bool                   `json:"passed"`
	Answers  map[string]int         `json:"answers"`
	Progress *models.ModuleProgress `json:"progress"`
}

// Finish closes a sitting in the result phase, applies the monotonic
// progress update, and notifies any open session dashboards that include
// this module in their curriculum.
func (s *Service) Finish(hospitalNumber, moduleID string) (*FinishResult, error) {
	attempt, err := s.GetAttempt(hospitalNumber, moduleID)
	if err != nil {
		return nil, err
	}
	if !attempt.Finished() {
		return nil, ErrWrongPhase
	}

	score := attempt.Score()
	passed := attempt.Passed()

	updated, err := s.progress.ApplyQuizResult(hospitalNumber, moduleID, score, passed, attempt.Answers)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(attemptKey(hospitalNumber, moduleID)); err != nil {
		log.Printf("Error clearing attempt for user %s module %s: %v", hospitalNumber, moduleID, err)
	}

	s.notifySessions(hospitalNumber, moduleID, score, passed)

	return &FinishResult{
		Score:    score,
		Passed:   passed,
		Answers:  attempt.Answers,
		Progress: updated,
	}, nil
}

func (s *Service) notifySessions(hospitalNumber, moduleID string, score int, passed bool) {
	sessions, err := s.sessions.OpenSessionsContaining(hospitalNumber, moduleID, time.Now())
	if err != nil {
		log.Printf("Error finding sessions for progress broadcast: %v", err)
		return
	}
	for _, sess := range sessions {
		s.sessions.BroadcastProgress(sess.ID, map[string]interface{}{
			"hospitalNumber": hospitalNumber,
			"moduleId":       moduleID,
			"score":          score,
			"passed":         passed,
		})
	}
}

package session

import (
	"errors"
	"log"
	"strconv"
	"time"

	"gorm.io/datatypes"

	"training-portal/internal/models"
	"training-portal/pkg/websocket"
)

var (
	ErrInvalidWindow = errors.New("session start must be before its end")
	ErrBadTimestamp  = errors.New("timestamps must be RFC 3339")
	ErrSessionClosed = errors.New("session is not open")
	ErrAlreadyMember = errors.New("already assigned to this session")
	ErrNotMember     = errors.New("not assigned to this session")
)

type Service struct {
	repo *Repository
	hub  *websocket.Hub
}

func NewService(repo *Repository, hub *websocket.Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

// parseRequest re-validates a session form server-side: both window ends
// present and ordered, curriculum and membership non-empty. The handler's
// struct validation already rejected empty fields.
func parseRequest(req *models.SessionRequest) (*models.TrainingSession, error) {
	start, err := time.Parse(time.RFC3339, req.StartDateTime)
	if err != nil {
		return nil, ErrBadTimestamp
	}
	end, err := time.Parse(time.RFC3339, req.EndDateTime)
	if err != nil {
		return nil, ErrBadTimestamp
	}
	if !start.Before(end) {
		return nil, ErrInvalidWindow
	}

	status := req.Status
	if status == "" {
		status = models.SessionStatusOpen
	}

	return &models.TrainingSession{
		Name:                    req.Name,
		StartDateTime:           start,
		EndDateTime:             end,
		Status:                  status,
		ModuleIDs:               datatypes.NewJSONSlice(req.ModuleIDs),
		EmployeeHospitalNumbers: datatypes.NewJSONSlice(req.EmployeeHospitalNumbers),
	}, nil
}

func (s *Service) CreateSession(req *models.SessionRequest) (*models.TrainingSession, error) {
	session, err := parseRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) UpdateSession(id uint, req *models.SessionRequest) (*models.TrainingSession, error) {
	existing, err := s.repo.GetSession(id)
	if err != nil {
		return nil, err
	}

	session, err := parseRequest(req)
	if err != nil {
		return nil, err
	}
	session.ID = existing.ID
	session.CreatedAt = existing.CreatedAt

	if err := s.repo.UpdateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) DeleteSession(id uint) error {
	if _, err := s.repo.GetSession(id); err != nil {
		return err
	}
	return s.repo.DeleteSession(id)
}

// SessionView is a session as shown to a learner: membership list and
// evaluations stripped, own completion attached.
type SessionView struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	Status        string    `json:"status"`
	ModuleIDs     []string  `json:"moduleIds"`
	MemberCount   int       `json:"memberCount"`
	MyCompletion  int       `json:"myCompletion"`
}

func toView(session models.TrainingSession, completion int) SessionView {
	return SessionView{
		ID:            session.ID,
		Name:          session.Name,
		StartDateTime: session.StartDateTime,
		EndDateTime:   session.EndDateTime,
		Status:        session.Status,
		ModuleIDs:     session.ModuleIDs,
		MemberCount:   len(session.EmployeeHospitalNumbers),
		MyCompletion:  completion,
	}
}

// Overview is the learner's categorized session list.
type Overview struct {
	Assigned []SessionView `json:"assigned"`
	Joinable []SessionView `json:"joinable"`
}

func (s *Service) OverviewFor(hospitalNumber string, now time.Time) (*Overview, error) {
	sessions, err := s.repo.ListSessions()
	if err != nil {
		return nil, err
	}

	userProgress, err := s.repo.GetUserProgress(hospitalNumber)
	if err != nil {
		return nil, err
	}

	categorized := Categorize(now, hospitalNumber, sessions)

	overview := &Overview{
		Assigned: make([]SessionView, 0, len(categorized.Assigned)),
		Joinable: make([]SessionView, 0, len(categorized.Joinable)),
	}
	for _, session := range categorized.Assigned {
		overview.Assigned = append(overview.Assigned, toView(session, MemberCompletion(session, userProgress)))
	}
	for _, session := range categorized.Joinable {
		overview.Joinable = append(overview.Joinable, toView(session, 0))
	}
	return overview, nil
}

func (s *Service) GetForUser(id uint, hospitalNumber string) (*SessionView, error) {
	session, err := s.repo.GetSession(id)
	if err != nil {
		return nil, err
	}

	userProgress, err := s.repo.GetUserProgress(hospitalNumber)
	if err != nil {
		return nil, err
	}

	view := toView(*session, MemberCompletion(*session, userProgress))
	return &view, nil
}

// Join adds the caller to an open session's membership list.
func (s *Service) Join(id uint, hospitalNumber string, now time.Time) error {
	session, err := s.repo.GetSession(id)
	if err != nil {
		return err
	}
	if !IsOpen(*session, now) {
		return ErrSessionClosed
	}
	if session.HasMember(hospitalNumber) {
		return ErrAlreadyMember
	}

	session.EmployeeHospitalNumbers = append(session.EmployeeHospitalNumbers, hospitalNumber)
	if err := s.repo.UpdateSession(session); err != nil {
		return err
	}

	s.broadcast(session.ID, "member_joined", map[string]interface{}{
		"hospitalNumber": hospitalNumber,
		"memberCount":    len(session.EmployeeHospitalNumbers),
	})
	return nil
}

// MemberView is one assigned member's completion on the admin summary.
type MemberView struct {
	HospitalNumber string `json:"hospitalNumber"`
	Completion     int    `json:"completion"`
}

// AdminSummary is the admin-facing session detail: cohort completion,
// per-member completion, and the evaluation averages (nil when nobody has
// evaluated yet).
type AdminSummary struct {
	Session          models.TrainingSession `json:"session"`
	CohortCompletion int                    `json:"cohortCompletion"`
	Members          []MemberView           `json:"members"`
	Evaluations      *EvaluationSummary     `json:"evaluations"`
}

func (s *Service) Summary(id uint) (*AdminSummary, error) {
	session, err := s.repo.GetSession(id)
	if err != nil {
		return nil, err
	}

	progressByUser, err := s.repo.ProgressForUsers(session.EmployeeHospitalNumbers)
	if err != nil {
		return nil, err
	}

	members := make([]MemberView, 0, len(session.EmployeeHospitalNumbers))
	for _, hn := range session.EmployeeHospitalNumbers {
		members = append(members, MemberView{
			HospitalNumber: hn,
			Completion:     MemberCompletion(*session, progressByUser[hn]),
		})
	}

	return &AdminSummary{
		Session:          *session,
		CohortCompletion: CohortCompletion(*session, progressByUser),
		Members:          members,
		Evaluations:      SummarizeEvaluations(session.Evaluations),
	}, nil
}

// SubmitEvaluation stores the caller's survey, overwriting any previous
// submission, and pushes the fresh averages to the session dashboard.
func (s *Service) SubmitEvaluation(id uint, hospitalNumber, name string, req *models.EvaluationRequest) (*EvaluationSummary, error) {
	session, err := s.repo.GetSession(id)
	if err != nil {
		return nil, err
	}
	if !session.HasMember(hospitalNumber) {
		return nil, ErrNotMember
	}

	evaluation := &models.SessionEvaluation{
		SessionID:      session.ID,
		HospitalNumber: hospitalNumber,
		SubmitterName:  name,
		SubmittedAt:    time.Now(),
		Q1:             req.Q1,
		Q2:             req.Q2,
		Q3:             req.Q3,
		Q4:             req.Q4,
		Q5:             req.Q5,
		Feedback:       req.Feedback,
	}
	if err := s.repo.UpsertEvaluation(evaluation); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetSession(id)
	if err != nil {
		return nil, err
	}
	summary := SummarizeEvaluations(updated.Evaluations)

	s.broadcast(session.ID, "evaluation", summary)
	return summary, nil
}

// OpenSessionsContaining returns the caller's open assigned sessions whose
// curriculum includes the module. Used to route progress broadcasts.
func (s *Service) OpenSessionsContaining(hospitalNumber, moduleID string, now time.Time) ([]models.TrainingSession, error) {
	sessions, err := s.repo.ListSessions()
	if err != nil {
		return nil, err
	}

	var out []models.TrainingSession
	for _, session := range sessions {
		if !IsOpen(session, now) || !session.HasMember(hospitalNumber) {
			continue
		}
		for _, id := range session.ModuleIDs {
			if id == moduleID {
				out = append(out, session)
				break
			}
		}
	}
	return out, nil
}

// BroadcastProgress pushes a learner's module completion to the session's
// dashboard room.
func (s *Service) BroadcastProgress(sessionID uint, data interface{}) {
	s.broadcast(sessionID, "progress", data)
}

func (s *Service) broadcast(sessionID uint, messageType string, data interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastMessage(strconv.FormatUint(uint64(sessionID), 10), messageType, data)
	log.Printf("Broadcast %s event for session %d", messageType, sessionID)
}

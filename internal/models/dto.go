package models

// Request DTOs. Validation tags are checked with go-playground/validator
// in the handlers before anything reaches a service.

type RegisterRequest struct {
	HospitalNumber string `json:"hospitalNumber" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Birthday       string `json:"birthday"`
	Position       string `json:"position"`
	Division       string `json:"division"`
	Department     string `json:"department"`
	Role           string `json:"role" validate:"required"`
}

type LoginRequest struct {
	Name           string `json:"name" validate:"required"`
	HospitalNumber string `json:"hospitalNumber" validate:"required"`
}

type ModuleRequest struct {
	ID           string     `json:"id" validate:"required"`
	Section      string     `json:"section" validate:"required"`
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description"`
	Thumbnail    string     `json:"thumbnail"`
	Duration     string     `json:"duration"`
	Tags         []string   `json:"tags"`
	VideoURL     string     `json:"video_url"`
	Questions    []Question `json:"questions"`
	AllowedRoles []string   `json:"allowed_roles"`
}

type SessionRequest struct {
	Name                    string   `json:"name" validate:"required"`
	StartDateTime           string   `json:"startDateTime" validate:"required"`
	EndDateTime             string   `json:"endDateTime" validate:"required"`
	Status                  string   `json:"status" validate:"omitempty,oneof=open closed"`
	ModuleIDs               []string `json:"moduleIds" validate:"required,min=1"`
	EmployeeHospitalNumbers []string `json:"employeeHospitalNumbers" validate:"required,min=1"`
}

type EvaluationRequest struct {
	Q1       int    `json:"q1" validate:"required,min=1,max=5"`
	Q2       int    `json:"q2" validate:"required,min=1,max=5"`
	Q3       int    `json:"q3" validate:"required,min=1,max=5"`
	Q4       int    `json:"q4" validate:"required,min=1,max=5"`
	Q5       int    `json:"q5" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback" validate:"required"`
}

type DeleteUserRequest struct {
	Password string `json:"password" validate:"required"`
}

// QuestionView is a question as presented to a learner: the correct index
// stays server-side until the answer is submitted.
type QuestionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

func (q Question) ToView() QuestionView {
	return QuestionView{
		ID:      q.ID,
		Text:    q.Text,
		Options: q.Options,
	}
}

// ModuleView is a module as presented to a learner, with its questions
// sanitized and the caller's progress attached.
type ModuleView struct {
	ID          string          `json:"id"`
	Section     string          `json:"section"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Thumbnail   string          `json:"thumbnail"`
	Duration    string          `json:"duration"`
	Tags        []string        `json:"tags"`
	VideoURL    string          `json:"video_url"`
	Questions   []QuestionView  `json:"questions"`
	Progress    *ModuleProgress `json:"progress,omitempty"`
}

func (m Module) ToView(progress *ModuleProgress) ModuleView {
	questions := make([]QuestionView, 0, len(m.Questions))
	for _, q := range m.Questions {
		questions = append(questions, q.ToView())
	}
	return ModuleView{
		ID:          m.ID,
		Section:     m.Section,
		Title:       m.Title,
		Description: m.Description,
		Thumbnail:   m.Thumbnail,
		Duration:    m.Duration,
		Tags:        m.Tags,
		VideoURL:    m.VideoURL,
		Questions:   questions,
		Progress:    progress,
	}
}

package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Well-known module ids referenced by the dashboard visibility rules.
const (
	ModulePatientsRights = "patients-rights"
	ModuleHandHygiene    = "hand-hygiene"
	ModuleIPSG           = "ipsg"
	ModuleRiskManagement = "risk-opportunities-management"
)

// SectionInfectionControl is the section label that grants Medical Interns
// access to every module under it.
const SectionInfectionControl = "B. Infection Prevention and Control"

type Module struct {
	ID           string                       `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
	DeletedAt    gorm.DeletedAt               `json:"-" gorm:"index"`
	Section      string                       `json:"section" gorm:"not null;index"`
	Title        string                       `json:"title" gorm:"not null"`
	Description  string                       `json:"description"`
	Thumbnail    string                       `json:"thumbnail"`
	Duration     string                       `json:"duration"`
	Tags         datatypes.JSONSlice[string]  `json:"tags"`
	VideoURL     string                       `json:"video_url"`
	Questions    datatypes.JSONSlice[Question] `json:"questions"`
	AllowedRoles datatypes.JSONSlice[string]  `json:"allowed_roles"`
}

type Question struct {
	ID                 string   `json:"id"`
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// Valid reports whether the question can be presented and scored.
func (q Question) Valid() bool {
	return len(q.Options) > 0 &&
		q.CorrectAnswerIndex >= 0 &&
		q.CorrectAnswerIndex < len(q.Options)
}

// ValidQuestions filters out questions that cannot be scored.
func (m Module) ValidQuestions() []Question {
	out := make([]Question, 0, len(m.Questions))
	for _, q := range m.Questions {
		if q.Valid() {
			out = append(out, q)
		}
	}
	return out
}

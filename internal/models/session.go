package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

// TrainingSession is a time-boxed cohort assignment of modules to staff.
// Status is an explicit admin override independent of the time window.
type TrainingSession struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Name                    string                      `json:"name" gorm:"not null"`
	StartDateTime           time.Time                   `json:"startDateTime" gorm:"not null"`
	EndDateTime             time.Time                   `json:"endDateTime" gorm:"not null"`
	Status                  string                      `json:"status" gorm:"not null;default:open"`
	ModuleIDs               datatypes.JSONSlice[string] `json:"moduleIds"`
	EmployeeHospitalNumbers datatypes.JSONSlice[string] `json:"employeeHospitalNumbers"`

	Evaluations []SessionEvaluation `json:"evaluations,omitempty" gorm:"foreignKey:SessionID"`
}

// HasMember reports whether the hospital number is on the membership list.
func (s *TrainingSession) HasMember(hospitalNumber string) bool {
	for _, hn := range s.EmployeeHospitalNumbers {
		if hn == hospitalNumber {
			return true
		}
	}
	return false
}

// SessionEvaluation is the post-session Likert survey. The unique index on
// (session, submitter) makes a resubmission overwrite rather than append.
type SessionEvaluation struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
	SessionID      uint      `json:"-" gorm:"not null;uniqueIndex:idx_eval_session_user"`
	HospitalNumber string    `json:"hospitalNumber" gorm:"not null;uniqueIndex:idx_eval_session_user"`
	SubmitterName  string    `json:"submitterName"`
	SubmittedAt    time.Time `json:"submittedAt"`
	Q1             int       `json:"q1"`
	Q2             int       `json:"q2"`
	Q3             int       `json:"q3"`
	Q4             int       `json:"q4"`
	Q5             int       `json:"q5"`
	Feedback       string    `json:"feedback"`
}

// Scores returns the five Likert answers in question order.
func (e SessionEvaluation) Scores() [5]int {
	return [5]int{e.Q1, e.Q2, e.Q3, e.Q4, e.Q5}
}

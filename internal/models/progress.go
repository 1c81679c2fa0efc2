package models

import (
	"time"

	"gorm.io/datatypes"
)

// AttemptRecord is one entry in the append-only attempt history.
type AttemptRecord struct {
	Date    time.Time      `json:"date"`
	Score   int            `json:"score"`
	Answers map[string]int `json:"answers"`
}

// ModuleProgress is the per (user, module) record. highScore only ever
// goes up and isCompleted never reverts to false; the single write path
// enforcing that lives in the progress repository.
type ModuleProgress struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
	HospitalNumber string    `json:"-" gorm:"not null;uniqueIndex:idx_progress_user_module"`
	ModuleID       string    `json:"moduleId" gorm:"not null;uniqueIndex:idx_progress_user_module"`

	IsUnlocked         bool                                 `json:"isUnlocked"`
	IsCompleted        bool                                 `json:"isCompleted"`
	HighScore          int                                  `json:"highScore"`
	LastAttemptAnswers datatypes.JSONType[map[string]int]   `json:"lastAttemptAnswers"`
	Attempts           datatypes.JSONSlice[AttemptRecord]   `json:"attempts"`
}

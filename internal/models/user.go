package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile is keyed by hospital number, which doubles as the login
// credential together with the staff member's name.
type UserProfile struct {
	HospitalNumber string         `json:"hospitalNumber" gorm:"primaryKey"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
	Name           string         `json:"name" gorm:"not null"`
	Birthday       string         `json:"birthday"`
	Position       string         `json:"position"`
	Division       string         `json:"division"`
	Department     string         `json:"department"`
	Role           string         `json:"role" gorm:"not null"`

	Progress []ModuleProgress `json:"-" gorm:"foreignKey:HospitalNumber;references:HospitalNumber"`
}

// ProgressMap indexes the user's progress rows by module id. Modules the
// user never touched have no entry and count as not started.
func (u *UserProfile) ProgressMap() map[string]ModuleProgress {
	out := make(map[string]ModuleProgress, len(u.Progress))
	for _, p := range u.Progress {
		out[p.ModuleID] = p
	}
	return out
}

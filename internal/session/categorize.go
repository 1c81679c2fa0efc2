package session

import (
	"time"

	"training-portal/internal/models"
	"training-portal/internal/progress"
)

// IsOpen reports whether a session is accepting activity: the admin
// status override must be open AND now must fall inside the window,
// inclusive at both ends.
func IsOpen(s models.TrainingSession, now time.Time) bool {
	if s.Status != models.SessionStatusOpen {
		return false
	}
	return !now.Before(s.StartDateTime) && !now.After(s.EndDateTime)
}

// Categorized partitions the open sessions from the acting user's point
// of view. Closed or out-of-window sessions appear in neither list.
type Categorized struct {
	Assigned []models.TrainingSession `json:"assigned"`
	Joinable []models.TrainingSession `json:"joinable"`
}

func Categorize(now time.Time, hospitalNumber string, sessions []models.TrainingSession) Categorized {
	out := Categorized{
		Assigned: []models.TrainingSession{},
		Joinable: []models.TrainingSession{},
	}
	for _, s := range sessions {
		if !IsOpen(s, now) {
			continue
		}
		if s.HasMember(hospitalNumber) {
			out.Assigned = append(out.Assigned, s)
		} else {
			out.Joinable = append(out.Joinable, s)
		}
	}
	return out
}

// MemberCompletion is the percentage of the session's curriculum one user
// has completed, 0 when the session has no modules.
func MemberCompletion(s models.TrainingSession, userProgress map[string]models.ModuleProgress) int {
	if len(s.ModuleIDs) == 0 {
		return 0
	}
	completed := 0
	for _, id := range s.ModuleIDs {
		if p, ok := userProgress[id]; ok && p.IsCompleted {
			completed++
		}
	}
	return progress.Percent(completed, len(s.ModuleIDs))
}

// CohortCompletion is completed module instances across all assigned
// members over (members x modules), 0 when either is zero.
func CohortCompletion(s models.TrainingSession, progressByUser map[string]map[string]models.ModuleProgress) int {
	members := len(s.EmployeeHospitalNumbers)
	moduleCount := len(s.ModuleIDs)
	if members == 0 || moduleCount == 0 {
		return 0
	}

	completed := 0
	for _, hn := range s.EmployeeHospitalNumbers {
		userProgress := progressByUser[hn]
		for _, id := range s.ModuleIDs {
			if p, ok := userProgress[id]; ok && p.IsCompleted {
				completed++
			}
		}
	}
	return progress.Percent(completed, members*moduleCount)
}

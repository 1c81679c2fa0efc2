package session

import (
	"testing"
	"time"

	"gorm.io/datatypes"

	"training-portal/internal/models"
)

func window(start, end string) (time.Time, time.Time) {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		panic(err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		panic(err)
	}
	return s, e
}

func makeSession(id uint, status string, start, end string, members ...string) models.TrainingSession {
	s, e := window(start, end)
	return models.TrainingSession{
		ID:                      id,
		Name:                    "Orientation",
		Status:                  status,
		StartDateTime:           s,
		EndDateTime:             e,
		EmployeeHospitalNumbers: datatypes.NewJSONSlice(members),
	}
}

func TestIsOpenInclusiveBoundaries(t *testing.T) {
	s := makeSession(1, models.SessionStatusOpen, "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z")

	cases := []struct {
		now  string
		want bool
	}{
		{"2023-12-31T23:59:59Z", false},
		{"2024-01-01T00:00:00Z", true}, // start boundary counts
		{"2024-01-01T12:00:00Z", true},
		{"2024-01-02T00:00:00Z", true}, // end boundary counts
		{"2024-01-02T00:00:01Z", false},
	}
	for _, tc := range cases {
		now, _ := time.Parse(time.RFC3339, tc.now)
		if got := IsOpen(s, now); got != tc.want {
			t.Errorf("IsOpen at %s = %v, want %v", tc.now, got, tc.want)
		}
	}
}

func TestClosedStatusOverridesWindow(t *testing.T) {
	s := makeSession(1, models.SessionStatusClosed, "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", "H-1")
	now, _ := time.Parse(time.RFC3339, "2024-01-01T12:00:00Z")

	if IsOpen(s, now) {
		t.Fatal("closed session reported open inside its window")
	}

	cat := Categorize(now, "H-1", []models.TrainingSession{s})
	if len(cat.Assigned) != 0 || len(cat.Joinable) != 0 {
		t.Fatalf("closed session appeared in categorization: %+v", cat)
	}
}

func TestCategorizeSplitsByMembership(t *testing.T) {
	now, _ := time.Parse(time.RFC3339, "2024-01-01T12:00:00Z")
	sessions := []models.TrainingSession{
		makeSession(1, models.SessionStatusOpen, "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", "H-1", "H-2"),
		makeSession(2, models.SessionStatusOpen, "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", "H-2"),
		makeSession(3, models.SessionStatusOpen, "2024-02-01T00:00:00Z", "2024-02-02T00:00:00Z", "H-1"),
	}

	cat := Categorize(now, "H-1", sessions)
	if len(cat.Assigned) != 1 || cat.Assigned[0].ID != 1 {
		t.Fatalf("assigned = %+v, want session 1 only", cat.Assigned)
	}
	if len(cat.Joinable) != 1 || cat.Joinable[0].ID != 2 {
		t.Fatalf("joinable = %+v, want session 2 only", cat.Joinable)
	}
	// Session 3 is out of window and belongs nowhere.
}

func completedProgress(moduleIDs ...string) map[string]models.ModuleProgress {
	out := make(map[string]models.ModuleProgress, len(moduleIDs))
	for _, id := range moduleIDs {
		out[id] = models.ModuleProgress{ModuleID: id, IsCompleted: true}
	}
	return out
}

func TestMemberCompletion(t *testing.T) {
	s := makeSession(1, models.SessionStatusOpen, "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", "H-1")
	s.ModuleIDs = datatypes.NewJSONSlice([]string{"a", "b", "c", "d"})

	if got := MemberCompletion(s, completedProgress("a", "b", "c")); got != 75 {
		t.Fatalf("got %d, want 75", got)
	}
	if got := MemberCompletion(s, nil); got != 0 {
		t.Fatalf("no progress: got %d, want 0", got)
	}

	s.ModuleIDs = nil
	if got := MemberCompletion(s, completedProgress("a")); got != 0 {
		t.Fatalf("no modules: got %d, want 0", got)
	}
}

func TestCohortCompletion(t *testing.T) {
	s := makeSession(1, models.SessionStatusOpen, "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", "H-1", "H-2")
	s.ModuleIDs = datatypes.NewJSONSlice([]string{"a", "b"})

	// H-1 completed both, H-2 completed one: 3 of 4 instances.
	byUser := map[string]map[string]models.ModuleProgress{
		"H-1": completedProgress("a", "b"),
		"H-2": completedProgress("a"),
	}
	if got := CohortCompletion(s, byUser); got != 75 {
		t.Fatalf("got %d, want 75", got)
	}
}

func TestCohortCompletionGuardsZero(t *testing.T) {
	noMembers := makeSession(1, models.SessionStatusOpen, "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z")
	noMembers.ModuleIDs = datatypes.NewJSONSlice([]string{"a"})
	if got := CohortCompletion(noMembers, nil); got != 0 {
		t.Fatalf("no members: got %d, want 0", got)
	}

	noModules := makeSession(2, models.SessionStatusOpen, "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", "H-1")
	if got := CohortCompletion(noModules, nil); got != 0 {
		t.Fatalf("no modules: got %d, want 0", got)
	}
}

package progress

import (
	"fmt"
	"log"
	"time"

	"training-portal/internal/access"
	"training-portal/internal/models"
	"training-portal/pkg/cache"
)

const statsTTL = 5 * time.Minute

type Service struct {
	repo  *Repository
	cache *cache.RedisCache
}

func NewService(repo *Repository, cache *cache.RedisCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// ApplyQuizResult records a finished quiz sitting and returns the updated
// progress row.
func (s *Service) ApplyQuizResult(hospitalNumber, moduleID string, score int, passed bool, answers map[string]int) (*models.ModuleProgress, error) {
	updated, err := s.repo.ApplyQuizResult(hospitalNumber, moduleID, score, passed, answers)
	if err != nil {
		return nil, err
	}
	log.Printf("Recorded quiz result for user %s module %s: score %d, passed %v", hospitalNumber, moduleID, score, passed)
	return updated, nil
}

func (s *Service) GetUserProgress(hospitalNumber string) (map[string]models.ModuleProgress, error) {
	return s.repo.GetUserProgress(hospitalNumber)
}

// AuditView is the admin per-user audit: the modules the user's role may
// see under the configured allow-lists, with progress attached.
type AuditView struct {
	User    models.UserProfile  `json:"user"`
	Modules []models.ModuleView `json:"modules"`
	Summary Summary             `json:"summary"`
}

func (s *Service) AuditUser(hospitalNumber string) (*AuditView, error) {
	user, err := s.repo.GetUser(hospitalNumber)
	if err != nil {
		return nil, err
	}

	catalog, err := s.repo.ListModules()
	if err != nil {
		return nil, err
	}

	visible := access.ConfiguredModules(user.Role, catalog)
	progressMap := user.ProgressMap()

	views := make([]models.ModuleView, 0, len(visible))
	for _, m := range visible {
		var p *models.ModuleProgress
		if record, ok := progressMap[m.ID]; ok {
			p = &record
		}
		views = append(views, m.ToView(p))
	}

	return &AuditView{
		User:    *user,
		Modules: views,
		Summary: Summarize(progressMap, visible),
	}, nil
}

type UserStat struct {
	HospitalNumber string  `json:"hospitalNumber"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Division       string  `json:"division"`
	Summary        Summary `json:"summary"`
}

type CohortStats struct {
	AveragePercentage int        `json:"averagePercentage"`
	UserCount         int        `json:"userCount"`
	Users             []UserStat `json:"users"`
}

// CohortStatsFor computes per-user completion and the equal-weight mean
// for the (optionally filtered) cohort. Snapshots are cached briefly since
// the dashboard polls this.
func (s *Service) CohortStatsFor(role, division string) (*CohortStats, error) {
	key := fmt.Sprintf("stats:%s:%s", role, division)

	var cached CohortStats
	if err := s.cache.GetJSON(key, &cached); err == nil {
		return &cached, nil
	}

	users, err := s.repo.ListUsers(role, division)
	if err != nil {
		return nil, err
	}
	catalog, err := s.repo.ListModules()
	if err != nil {
		return nil, err
	}

	stats := &CohortStats{Users: make([]UserStat, 0, len(users))}
	percentages := make([]int, 0, len(users))
	for i := range users {
		user := &users[i]
		visible := access.ConfiguredModules(user.Role, catalog)
		summary := Summarize(user.ProgressMap(), visible)
		percentages = append(percentages, summary.Percentage)
		stats.Users = append(stats.Users, UserStat{
			HospitalNumber: user.HospitalNumber,
			Name:           user.Name,
			Role:           user.Role,
			Division:       user.Division,
			Summary:        summary,
		})
	}
	stats.UserCount = len(users)
	stats.AveragePercentage = MeanPercentage(percentages)

	if err := s.cache.SetJSON(key, stats, statsTTL); err != nil {
		log.Printf("Error caching cohort stats: %v", err)
	}
	return stats, nil
}

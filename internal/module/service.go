package module

import (
	"errors"
	"log"

	"gorm.io/datatypes"

	"training-portal/internal/access"
	"training-portal/internal/models"
	"training-portal/internal/progress"
	"training-portal/pkg/cache"
)

var ErrInvalidQuestion = errors.New("question must have options and a correct index inside them")

type Service struct {
	repo  *Repository
	cache *cache.RedisCache
}

func NewService(repo *Repository, cache *cache.RedisCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Catalog returns the full module catalog, from the cache when warm.
func (s *Service) Catalog() ([]models.Module, error) {
	modules, err := s.cache.GetCatalog()
	if err == nil {
		return modules, nil
	}

	modules, err = s.repo.ListModules()
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCatalog(modules); err != nil {
		log.Printf("Error caching module catalog: %v", err)
	}
	return modules, nil
}

// Dashboard is a learner's module list: the fixed per-role visibility
// rules applied to the catalog, each module carrying the caller's
// progress, plus the overall completion summary.
type Dashboard struct {
	Modules []models.ModuleView `json:"modules"`
	Summary progress.Summary    `json:"summary"`
}

func (s *Service) DashboardFor(hospitalNumber, role string) (*Dashboard, error) {
	catalog, err := s.Catalog()
	if err != nil {
		return nil, err
	}

	visible := access.DashboardModules(role, catalog)

	progressMap, err := s.repo.GetUserProgress(hospitalNumber)
	if err != nil {
		return nil, err
	}

	views := make([]models.ModuleView, 0, len(visible))
	for _, m := range visible {
		var p *models.ModuleProgress
		if record, ok := progressMap[m.ID]; ok {
			p = &record
		}
		views = append(views, m.ToView(p))
	}

	return &Dashboard{
		Modules: views,
		Summary: progress.Summarize(progressMap, visible),
	}, nil
}

func (s *Service) GetModule(id string) (*models.Module, error) {
	return s.repo.GetModule(id)
}

func fromRequest(req *models.ModuleRequest) *models.Module {
	return &models.Module{
		ID:           req.ID,
		Section:      req.Section,
		Title:        req.Title,
		Description:  req.Description,
		Thumbnail:    req.Thumbnail,
		Duration:     req.Duration,
		Tags:         datatypes.NewJSONSlice(req.Tags),
		VideoURL:     req.VideoURL,
		Questions:    datatypes.NewJSONSlice(req.Questions),
		AllowedRoles: datatypes.NewJSONSlice(req.AllowedRoles),
	}
}

func validQuestions(questions []models.Question) bool {
	for _, q := range questions {
		if !q.Valid() {
			return false
		}
	}
	return true
}

func (s *Service) CreateModule(req *models.ModuleRequest) (*models.Module, error) {
	if !validQuestions(req.Questions) {
		return nil, ErrInvalidQuestion
	}

	m := fromRequest(req)
	if err := s.repo.CreateModule(m); err != nil {
		return nil, err
	}
	s.invalidate()
	return m, nil
}

// UpdateModule replaces a module's content while preserving its identity.
func (s *Service) UpdateModule(id string, req *models.ModuleRequest) (*models.Module, error) {
	if !validQuestions(req.Questions) {
		return nil, ErrInvalidQuestion
	}

	existing, err := s.repo.GetModule(id)
	if err != nil {
		return nil, err
	}

	m := fromRequest(req)
	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt
	if err := s.repo.UpdateModule(m); err != nil {
		return nil, err
	}
	s.invalidate()
	return m, nil
}

func (s *Service) DeleteModule(id string) error {
	if _, err := s.repo.GetModule(id); err != nil {
		return err
	}
	if err := s.repo.DeleteModule(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *Service) invalidate() {
	if err := s.cache.InvalidateCatalog(); err != nil {
		log.Printf("Error invalidating catalog cache: %v", err)
	}
}

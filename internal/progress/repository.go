package progress

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"training-portal/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// getOrCreate returns the progress row for (user, module), creating the
// implicit zero-state record on first reference.
func (r *Repository) getOrCreate(tx *gorm.DB, hospitalNumber, moduleID string) (*models.ModuleProgress, error) {
	var p models.ModuleProgress
	err := tx.Where("hospital_number = ? AND module_id = ?", hospitalNumber, moduleID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p = models.ModuleProgress{
				HospitalNumber: hospitalNumber,
				ModuleID:       moduleID,
				IsUnlocked:     true,
			}
			if createErr := tx.Create(&p).Error; createErr != nil {
				return nil, createErr
			}
			return &p, nil
		}
		return nil, err
	}
	return &p, nil
}

// ApplyQuizResult is the single write path for learner progress.
func (r *Repository) ApplyQuizResult(hospitalNumber, moduleID string, score int, passed bool, answers map[string]int) (*models.ModuleProgress, error) {
	var updated models.ModuleProgress
	err := r.db.Transaction(func(tx *gorm.DB) error {
		p, err := r.getOrCreate(tx, hospitalNumber, moduleID)
		if err != nil {
			return err
		}
		updated = mergeQuizResult(*p, score, passed, answers, time.Now())
		return tx.Save(&updated).Error
	})
	if err != nil {
		log.Printf("Error applying quiz result for user %s module %s: %v", hospitalNumber, moduleID, err)
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) GetUserProgress(hospitalNumber string) (map[string]models.ModuleProgress, error) {
	var rows []models.ModuleProgress
	err := r.db.Where("hospital_number = ?", hospitalNumber).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.ModuleProgress, len(rows))
	for _, p := range rows {
		out[p.ModuleID] = p
	}
	return out, nil
}

func (r *Repository) GetUser(hospitalNumber string) (*models.UserProfile, error) {
	var user models.UserProfile
	err := r.db.Preload("Progress").
		Where("hospital_number = ?", hospitalNumber).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns profiles with progress preloaded, optionally filtered
// by role and division for the cohort stats view.
func (r *Repository) ListUsers(role, division string) ([]models.UserProfile, error) {
	query := r.db.Preload("Progress")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if division != "" {
		query = query.Where("division = ?", division)
	}

	var users []models.UserProfile
	err := query.Order("name asc").Find(&users).Error
	return users, err
}

func (r *Repository) ListModules() ([]models.Module, error) {
	var modules []models.Module
	err := r.db.Order("section asc, id asc").Find(&modules).Error
	return modules, err
}

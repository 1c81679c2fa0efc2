package session

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"training-portal/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListSessions() ([]models.TrainingSession, error) {
	var sessions []models.TrainingSession
	err := r.db.Preload("Evaluations").Order("start_date_time asc").Find(&sessions).Error
	if err != nil {
		log.Printf("Error listing sessions: %v", err)
		return nil, err
	}
	return sessions, nil
}

func (r *Repository) GetSession(id uint) (*models.TrainingSession, error) {
	var s models.TrainingSession
	err := r.db.Preload("Evaluations").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) CreateSession(s *models.TrainingSession) error {
	return r.db.Create(s).Error
}

func (r *Repository) UpdateSession(s *models.TrainingSession) error {
	return r.db.Save(s).Error
}

func (r *Repository) DeleteSession(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.SessionEvaluation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TrainingSession{}, id).Error
	})
}

// UpsertEvaluation stores one evaluation per (session, user); a
// resubmission overwrites the previous one.
func (r *Repository) UpsertEvaluation(e *models.SessionEvaluation) error {
	var existing models.SessionEvaluation
	err := r.db.Where("session_id = ? AND hospital_number = ?", e.SessionID, e.HospitalNumber).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(e).Error
		}
		return err
	}

	e.ID = existing.ID
	e.CreatedAt = existing.CreatedAt
	return r.db.Save(e).Error
}

// ProgressForUsers loads progress maps for a member list in one query.
func (r *Repository) ProgressForUsers(hospitalNumbers []string) (map[string]map[string]models.ModuleProgress, error) {
	out := make(map[string]map[string]models.ModuleProgress, len(hospitalNumbers))
	if len(hospitalNumbers) == 0 {
		return out, nil
	}

	var rows []models.ModuleProgress
	err := r.db.Where("hospital_number IN ?", hospitalNumbers).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, p := range rows {
		if out[p.HospitalNumber] == nil {
			out[p.HospitalNumber] = make(map[string]models.ModuleProgress)
		}
		out[p.HospitalNumber][p.ModuleID] = p
	}
	return out, nil
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

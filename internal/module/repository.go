package module

import (
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

func (r *Repository) ListModules() ([]models.Module, error) {
	var modules []models.Module
	err := r.db.Order("section asc, id asc").Find(&modules).Error
	if err != nil {
		log.Printf("Error listing modules: %v", err)
		return nil, err
	}
	return modules, nil
}

func (r *Repository) GetModule(id string) (*models.Module, error) {
	var m models.Module
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) CreateModule(m *models.Module) error {
	err := r.db.Create(m).Error
	if err != nil {
		log.Printf("Error creating module %s: %v", m.ID, err)
		return err
	}
	return nil
}

func (r *Repository) UpdateModule(m *models.Module) error {
	return r.db.Save(m).Error
}

func (r *Repository) DeleteModule(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Module{}).Error
}

func (r *Repository) CountModules() (int64, error) {
	var count int64
	err := r.db.Model(&models.Module{}).Count(&count).Error
	return count, err
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

package auth

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

func (r *Repository) GetUserByHospitalNumber(hospitalNumber string) (*models.UserProfile, error) {
	var user models.UserProfile
	result := r.db.Preload("Progress").
		Where("hospital_number = ?", hospitalNumber).
		First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *Repository) CreateUser(user *models.UserProfile) error {
	return r.db.Create(user).Error
}

func (r *Repository) ListUsers() ([]models.UserProfile, error) {
	var users []models.UserProfile
	err := r.db.Preload("Progress").Order("name asc").Find(&users).Error
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return nil, err
	}
	return users, nil
}

func (r *Repository) UpdateUser(user *models.UserProfile) error {
	return r.db.Save(user).Error
}

// DeleteUser removes the profile and its progress rows. Progress is never
// deleted individually, only here as part of whole-user deletion.
func (r *Repository) DeleteUser(hospitalNumber string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hospital_number = ?", hospitalNumber).
			Delete(&models.ModuleProgress{}).Error; err != nil {
			return err
		}
		return tx.Where("hospital_number = ?", hospitalNumber).
			Delete(&models.UserProfile{}).Error
	})
}

package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"training-portal/internal/models"
)

var (
	ErrDuplicateUser      = errors.New("hospital number already registered")
	ErrInvalidRole        = errors.New("unknown role")
	ErrInvalidCredentials = errors.New("name and hospital number do not match")
	ErrWrongPassword      = errors.New("delete confirmation password is incorrect")
)

type Service struct {
	repo               *Repository
	jwtSecret          []byte
	deletePasswordHash string
}

// NewService wires the auth service. deletePasswordHash is the bcrypt hash
// of the delete-confirmation password, configured via the environment.
func NewService(repo *Repository, jwtSecret, deletePasswordHash string) *Service {
	return &Service{
		repo:               repo,
		jwtSecret:          []byte(jwtSecret),
		deletePasswordHash: deletePasswordHash,
	}
}

func (s *Service) Register(req *models.RegisterRequest) (*models.UserProfile, error) {
	if !models.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	hospitalNumber := strings.TrimSpace(req.HospitalNumber)
	if _, err := s.repo.GetUserByHospitalNumber(hospitalNumber); err == nil {
		return nil, ErrDuplicateUser
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.UserProfile{
		HospitalNumber: hospitalNumber,
		Name:           strings.TrimSpace(req.Name),
		Birthday:       req.Birthday,
		Position:       req.Position,
		Division:       req.Division,
		Department:     req.Department,
		Role:           req.Role,
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login matches the submitted name against the profile stored under the
// hospital number. There is no password; the pair is the credential.
func (s *Service) Login(name, hospitalNumber string) (string, *models.UserProfile, error) {
	user, err := s.repo.GetUserByHospitalNumber(strings.TrimSpace(hospitalNumber))
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !strings.EqualFold(strings.TrimSpace(name), user.Name) {
		return "", nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"hospital_number": user.HospitalNumber,
		"name":            user.Name,
		"role":            user.Role,
		"exp":             time.Now().Add(time.Hour * 24).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return tokenString, user, nil
}

func (s *Service) GetUser(hospitalNumber string) (*models.UserProfile, error) {
	return s.repo.GetUserByHospitalNumber(hospitalNumber)
}

func (s *Service) ListUsers() ([]models.UserProfile, error) {
	return s.repo.ListUsers()
}

func (s *Service) UpdateUser(hospitalNumber string, req *models.RegisterRequest) (*models.UserProfile, error) {
	if !models.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	user, err := s.repo.GetUserByHospitalNumber(hospitalNumber)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Birthday = req.Birthday
	user.Position = req.Position
	user.Division = req.Division
	user.Department = req.Department
	user.Role = req.Role

	if err := s.repo.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser requires the externally configured confirmation password.
func (s *Service) DeleteUser(hospitalNumber, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(s.deletePasswordHash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return s.repo.DeleteUser(hospitalNumber)
}

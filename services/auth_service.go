package services

import (
	"errors"
	"fmt"
	"strings"

	"lavapro-backend/models"
	"lavapro-backend/utils"

	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned when login fails; callers must not
// learn whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("e-mail ou senha inválidos")

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, validation("Nome, e-mail e senha são obrigatórios.")
	}
	if !utils.ValidateEmail(email) {
		return nil, validation("Formato de e-mail inválido.")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, conflict("E-mail já registrado.")
	}

	// PasswordHash holds the clear text until the BeforeCreate hook runs.
	user := models.User{Name: name, Email: email, PasswordHash: password}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

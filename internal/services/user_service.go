package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"freetrack/internal/models"
	"freetrack/internal/repositories"
)

type UserService interface {
	Register(user *models.User, plainPassword string) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	ClearRefresh(userID int) error
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService
	authService  AuthService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService, authService AuthService) UserService {
	return &userService{
		repo:         repo,
		emailService: emailService,
		authService:  authService,
	}
}

func (s *userService) Register(user *models.User, plainPassword string) error {
	user.Email = strings.TrimSpace(strings.ToLower(user.Email))
	if user.Email == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(plainPassword) == "" {
		return errors.New("password is required")
	}

	existing, err := s.repo.GetByEmail(user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("email already registered")
	}

	hash, err := s.authService.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.repo.Create(user); err != nil {
		return err
	}

	if s.emailService != nil {
		// warn but do not fail registration
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			log.Printf("[user][register] welcome email to %s failed: %v", user.Email, err)
		}
	}
	return nil
}

func (s *userService) GetByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
}

func (s *userService) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	return s.repo.UpdateRefresh(userID, token, expiresAt)
}

func (s *userService) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	return s.repo.RotateRefresh(oldToken, newToken, newExpiresAt)
}

func (s *userService) ClearRefresh(userID int) error {
	return s.repo.ClearRefresh(userID)
}

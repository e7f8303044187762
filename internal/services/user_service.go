package services

import (
	"errors"
	"log"
	"strings"

	"otprental/internal/models"
	"otprental/internal/repositories"
)

var ErrEmailExists = errors.New("user already exists with this email")

type UserService interface {
	Signup(name, email, mobile, password string) (*models.User, error)
	GetUserByID(id int) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
}

type userService struct {
	repo       repositories.UserRepository
	walletRepo repositories.WalletRepository
	emails     EmailService
	auth       AuthService
}

func NewUserService(repo repositories.UserRepository, walletRepo repositories.WalletRepository, emails EmailService, auth AuthService) UserService {
	return &userService{
		repo:       repo,
		walletRepo: walletRepo,
		emails:     emails,
		auth:       auth,
	}
}

// Signup stores a new user with a hashed password and provisions an empty
// wallet. Email matching is exact (case-sensitive), like the rest of the API.
func (s *userService) Signup(name, email, mobile, password string) (*models.User, error) {
	email = strings.TrimSpace(email)

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		Mobile:       strings.TrimSpace(mobile),
		PasswordHash: hash,
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	if err := s.walletRepo.CreateWallet(user.ID); err != nil {
		return nil, err
	}

	if s.emails != nil {
		if err := s.emails.SendWelcomeEmail(user.Email, user.Name); err != nil {
			// warn but do not fail creation
			log.Printf("[user][signup] warning: welcome email to %s failed: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *userService) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

package services

import (
	"context"
	"errors"
	"sync"

	"taskboard/app/models"
	"taskboard/app/store"
)

var (
	// ErrUserExists is returned when the username or email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when no user matches the username and password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles registration and login against the stored users.
type AuthService struct {
	records *store.Records
	mu      sync.Mutex
}

// NewAuthService creates a new AuthService.
func NewAuthService(records *store.Records) *AuthService {
	return &AuthService{records: records}
}

// Register appends a new user. It fails with ErrUserExists when either the
// username or the email is taken.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.records.LoadUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == req.Username || u.Email == req.Email {
			return ErrUserExists
		}
	}
	users = append(users, models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	return s.records.SaveUsers(ctx, users)
}

// Login returns the username of the user matching both fields exactly.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	users, err := s.records.LoadUsers(ctx)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if u.Username == req.Username && u.Password == req.Password {
			return u.Username, nil
		}
	}
	return "", ErrInvalidCredentials
}

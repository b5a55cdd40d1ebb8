// Package services holds the business rules between controllers and
// repositories.
package services

import (
	"context"
	"errors"

	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	"github.com/aamirkhan2478/elite-market-backend/pkg/auth"
)

// ErrInvalidCredentials means the email/password pair did not match.
var ErrInvalidCredentials = errors.New("services: invalid credentials")

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// AuthService implements signup and login.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// SignupInput is the validated payload for registration.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Mobile   string
	Pic      string
	IsAdmin  bool
}

// Signup registers a new user and returns it with a fresh token.
// An already-registered email yields repositories.ErrDuplicateEmail.
// The pre-check and the insert are separate operations; the unique index
// on email catches the race between them.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", repositories.ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Address:  in.Address,
		Mobile:   in.Mobile,
		Pic:      in.Pic,
		IsAdmin:  in.IsAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

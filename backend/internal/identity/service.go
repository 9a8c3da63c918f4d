// Package identity registers accounts and verifies credentials.
package identity

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"post-spot/backend/internal/graph"
	apperrors "post-spot/backend/pkg/errors"
	"post-spot/backend/pkg/logger"
)

// PasswordCost is the bcrypt work factor for new accounts
const PasswordCost = 10

// UserStore is the subset of the graph repository the service needs
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*graph.UserCredentials, error)
	CreateUser(ctx context.Context, email, passwordHash, firstName, lastName string) (*graph.User, error)
}

// RegisterInput carries the sign-up form
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Service handles registration and authentication
type Service struct {
	store  UserStore
	logger *zap.Logger
}

// NewService creates an identity service backed by store
func NewService(store UserStore) *Service {
	return &Service{
		store:  store,
		logger: logger.Named("identity"),
	}
}

// NormalizeEmail trims and lower-cases an email so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. It fails with ErrDuplicateEmail when the
// email is already on file and never returns the password hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*graph.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}
	if in.Password == "" {
		return nil, apperrors.ErrPasswordRequired
	}

	existing, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return nil, apperrors.NewBaseError(apperrors.ErrorTypeIdentity, "failed to hash password", err)
	}

	user, err := s.store.CreateUser(ctx, email, string(hash), strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName))
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return user, nil
}

// Authenticate returns the public identity when email and password match.
// Unknown email and wrong password both yield (nil, nil); only store failures
// are errors.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*graph.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, nil
	}

	creds, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password))
	switch {
	case err == nil:
		user := creds.User
		return &user, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return nil, nil
	default:
		// a malformed stored hash can never match
		s.logger.Warn("Stored password hash rejected", zap.String("user_id", creds.User.ID), zap.Error(err))
		return nil, nil
	}
}

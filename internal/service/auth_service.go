package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
	"github.com/bookbazaar/bookbazaar-api/internal/service/auth"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// UserRepository is the account persistence surface AuthService consumes.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Add(ctx context.Context, user *domain.User) (*domain.User, store.ReplicaSync, error)
}

// AuthService handles account registration and login.
type AuthService struct {
	users  UserRepository
	hasher auth.PasswordHasher
	tokens auth.JWTService
}

// NewAuthService creates an AuthService.
func NewAuthService(users UserRepository, hasher auth.PasswordHasher, tokens auth.JWTService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a customer account. The plaintext password is hashed and
// discarded before the user ever reaches a store. A taken email surfaces as
// store.ErrEmailExists.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, email, password)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	created, sync, err := s.users.Add(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("user registered",
		slog.String("user_id", created.ID),
		slog.String("replica_sync", string(sync.Status)))

	return created, nil
}

// Login verifies the credentials against the primary store and issues an
// access token. Any failure collapses into ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, user, nil
}

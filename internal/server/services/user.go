// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and identity resolution
// for the auth gate.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fablehq/fable-server/internal/common"
	"github.com/fablehq/fable-server/internal/server/auth"
	"github.com/fablehq/fable-server/internal/server/config"
	"github.com/fablehq/fable-server/internal/server/models"
	"github.com/fablehq/fable-server/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides authentication-related operations:
// - Register: create accounts with bcrypt-hashed passwords
// - Login: verify credentials and mint an access token
// - GetByID: resolve an authenticated subject to its account
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.JWTSecret),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new account for the given email and password and returns
// the stored user together with a fresh access token. The email is trimmed
// and lower-cased before storage; a duplicate yields common.ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        NormalizeEmail(email),
		PasswordHash: string(hash),
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, "", common.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateAccessToken(u.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	return u, token, nil
}

// Login verifies the credentials and, on success, returns the user and a new
// access token. Unknown email and wrong password both resolve to
// common.ErrorUnauthorized so responses cannot be used to enumerate accounts.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.generateAccessToken(user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	return user, token, nil
}

// GetByID resolves a user ID (typically a verified token subject) to the
// stored account. Missing users pass common.ErrorNotFound through.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.GetByID(ctx, id)
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address,
// matching how emails are stored and compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
}

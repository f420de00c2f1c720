// Package services contains server-side business logic. This file implements
// UserService, which handles signup and signin plus access-token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// minPasswordLength is the signup password floor, in characters.
const minPasswordLength = 8

// emailPattern requires the standard local@domain.tld shape.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthResult bundles the authenticated user with a freshly minted token.
type AuthResult struct {
	User  *models.User
	Token string
}

// UserService provides authentication-related operations:
// - Signup: validate credentials and create users
// - Signin: verify credentials and mint tokens
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Signup validates the email shape and password length, creates the user
// with a bcrypt digest, and returns the user with a token bound to its
// identity. A duplicate email yields common.ErrEmailTaken; the fast-path
// lookup below is racy by itself, so the storage-level unique index is the
// authoritative check.
func (s *UserService) Signup(ctx context.Context, email, password string) (*AuthResult, error) {
	if !emailPattern.MatchString(email) {
		return nil, common.ErrInvalidEmail
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, common.ErrWeakPassword
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.withToken(user)
}

// Signin verifies the credentials and, on success, refreshes the user's
// updated_at and returns a new token. Unknown email and wrong password are
// deliberately indistinguishable: both yield common.ErrInvalidCredentials.
func (s *UserService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	if !emailPattern.MatchString(email) {
		return nil, common.ErrInvalidEmail
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	user, err = repo.Update(ctx, user)
	if err != nil {
		return nil, common.ErrInternal
	}

	return s.withToken(user)
}

func (s *UserService) withToken(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, token verification and
// profile lookup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
	"github.com/dmitrijs2005/streetsmarts/internal/cryptox"
	"github.com/dmitrijs2005/streetsmarts/internal/server/auth"
	"github.com/dmitrijs2005/streetsmarts/internal/server/config"
	"github.com/dmitrijs2005/streetsmarts/internal/server/models"
	"github.com/dmitrijs2005/streetsmarts/internal/server/repositories/repomanager"
)

const (
	MaxUsernameLength = 64
	MinPasswordLength = 8
	MaxPasswordLength = 256
)

// passwordParams is a seam so tests can hash cheaply.
var passwordParams = cryptox.DefaultParams

// UserService provides account operations:
// - Register: validate and create users
// - Login: verify credentials and mint an access token
// - Authenticate: resolve a bearer token to a stored user
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	params                      cryptox.Params

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		params:                      passwordParams,
	}
}

// Register creates a user. Username is trimmed; duplicates yield
// common.ErrAlreadyExists and rule violations wrap common.ErrValidation.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	hash, err := cryptox.HashPassword(pw, s.params)
	if err != nil {
		return nil, common.ErrorInternal
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

func validateCredentials(username, password string) error {
	n := utf8.RuneCountInString(username)
	if n == 0 {
		return fmt.Errorf("%w: Username must not be empty", common.ErrValidation)
	}
	if n > MaxUsernameLength {
		return fmt.Errorf("%w: Username too long; maximum is %d characters", common.ErrValidation, MaxUsernameLength)
	}
	p := utf8.RuneCountInString(password)
	if p < MinPasswordLength {
		return fmt.Errorf("%w: Password must be at least %d characters long", common.ErrValidation, MinPasswordLength)
	}
	if p > MaxPasswordLength {
		return fmt.Errorf("%w: Password too long; maximum is %d characters", common.ErrValidation, MaxPasswordLength)
	}
	return nil
}

// Login verifies credentials and returns a signed access token. Unknown
// users and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// match the hashing cost of the found-user path
			_, _ = cryptox.CheckPassword(pw, s.getDummyHash())
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	ok, err := cryptox.CheckPassword(pw, user.PasswordHash)
	if err != nil {
		return "", common.ErrorInternal
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.UserName, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Authenticate resolves a bearer token. Bad or expired tokens return the
// auth error; a token for a deleted user returns common.ErrorNotFound.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return s.Profile(ctx, claims.Subject)
}

func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return u, nil
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := cryptox.HashPassword(common.GenerateRandByteArray(16), s.params)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

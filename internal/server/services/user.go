// Package services contains server-side business logic. This file implements
// UserService: registration, credential verification, and issuing/refreshing
// the stateless JWT pair.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLen is the registration floor for plaintext passwords.
const minPasswordLen = 8

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
//   - Register: create principals (bcrypt the credential, mint tokens)
//   - Login: verify credentials and mint tokens
//   - Refresh: verify a refresh token and mint a new access token
//
// Both tokens are self-contained signed claims; nothing about them is
// persisted, so Refresh never touches storage.
type UserService struct {
	users                        users.Repository
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	bcryptCost                   int
	dummyHash                    []byte
}

// NewUserService constructs a UserService from the repository and server
// config. The dummy hash is generated once at the configured cost so that a
// login against an unknown email burns the same bcrypt work as a real
// comparison (no account enumeration through timing).
func NewUserService(repo users.Repository, cfg *config.Config) (*UserService, error) {
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("taskkeeper.no.such.user"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash error: %w", err)
	}

	return &UserService{
		users:                        repo,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		bcryptCost:                   cfg.BcryptCost,
		dummyHash:                    dummyHash,
	}, nil
}

// Register creates a new principal and returns it with a fresh token pair.
// The plaintext password exists only on the stack of this call.
func (s *UserService) Register(ctx context.Context, email, password, displayName string) (*models.User, *TokenPair, error) {

	if len(password) < minPasswordLen {
		return nil, nil, common.ErrorWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(displayName),
	}

	user, err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorEmailExists) {
			return nil, nil, common.ErrorEmailExists
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	pair, err := s.IssuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Login verifies the email/password pair and, on success, returns the
// principal and a new token pair. Unknown email and wrong password collapse
// into the same common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Burn the same bcrypt work as a real comparison.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, nil, common.ErrorInvalidCredentials
		}
		return nil, nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, common.ErrorInvalidCredentials
	}

	pair, err := s.IssuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh verifies a refresh-kind token and mints a new access token for the
// same subject. The refresh token itself is neither rotated nor extended.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {

	userID, err := auth.GetUserIDFromToken(refreshToken, auth.KindRefresh, s.jwtSecret)
	if err != nil {
		return "", common.ErrInvalidToken
	}

	accessToken, err := auth.GenerateToken(userID, auth.KindAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return accessToken, nil
}

// IssuePair mints an access/refresh token pair for userID.
func (s *UserService) IssuePair(userID string) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, auth.KindAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := auth.GenerateToken(userID, auth.KindRefresh, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

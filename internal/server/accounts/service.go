// Package accounts implements the directory side of account registration and
// login: the server-side mirror of the client credential store.
package accounts

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/geosick-health/geosick/internal/common"
	"github.com/geosick-health/geosick/internal/server/auth"
	"github.com/geosick-health/geosick/internal/server/config"
)

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register mirrors a client signup. The phone is the primary identity and
// must be unique; duplicates fail with common.ErrorDuplicatePhone.
func (s *Service) Register(ctx context.Context, account Account) (*Account, error) {

	account.Phone = strings.TrimSpace(account.Phone)
	if account.Phone == "" || strings.TrimSpace(account.Name) == "" || account.Password == "" {
		return nil, common.ErrorMissingFields
	}

	_, err := s.repo.GetByPhone(ctx, account.Phone)
	if err == nil {
		return nil, common.ErrorDuplicatePhone
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	if account.Role == "" {
		account.Role = RoleUser
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	created, err := s.repo.Create(ctx, &account)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return created, nil
}

// Authenticate checks the credentials and returns a signed access token.
// Unknown phone and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, phone, password string) (string, error) {

	account, err := s.repo.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if subtle.ConstantTimeCompare([]byte(account.Password), []byte(password)) != 1 {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(account.Phone, account.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

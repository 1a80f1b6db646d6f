package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/geosick-health/geosick/internal/client/storage"
	"github.com/geosick-health/geosick/internal/common"
	"github.com/geosick-health/geosick/internal/logging"
)

// Store reads and writes the accounts blob. Lookups are linear scans over the
// decoded array, which is fine at this scale, the store is not indexed.
type Store struct {
	kv     storage.KV
	logger logging.Logger
}

func NewStore(kv storage.KV, logger logging.Logger) *Store {
	return &Store{kv: kv, logger: logger.With("module", "accounts")}
}

// loadAll decodes the accounts blob. An absent blob is an empty store. An
// unparsable blob is discarded and the key reset, so a corrupt record cannot
// wedge the auth flow; the diagnostic goes to the operator log only.
func (s *Store) loadAll(ctx context.Context) []Account {
	data, err := s.kv.Get(ctx, storage.KeyUsers)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "failed to read accounts", "error", err.Error())
		}
		return nil
	}

	var all []Account
	if err := json.Unmarshal(data, &all); err != nil {
		s.logger.Error(ctx, "discarding corrupt accounts record", "error", err.Error())
		if err := s.kv.Remove(ctx, storage.KeyUsers); err != nil {
			s.logger.Error(ctx, "failed to reset accounts record", "error", err.Error())
		}
		return nil
	}
	return all
}

func (s *Store) saveAll(ctx context.Context, all []Account) error {
	data, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storage.KeyUsers, data)
}

// FindByPhone returns the account with the exact given phone, or
// common.ErrorNotFound.
func (s *Store) FindByPhone(ctx context.Context, phone string) (*Account, error) {
	for _, a := range s.loadAll(ctx) {
		if a.Phone == phone {
			found := a
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

// Create appends a new account record. The phone must be non-empty after
// trimming and not already registered (common.ErrorDuplicatePhone otherwise).
// A creation timestamp is stamped if the caller left it zero.
func (s *Store) Create(ctx context.Context, account Account) (*Account, error) {
	account.Phone = strings.TrimSpace(account.Phone)
	if account.Phone == "" {
		return nil, common.ErrorMissingFields
	}

	all := s.loadAll(ctx)
	for _, a := range all {
		if a.Phone == account.Phone {
			return nil, common.ErrorDuplicatePhone
		}
	}

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	if account.Role == "" {
		account.Role = RoleUser
	}

	all = append(all, account)
	if err := s.saveAll(ctx, all); err != nil {
		return nil, err
	}

	return &account, nil
}

// ListAll returns every stored account.
func (s *Store) ListAll(ctx context.Context) ([]Account, error) {
	return s.loadAll(ctx), nil
}

// Package session tracks which account is currently logged in: a single
// durable phone-number pointer into the credential store that survives
// restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/geosick-health/geosick/internal/client/accounts"
	"github.com/geosick-health/geosick/internal/client/storage"
	"github.com/geosick-health/geosick/internal/common"
	"github.com/geosick-health/geosick/internal/logging"
)

// Manager owns the session pointer. It has exactly two states, logged out and
// logged in; there is no intermediate state; the auth flow manages its own
// submission-pending state independently.
type Manager struct {
	kv     storage.KV
	store  *accounts.Store
	logger logging.Logger
}

func NewManager(kv storage.KV, store *accounts.Store, logger logging.Logger) *Manager {
	return &Manager{kv: kv, store: store, logger: logger.With("module", "session")}
}

// Restore resolves the stored pointer to an account. A missing pointer means
// logged out. A pointer that is unparsable or references a phone with no
// matching account is cleared and treated as logged out so stale state heals
// itself and never propagates an error to the caller.
func (m *Manager) Restore(ctx context.Context) *accounts.Account {
	data, err := m.kv.Get(ctx, storage.KeySessionPhone)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			m.logger.Error(ctx, "failed to read session pointer", "error", err.Error())
			m.clear(ctx)
		}
		return nil
	}

	var phone string
	if err := json.Unmarshal(data, &phone); err != nil {
		m.logger.Error(ctx, "discarding corrupt session pointer", "error", err.Error())
		m.clear(ctx)
		return nil
	}

	account, err := m.store.FindByPhone(ctx, phone)
	if err != nil {
		// pointer references an account that no longer exists
		m.clear(ctx)
		return nil
	}

	sanitized := account.Sanitized()
	return &sanitized
}

// Start stores the account's phone as the active session pointer.
func (m *Manager) Start(ctx context.Context, account *accounts.Account) error {
	data, err := json.Marshal(account.Phone)
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, storage.KeySessionPhone, data)
}

// End clears the session pointer. The activity log is untouched.
func (m *Manager) End(ctx context.Context) error {
	return m.kv.Remove(ctx, storage.KeySessionPhone)
}

func (m *Manager) clear(ctx context.Context) {
	if err := m.kv.Remove(ctx, storage.KeySessionPhone); err != nil {
		m.logger.Error(ctx, "failed to clear session pointer", "error", err.Error())
	}
}

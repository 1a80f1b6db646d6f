// Package storage provides the durable key/value capability that the
// credential store, session manager and activity log are built on. Values are
// opaque JSON blobs keyed by well-known names, so any flat store works: the
// shipped backends are a local SQLite database and an in-memory map.
package storage

import "context"

// Well-known keys for the durable blobs.
const (
	KeyUsers                 = "geosick_users"
	KeySessionPhone          = "geosick_session_phone"
	KeyActivityHistory       = "geosick_activity_history"
	KeyGlobalActivityHistory = "geosick_global_activity_history"
)

// KV is the minimal storage contract. Get returns common.ErrorNotFound when
// the key is absent. Set overwrites unconditionally (last write wins; there
// is no locking across processes, same as the flat storage it models).
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

package activity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/geosick-health/geosick/internal/client/storage"
	"github.com/geosick-health/geosick/internal/common"
	"github.com/geosick-health/geosick/internal/logging"
	"github.com/google/uuid"
)

// Publisher mirrors global-log appends to a remote collector. Failures are
// the publisher's to swallow; the log treats publishing as fire-and-forget.
type Publisher interface {
	Publish(ctx context.Context, entry Entry)
}

// CurrentPhoneFunc reports the active session's phone, if any. The shell
// wires this to its in-memory session state.
type CurrentPhoneFunc func() (string, bool)

// Log appends activity entries. History is best-effort telemetry, not a
// correctness-critical data path: storage failures on this layer are logged
// for the operator and swallowed, the user never sees them.
type Log struct {
	kv           storage.KV
	logger       logging.Logger
	currentPhone CurrentPhoneFunc
	publisher    Publisher

	// test seams
	now   func() time.Time
	newID func(t time.Time) string
}

func NewLog(kv storage.KV, currentPhone CurrentPhoneFunc, publisher Publisher, logger logging.Logger) *Log {
	return &Log{
		kv:           kv,
		logger:       logger.With("module", "activity"),
		currentPhone: currentPhone,
		publisher:    publisher,
		now:          time.Now,
		newID:        makeID,
	}
}

// makeID combines a wall-clock timestamp with a random component, so IDs are
// unique per call and still sort roughly by creation time.
func makeID(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano) + "-" + uuid.NewString()
}

// AppendGlobal prepends the entry to the durable global collection and, when
// a publisher is configured, mirrors it out.
func (l *Log) AppendGlobal(ctx context.Context, entry Entry) {
	list := l.loadList(ctx, storage.KeyGlobalActivityHistory)
	list = append([]Entry{entry}, list...)
	l.saveList(ctx, storage.KeyGlobalActivityHistory, list)

	if l.publisher != nil {
		l.publisher.Publish(ctx, entry)
	}
}

// AppendForUser fills in id, timestamp and userPhone, prepends the entry to
// the personal collection and then to the global one. Without an active
// session it is a no-op, not an error. The completed entry is returned so
// the caller can update its in-memory history cache.
func (l *Log) AppendForUser(ctx context.Context, item NewEntry) *Entry {
	phone, ok := l.currentPhone()
	if !ok {
		return nil
	}

	now := l.now()
	entry := Entry{
		ID:        l.newID(now),
		Type:      item.Type,
		Timestamp: now.UnixMilli(),
		Title:     item.Title,
		UserPhone: phone,
		Data:      item.Data,
		Language:  item.Language,
	}

	list := l.loadList(ctx, storage.KeyActivityHistory)
	list = append([]Entry{entry}, list...)
	l.saveList(ctx, storage.KeyActivityHistory, list)

	l.AppendGlobal(ctx, entry)

	return &entry
}

// AppendLogin records a successful authentication. Login events go to the
// global projection only; the personal log holds just the viewer's analysis
// history, matching the product's history page.
func (l *Log) AppendLogin(ctx context.Context, phone, name string) Entry {
	payload, _ := json.Marshal(struct {
		Message string `json:"message"`
	}{Message: "User " + name + " (" + phone + ") logged in."})

	now := l.now()
	entry := Entry{
		ID:        l.newID(now),
		Type:      TypeLogin,
		Timestamp: now.UnixMilli(),
		Title:     "User Logged In",
		UserPhone: phone,
		Data:      payload,
	}
	l.AppendGlobal(ctx, entry)
	return entry
}

// LoadPersonalHistory returns the durable personal collection, newest-first.
// Absent, corrupt or unparsable storage yields an empty slice, never an
// error; a corrupt record is cleared.
func (l *Log) LoadPersonalHistory(ctx context.Context) []Entry {
	return l.loadList(ctx, storage.KeyActivityHistory)
}

// LoadGlobalHistory returns the durable global collection, newest-first.
func (l *Log) LoadGlobalHistory(ctx context.Context) []Entry {
	return l.loadList(ctx, storage.KeyGlobalActivityHistory)
}

func (l *Log) loadList(ctx context.Context, key string) []Entry {
	data, err := l.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			l.logger.Error(ctx, "failed to read activity history", "key", key, "error", err.Error())
		}
		return nil
	}

	var list []Entry
	if err := json.Unmarshal(data, &list); err != nil {
		l.logger.Error(ctx, "discarding corrupt activity history", "key", key, "error", err.Error())
		if err := l.kv.Remove(ctx, key); err != nil {
			l.logger.Error(ctx, "failed to reset activity history", "key", key, "error", err.Error())
		}
		return nil
	}
	return list
}

func (l *Log) saveList(ctx context.Context, key string, list []Entry) {
	data, err := json.Marshal(list)
	if err != nil {
		l.logger.Error(ctx, "failed to encode activity history", "key", key, "error", err.Error())
		return
	}
	if err := l.kv.Set(ctx, key, data); err != nil {
		l.logger.Error(ctx, "failed to save activity history", "key", key, "error", err.Error())
	}
}

package activity

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/geosick-health/geosick/internal/common"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	entries      []Entry
	LastInserted *Entry
	LastLimit    int
	insertErr    error
	listErr      error
}

func (f *fakeRepository) Insert(ctx context.Context, entry *Entry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.entries = append(f.entries, *entry)
	f.LastInserted = entry
	return nil
}

func (f *fakeRepository) ListGlobal(ctx context.Context, limit int) ([]Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.LastLimit = limit
	return f.entries, nil
}

func TestServiceAppend(t *testing.T) {
	repo := &fakeRepository{}
	s := NewService(repo)

	err := s.Append(context.Background(), Entry{
		ID:        "2024-01-01T00:00:00Z-abc",
		Type:      "login",
		Timestamp: 1700000000000,
		Title:     "User Logged In",
		UserPhone: "1234567890",
		Data:      json.RawMessage(`{"message":"hi"}`),
	})

	require.NoError(t, err)
	require.NotNil(t, repo.LastInserted)
	require.False(t, repo.LastInserted.ReceivedAt.IsZero())
}

func TestServiceAppendMissingFields(t *testing.T) {
	s := NewService(&fakeRepository{})

	err := s.Append(context.Background(), Entry{ID: "", UserPhone: "123"})
	require.ErrorIs(t, err, common.ErrorMissingFields)

	err = s.Append(context.Background(), Entry{ID: "abc", UserPhone: "  "})
	require.ErrorIs(t, err, common.ErrorMissingFields)
}

func TestServiceAppendRepositoryError(t *testing.T) {
	repo := &fakeRepository{insertErr: errors.New("connection reset")}
	s := NewService(repo)

	err := s.Append(context.Background(), Entry{ID: "abc", UserPhone: "123"})
	require.ErrorIs(t, err, common.ErrorInternal)
}

func TestServiceListGlobalDefaultLimit(t *testing.T) {
	repo := &fakeRepository{entries: []Entry{{ID: "a"}}}
	s := NewService(repo)

	entries, err := s.ListGlobal(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, defaultListLimit, repo.LastLimit)
}

func TestServiceListGlobalExplicitLimit(t *testing.T) {
	repo := &fakeRepository{}
	s := NewService(repo)

	_, err := s.ListGlobal(context.Background(), 25)
	require.NoError(t, err)
	require.Equal(t, 25, repo.LastLimit)
}

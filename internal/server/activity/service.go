// Package activity ingests global-activity telemetry pushed by clients and
// serves the all-users listing for the admin dashboard.
package activity

import (
	"context"
	"strings"
	"time"

	"github.com/geosick-health/geosick/internal/common"
)

const defaultListLimit = 100

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Append stores one client-pushed entry. The entry must carry its
// client-assigned ID and user phone; the server stamps the receive time.
func (s *Service) Append(ctx context.Context, entry Entry) error {
	if strings.TrimSpace(entry.ID) == "" || strings.TrimSpace(entry.UserPhone) == "" {
		return common.ErrorMissingFields
	}

	entry.ReceivedAt = time.Now().UTC()

	if err := s.repo.Insert(ctx, &entry); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// ListGlobal returns the newest entries across all users. A non-positive
// limit selects the default.
func (s *Service) ListGlobal(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	entries, err := s.repo.ListGlobal(ctx, limit)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return entries, nil
}

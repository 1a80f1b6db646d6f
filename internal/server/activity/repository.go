package activity

import (
	"context"
)

type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	ListGlobal(ctx context.Context, limit int) ([]Entry, error)
}

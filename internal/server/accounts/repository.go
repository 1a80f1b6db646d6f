package accounts

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByPhone(ctx context.Context, phone string) (*Account, error)
}

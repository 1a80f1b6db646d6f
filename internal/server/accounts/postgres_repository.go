package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/geosick-health/geosick/internal/common"
	"github.com/geosick-health/geosick/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *Account) (*Account, error) {

	query :=
		`INSERT INTO accounts (phone, name, date_of_birth, password, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Phone, account.Name, account.DateOfBirth,
		account.Password, account.Role, account.CreatedAt).Scan(&account.ID)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByPhone(ctx context.Context, phone string) (*Account, error) {
	query :=
		`SELECT id, phone, name, date_of_birth, password, role, created_at FROM accounts
		 WHERE phone = $1
		 `

	account := &Account{}
	err := r.db.QueryRowContext(ctx, query, phone).Scan(
		&account.ID, &account.Phone, &account.Name, &account.DateOfBirth,
		&account.Password, &account.Role, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return account, nil
}

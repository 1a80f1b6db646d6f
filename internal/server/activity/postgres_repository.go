package activity

import (
	"context"
	"fmt"

	"github.com/geosick-health/geosick/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores one entry. Re-delivery of the same client ID is upserted,
// so retried pushes stay idempotent.
func (r *PostgresRepository) Insert(ctx context.Context, entry *Entry) error {

	query :=
		`INSERT INTO activity_log (id, type, ts, title, user_phone, data, language, received_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO NOTHING
		 `

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Type, entry.Timestamp, entry.Title,
		entry.UserPhone, []byte(entry.Data), entry.Language, entry.ReceivedAt)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	return nil
}

// ListGlobal returns the most recent entries across all users, newest-first.
func (r *PostgresRepository) ListGlobal(ctx context.Context, limit int) ([]Entry, error) {

	query :=
		`SELECT id, type, ts, title, user_phone, data, language, received_at FROM activity_log
		 ORDER BY ts DESC
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var item Entry
		var data []byte
		if err := rows.Scan(&item.ID, &item.Type, &item.Timestamp, &item.Title,
			&item.UserPhone, &data, &item.Language, &item.ReceivedAt); err != nil {
			return nil, err
		}
		item.Data = data
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

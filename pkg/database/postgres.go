package database

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS records (
		id         BIGSERIAL PRIMARY KEY,
		kind       TEXT NOT NULL,
		payload    JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS records_kind_created_at ON records (kind, created_at DESC, id DESC)`,
}

// PostgresRepository keeps every kind in one records table with the body as JSONB.
type PostgresRepository[T any, PT Recordable[T]] struct {
	pool *pgxpool.Pool
	kind string
}

func NewPostgresRepository[T any, PT Recordable[T]](pool *pgxpool.Pool) *PostgresRepository[T, PT] {
	return &PostgresRepository[T, PT]{
		pool: pool,
		kind: PT(new(T)).RecordKind(),
	}
}

func createPostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, statement := range postgresSchema {
		if _, err := pool.Exec(ctx, statement); err != nil {
			return err
		}
	}

	return nil
}

func (r *PostgresRepository[T, PT]) Insert(ctx context.Context, record *T) (string, error) {
	meta := PT(record).Meta()
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	var id int64
	err = r.pool.QueryRow(ctx,
		"INSERT INTO records (kind, payload, created_at) VALUES ($1, $2::jsonb, $3) RETURNING id",
		r.kind, string(payload), meta.CreatedAt,
	).Scan(&id)
	if err != nil {
		return "", err
	}

	meta.ID = strconv.FormatInt(id, 10)

	return meta.ID, nil
}

func (r *PostgresRepository[T, PT]) List(ctx context.Context, options ListOptions) ([]*T, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, payload::text, created_at FROM records WHERE kind = $1 ORDER BY created_at DESC, id DESC LIMIT $2",
		r.kind, options.limit(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*T{}
	for rows.Next() {
		var id int64
		var payload string
		var createdAt time.Time

		if err := rows.Scan(&id, &payload, &createdAt); err != nil {
			return nil, err
		}

		record := new(T)
		if err := json.Unmarshal([]byte(payload), record); err != nil {
			return nil, err
		}

		meta := PT(record).Meta()
		meta.ID = strconv.FormatInt(id, 10)
		meta.CreatedAt = createdAt

		records = append(records, record)
	}

	return records, rows.Err()
}

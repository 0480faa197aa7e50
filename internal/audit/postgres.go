package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTable = `CREATE TABLE IF NOT EXISTS prediction_audit (
	id          BIGSERIAL PRIMARY KEY,
	request_id  TEXT NOT NULL,
	label       TEXT NOT NULL,
	tier        TEXT NOT NULL,
	model       TEXT NOT NULL,
	scaler      TEXT NOT NULL,
	soft        BOOLEAN NOT NULL DEFAULT FALSE,
	failed      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertEntry = `INSERT INTO prediction_audit
	(request_id, label, tier, model, scaler, soft, failed, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres writes entries to the prediction_audit table.
type Postgres struct {
	db  execer
	now func() time.Time
}

// NewPostgres wraps db and creates the audit table if it is missing.
func NewPostgres(ctx context.Context, db execer) (*Postgres, error) {
	if _, err := db.Exec(ctx, createTable); err != nil {
		return nil, fmt.Errorf("create audit table: %w", err)
	}
	return &Postgres{db: db, now: time.Now}, nil
}

func (p *Postgres) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = p.now().UTC()
	}
	_, err := p.db.Exec(ctx, insertEntry,
		e.RequestID, e.Label, e.Tier, e.Model, e.Scaler, e.Soft, e.Failed, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

// Connect opens and pings a pgx pool.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

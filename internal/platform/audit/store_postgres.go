package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore persists audit events to a single append-only table.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects with the pgx stdlib driver and ensures the table
// exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping audit db: %w", err)
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStore wraps an existing connection. Used by integration tests.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ingestion_audit (
			id            UUID PRIMARY KEY,
			occurred_at   TIMESTAMPTZ NOT NULL,
			action        TEXT NOT NULL,
			law_id        TEXT NOT NULL DEFAULT '',
			compendium_id TEXT NOT NULL DEFAULT '',
			operator_id   TEXT NOT NULL DEFAULT '',
			request_id    TEXT NOT NULL DEFAULT '',
			detail        TEXT NOT NULL DEFAULT '',
			client        TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("migrate audit table: %w", err)
	}
	return nil
}

// Migrate creates the audit table if missing. Exported for integration tests.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return s.migrate(ctx)
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingestion_audit
			(id, occurred_at, action, law_id, compendium_id, operator_id, request_id, detail, client)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.NewString(),
		event.Timestamp,
		string(event.Action),
		event.LawID,
		event.CompendiumID,
		event.OperatorID,
		event.RequestID,
		event.Detail,
		event.Client,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByLaw returns events for a law id, oldest first.
func (s *PostgresStore) ListByLaw(ctx context.Context, lawID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT occurred_at, action, law_id, compendium_id, operator_id, request_id, detail, client
		FROM ingestion_audit WHERE law_id = $1 ORDER BY occurred_at`, lawID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var action string
		if err := rows.Scan(&e.Timestamp, &action, &e.LawID, &e.CompendiumID,
			&e.OperatorID, &e.RequestID, &e.Detail, &e.Client); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Action = Action(action)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

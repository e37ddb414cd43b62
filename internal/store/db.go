package store

import (
	"context"
	"errors"
	"fmt"

	"voicebot-server/internal/observability"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db     *sqlx.DB
	logger *observability.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS fraud_cases (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_name TEXT NOT NULL,
	security_identifier TEXT NOT NULL,
	security_question_1 TEXT NOT NULL,
	security_answer_1 TEXT NOT NULL,
	security_question_2 TEXT NOT NULL,
	security_answer_2 TEXT NOT NULL,
	merchant TEXT NOT NULL,
	txn_time TEXT NOT NULL,
	category TEXT NOT NULL,
	source TEXT NOT NULL,
	amount REAL NOT NULL,
	location TEXT NOT NULL,
	card_ending TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending_review',
	outcome_note TEXT NOT NULL DEFAULT '',
	resolved_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS fraud_results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_name TEXT NOT NULL,
	security_identifier TEXT NOT NULL,
	status TEXT NOT NULL,
	outcome_note TEXT NOT NULL,
	resolved_at TIMESTAMP NOT NULL
);
`

// New opens the SQLite case store at path and creates the schema if it
// does not exist yet.
func New(path string, logger *observability.Logger) (Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return Store{}, fmt.Errorf("failed to open case store: %w", err)
	}
	// SQLite handles one writer at a time; a single connection keeps
	// writes serialized and makes :memory: databases behave.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return Store{}, fmt.Errorf("failed to create case store schema: %w", err)
	}
	return Store{db: db, logger: logger}, nil
}

// DB returns the underlying database connection
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Healthy reports whether the store is reachable.
func (s *Store) Healthy(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Package archive centralises the optional MySQL lead sink.  The JSON
// snapshot remains the system of record; the archive exists so sales tooling
// can query enquiries with SQL without touching the web engine's data files.
//
// The default driver is go-sql-driver/mysql, which also works with MariaDB
// when configured for the MySQL wire protocol.  Open pings the database
// before returning so callers can fail fast during bootstrap.
package archive

import (
	"context"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/lumioedu/web/internal/content"
)

const insertSubmission = `
    INSERT INTO form_submission
        (id, name, email, phone, institution, message, role, submitted_at, status)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Store implements intake.Sink on top of a small MySQL pool.
type Store struct {
	db *sqlx.DB
}

// Open returns a Store with a conservative pool: 5 max open, 2 idle, and a
// 30-minute connection lifetime.  Archiving is a trickle, not a firehose.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing pool.  Used by tests with sqlmock.
func NewWithDB(db *sqlx.DB) *Store { return &Store{db: db} }

// Archive inserts one accepted submission.  The caller treats errors as
// non-fatal; the record is already in the snapshot.
func (s *Store) Archive(ctx context.Context, sub content.FormSubmission) error {
	_, err := s.db.ExecContext(ctx, insertSubmission,
		sub.ID,
		sub.Name,
		sub.Email,
		sub.Phone,
		sub.Institution,
		sub.Message,
		string(sub.Role),
		sub.SubmittedAt,
		string(sub.Status),
	)
	return err
}

// Close releases the pool.
func (s *Store) Close() error { return s.db.Close() }

// Package postgres implements the delivery service's UserStore against
// PostgreSQL using database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mindfuel/daily-quotes/internal/domain"
	"github.com/mindfuel/daily-quotes/internal/pkg/logger"
)

// Store implements delivery.UserStore. Each operation is its own
// transaction; there is no cross-recipient grouping.
type Store struct{ db *sql.DB }

// NewStore creates a Postgres-backed user store.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// EnsureSchema creates the users and email_sends tables if they do not
// exist. Safe to run on every job start.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const usersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(100) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			frequency VARCHAR(10) NOT NULL CHECK (frequency IN ('daily', 'weekly')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	const sendsTable = `
		CREATE TABLE IF NOT EXISTS email_sends (
			id UUID PRIMARY KEY,
			user_id UUID REFERENCES users(id),
			send_date DATE NOT NULL DEFAULT CURRENT_DATE,
			status VARCHAR(20) NOT NULL CHECK (status IN ('sent', 'failed')),
			error_message TEXT,
			sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`

	if _, err := s.db.ExecContext(ctx, usersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, sendsTable); err != nil {
		return fmt.Errorf("create email_sends table: %w", err)
	}
	return nil
}

// InsertUser adds a subscriber, ignoring duplicates by email. This is the
// administrative path; the delivery run never writes users.
func (s *Store) InsertUser(ctx context.Context, u domain.User) error {
	if !u.Frequency.Valid() {
		return fmt.Errorf("invalid frequency %q", u.Frequency)
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, frequency)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
	`, u.ID, u.Email, u.Name, u.Frequency)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// SelectActive returns active users subscribed at the given frequency,
// oldest subscription first.
func (s *Store) SelectActive(ctx context.Context, freq domain.Frequency) ([]domain.Recipient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, name FROM users
		WHERE is_active = TRUE AND frequency = $1
		ORDER BY created_at, id
	`, freq)
	if err != nil {
		return nil, fmt.Errorf("select active users: %w", err)
	}
	defer rows.Close()

	var out []domain.Recipient
	for rows.Next() {
		var r domain.Recipient
		if err := rows.Scan(&r.ID, &r.Email, &r.Name); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

// RecordOutcome appends one send outcome for today. A persistence failure
// is logged and swallowed: losing one record is accepted, aborting the
// dispatch loop is not.
func (s *Store) RecordOutcome(ctx context.Context, userID string, success bool, errDetail string) {
	status := domain.OutcomeSent
	if !success {
		status = domain.OutcomeFailed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO email_sends (id, user_id, status, error_message)
		VALUES ($1, $2, $3, NULLIF($4, ''))
	`, uuid.New().String(), userID, status, errDetail)
	if err != nil {
		logger.Error("recording send outcome failed", "user_id", userID, "status", string(status), "error", err)
		return
	}
	logger.Info("send outcome recorded", "user_id", userID, "status", string(status))
}

// Summarize counts outcomes for the given calendar date grouped by status.
// Absent statuses are reported as zero.
func (s *Store) Summarize(ctx context.Context, day time.Time) (domain.DailySummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM email_sends
		WHERE send_date = $1
		GROUP BY status
	`, day.Format("2006-01-02"))
	if err != nil {
		return domain.DailySummary{}, fmt.Errorf("summarize outcomes: %w", err)
	}
	defer rows.Close()

	var summary domain.DailySummary
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return domain.DailySummary{}, fmt.Errorf("scan summary row: %w", err)
		}
		switch domain.OutcomeStatus(status) {
		case domain.OutcomeSent:
			summary.Sent = count
		case domain.OutcomeFailed:
			summary.Failed = count
		}
	}
	if err := rows.Err(); err != nil {
		return domain.DailySummary{}, fmt.Errorf("iterate summary rows: %w", err)
	}
	return summary, nil
}

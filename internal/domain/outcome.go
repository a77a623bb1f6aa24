package domain

import "time"

// OutcomeStatus enumerates the terminal states of one send attempt.
type OutcomeStatus string

const (
	OutcomeSent   OutcomeStatus = "sent"
	OutcomeFailed OutcomeStatus = "failed"
)

// SendOutcome records whether one message reached one recipient on one date.
// Exactly one outcome is written per recipient selected in a run, immutable
// once written.
type SendOutcome struct {
	ID           string        `json:"id" db:"id"`
	UserID       string        `json:"user_id" db:"user_id"`
	SendDate     time.Time     `json:"send_date" db:"send_date"`
	Status       OutcomeStatus `json:"status" db:"status"`
	ErrorMessage string        `json:"error_message,omitempty" db:"error_message"`
	SentAt       time.Time     `json:"sent_at" db:"sent_at"`
}

// DailySummary aggregates today's outcomes by status. It is derived, never
// stored, and recomputed at the end of every run.
type DailySummary struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

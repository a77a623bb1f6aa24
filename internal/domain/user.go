package domain

import "time"

// Frequency enumerates how often a user receives quotes.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// User represents a quote subscriber. Users are created by an administrative
// insert and are read-only to the delivery run.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	Frequency Frequency `json:"frequency" db:"frequency"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Recipient is the projection of a user that the delivery run needs:
// who to address and where to send.
type Recipient struct {
	ID    string
	Email string
	Name  string
}

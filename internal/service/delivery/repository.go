package delivery

import (
	"context"
	"time"

	"github.com/mindfuel/daily-quotes/internal/domain"
)

// QuoteSource retrieves the quote of the day. Implementations degrade to a
// fixed fallback quote internally and never return an error; a nil result
// is the one signal that aborts dispatch for the run.
type QuoteSource interface {
	FetchQuote(ctx context.Context) *domain.Quote
}

// UserStore is the data access contract for subscribers and send outcomes.
type UserStore interface {
	// EnsureSchema creates the users and email_sends tables if absent.
	// Idempotent.
	EnsureSchema(ctx context.Context) error

	// SelectActive returns active users subscribed at the given frequency,
	// in selection order. Empty slice if none.
	SelectActive(ctx context.Context, freq domain.Frequency) ([]domain.Recipient, error)

	// RecordOutcome persists one send outcome for today. Persistence
	// failures are logged and swallowed so one lost record never aborts
	// the dispatch loop.
	RecordOutcome(ctx context.Context, userID string, success bool, errDetail string)

	// Summarize aggregates outcomes for the given calendar date by status,
	// with absent statuses reported as zero.
	Summarize(ctx context.Context, day time.Time) (domain.DailySummary, error)
}

// MailTransport delivers formatted messages to one recipient at a time.
type MailTransport interface {
	// SendQuote delivers the quote email and reports success. Failures are
	// logged by the transport; the boolean is the only signal the caller
	// acts on.
	SendQuote(ctx context.Context, to string, q *domain.Quote, name string, freq domain.Frequency) bool

	// SendSummary delivers the aggregate report to the administrator.
	// Failures are logged, never propagated.
	SendSummary(ctx context.Context, s domain.DailySummary, adminAddr string)
}

package delivery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mindfuel/daily-quotes/internal/domain"
	"github.com/mindfuel/daily-quotes/internal/pkg/logger"
)

// genericGreeting addresses recipients whose display name is empty.
const genericGreeting = "there"

// failedSendDetail is the diagnostic recorded with a failed outcome.
const failedSendDetail = "Email failed to send"

// Orchestrator drives one end-to-end delivery run. One recipient at a time,
// strictly sequential; the only suspension point is the pacing delay.
type Orchestrator struct {
	quotes     QuoteSource
	store      UserStore
	mail       MailTransport
	pacer      Pacer
	adminEmail string
	now        func() time.Time
}

// NewOrchestrator wires a delivery run from its collaborators. The default
// pacer waits two seconds between sends and the default clock is time.Now.
func NewOrchestrator(quotes QuoteSource, store UserStore, mail MailTransport, adminEmail string) *Orchestrator {
	return &Orchestrator{
		quotes:     quotes,
		store:      store,
		mail:       mail,
		pacer:      NewFixedPacer(2 * time.Second),
		adminEmail: adminEmail,
		now:        time.Now,
	}
}

// SetPacer replaces the inter-send gate. Tests use NopPacer; operators can
// tune the interval via config.
func (o *Orchestrator) SetPacer(p Pacer) {
	if p != nil {
		o.pacer = p
	}
}

// SetClock replaces the time source used for the weekly rule and for
// "today" in the summary.
func (o *Orchestrator) SetClock(now func() time.Time) {
	if now != nil {
		o.now = now
	}
}

// Run executes one delivery run. It never returns an error: every failure
// is logged and contained within the unit of work it affects (one
// recipient, or this run's dispatch phase). The summary stage executes
// unconditionally, even after a panic.
func (o *Orchestrator) Run(ctx context.Context) {
	logger.Info("daily quotes job started", "date", o.now().Format("2006-01-02"))

	defer o.summaryStage(ctx)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("unexpected error during run", "panic", fmt.Sprint(r))
		}
	}()

	if err := o.store.EnsureSchema(ctx); err != nil {
		logger.Error("schema setup failed", "error", err)
		return
	}

	quote := o.quotes.FetchQuote(ctx)
	if quote == nil {
		// Only reachable if the source returns nothing instead of its
		// fallback; dispatch is skipped for the whole run.
		logger.Error("failed to fetch quote, skipping dispatch")
		return
	}
	logger.Info("quote fetched", "quote", quote.Text, "author", quote.Author)

	o.dispatchTier(ctx, quote, domain.FrequencyDaily)

	if WeeklyDue(o.now()) {
		o.dispatchTier(ctx, quote, domain.FrequencyWeekly)
	}

	logger.Info("daily quotes job completed")
}

// dispatchTier selects one frequency cohort and sends to each member in
// selection order. An empty cohort is logged, not treated as an error.
func (o *Orchestrator) dispatchTier(ctx context.Context, quote *domain.Quote, freq domain.Frequency) {
	recipients, err := o.store.SelectActive(ctx, freq)
	if err != nil {
		logger.Error("recipient selection failed", "frequency", string(freq), "error", err)
		return
	}
	if len(recipients) == 0 {
		logger.Warn("no active users found", "frequency", string(freq))
		return
	}
	logger.Info("dispatching tier", "frequency", string(freq), "recipients", len(recipients))

	for _, r := range recipients {
		o.dispatchOne(ctx, quote, r, freq)
	}
}

// dispatchOne sends to a single recipient and records exactly one outcome.
// A failed send or a lost outcome record never aborts the loop; isolation
// is per-recipient.
func (o *Orchestrator) dispatchOne(ctx context.Context, quote *domain.Quote, r domain.Recipient, freq domain.Frequency) {
	o.pacer.Wait(ctx)

	sent := o.mail.SendQuote(ctx, r.Email, quote, greetingName(r.Name), freq)

	detail := ""
	if !sent {
		detail = failedSendDetail
	}
	o.store.RecordOutcome(ctx, r.ID, sent, detail)
}

// summaryStage recomputes today's aggregate and reports it to the
// administrator. It runs no matter how the rest of the run went; an
// aggregation failure is logged and zero counts are reported rather than
// suppressing the notification.
func (o *Orchestrator) summaryStage(ctx context.Context) {
	summary, err := o.store.Summarize(ctx, o.now())
	if err != nil {
		logger.Error("summary aggregation failed", "error", err)
		summary = domain.DailySummary{}
	}
	logger.Info("sending daily summary", "sent", summary.Sent, "failed", summary.Failed)
	o.mail.SendSummary(ctx, summary, o.adminEmail)
}

// greetingName derives the personalized salutation from the first token of
// the display name, falling back to a generic placeholder.
func greetingName(displayName string) string {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return genericGreeting
	}
	return fields[0]
}

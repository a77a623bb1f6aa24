package delivery_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindfuel/daily-quotes/internal/domain"
	"github.com/mindfuel/daily-quotes/internal/service/delivery"
)

const adminAddr = "admin@mindfuel.app"

var testQuote = &domain.Quote{Text: "Be here now.", Author: "Ram Dass"}

// Fixed clocks: a Monday and a Tuesday.
var (
	monday  = time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC)
	tuesday = time.Date(2026, time.August, 25, 9, 0, 0, 0, time.UTC)
)

type fakeQuotes struct {
	quote *domain.Quote
}

func (f *fakeQuotes) FetchQuote(context.Context) *domain.Quote { return f.quote }

type outcomeRec struct {
	userID  string
	success bool
	detail  string
}

// fakeStore is an in-memory UserStore. Summarize aggregates the outcomes
// recorded during the run, mirroring the real store's today-so-far query.
type fakeStore struct {
	mu           sync.Mutex
	users        map[domain.Frequency][]domain.Recipient
	outcomes     []outcomeRec
	schemaErr    error
	selectErr    error
	summarizeErr error
	selectPanics bool
	ensured      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[domain.Frequency][]domain.Recipient)}
}

func (f *fakeStore) EnsureSchema(context.Context) error {
	f.ensured++
	return f.schemaErr
}

func (f *fakeStore) SelectActive(_ context.Context, freq domain.Frequency) ([]domain.Recipient, error) {
	if f.selectPanics {
		panic("store connection lost")
	}
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.users[freq], nil
}

func (f *fakeStore) RecordOutcome(_ context.Context, userID string, success bool, detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, outcomeRec{userID: userID, success: success, detail: detail})
}

func (f *fakeStore) Summarize(context.Context, time.Time) (domain.DailySummary, error) {
	if f.summarizeErr != nil {
		return domain.DailySummary{}, f.summarizeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var s domain.DailySummary
	for _, o := range f.outcomes {
		if o.success {
			s.Sent++
		} else {
			s.Failed++
		}
	}
	return s, nil
}

type sendRec struct {
	to   string
	name string
	freq domain.Frequency
}

type fakeMail struct {
	mu        sync.Mutex
	failFor   map[string]bool // keyed by recipient email
	sends     []sendRec
	summaries []domain.DailySummary
	summaryTo []string
}

func newFakeMail() *fakeMail {
	return &fakeMail{failFor: make(map[string]bool)}
}

func (f *fakeMail) SendQuote(_ context.Context, to string, _ *domain.Quote, name string, freq domain.Frequency) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, sendRec{to: to, name: name, freq: freq})
	return !f.failFor[to]
}

func (f *fakeMail) SendSummary(_ context.Context, s domain.DailySummary, adminAddr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries = append(f.summaries, s)
	f.summaryTo = append(f.summaryTo, adminAddr)
}

func newOrchestrator(q *fakeQuotes, st *fakeStore, m *fakeMail, now time.Time) *delivery.Orchestrator {
	o := delivery.NewOrchestrator(q, st, m, adminAddr)
	o.SetPacer(delivery.NopPacer{})
	o.SetClock(func() time.Time { return now })
	return o
}

func TestRunSendsToDailyUsers(t *testing.T) {
	store := newFakeStore()
	store.users[domain.FrequencyDaily] = []domain.Recipient{
		{ID: "u1", Email: "alice@example.com", Name: "Alice Smith"},
		{ID: "u2", Email: "bob@example.com", Name: ""},
	}
	mail := newFakeMail()

	o := newOrchestrator(&fakeQuotes{quote: testQuote}, store, mail, tuesday)
	o.Run(context.Background())

	require.Len(t, mail.sends, 2)
	assert.Equal(t, "alice@example.com", mail.sends[0].to)
	assert.Equal(t, "Alice", mail.sends[0].name)
	assert.Equal(t, domain.FrequencyDaily, mail.sends[0].freq)
	assert.Equal(t, "there", mail.sends[1].name)

	require.Len(t, store.outcomes, 2)
	for _, oc := range store.outcomes {
		assert.True(t, oc.success)
		assert.Empty(t, oc.detail)
	}

	require.Len(t, mail.summaries, 1)
	assert.Equal(t, domain.DailySummary{Sent: 2, Failed: 0}, mail.summaries[0])
	assert.Equal(t, adminAddr, mail.summaryTo[0])
	assert.Equal(t, 1, store.ensured)
}

func TestWeeklyTierOnlyOnMonday(t *testing.T) {
	weekly := []domain.Recipient{{ID: "w1", Email: "carol@example.com", Name: "Carol"}}

	t.Run("monday dispatches weekly", func(t *testing.T) {
		store := newFakeStore()
		store.users[domain.FrequencyWeekly] = weekly
		mail := newFakeMail()

		newOrchestrator(&fakeQuotes{quote: testQuote}, store, mail, monday).Run(context.Background())

		require.Len(t, mail.sends, 1)
		assert.Equal(t, domain.FrequencyWeekly, mail.sends[0].freq)
	})

	t.Run("other days skip weekly entirely", func(t *testing.T) {
		for d := 0; d < 6; d++ {
			day := tuesday.AddDate(0, 0, d)
			store := newFakeStore()
			store.users[domain.FrequencyWeekly] = weekly
			mail := newFakeMail()

			newOrchestrator(&fakeQuotes{quote: testQuote}, store, mail, day).Run(context.Background())

			assert.Emptyf(t, mail.sends, "no weekly sends expected on %s", day.Weekday())
			assert.Empty(t, store.outcomes)
		}
	})
}

func TestMissingQuoteAbortsDispatchButSendsSummary(t *testing.T) {
	store := newFakeStore()
	store.users[domain.FrequencyDaily] = []domain.Recipient{
		{ID: "u1", Email: "alice@example.com", Name: "Alice"},
	}
	mail := newFakeMail()

	newOrchestrator(&fakeQuotes{quote: nil}, store, mail, monday).Run(context.Background())

	assert.Empty(t, mail.sends)
	assert.Empty(t, store.outcomes)
	require.Len(t, mail.summaries, 1)
	assert.Equal(t, domain.DailySummary{}, mail.summaries[0])
}

func TestSendFailureIsIsolatedPerRecipient(t *testing.T) {
	store := newFakeStore()
	store.users[domain.FrequencyDaily] = []domain.Recipient{
		{ID: "u1", Email: "one@example.com", Name: "One"},
		{ID: "u2", Email: "two@example.com", Name: "Two"},
		{ID: "u3", Email: "three@example.com", Name: "Three"},
	}
	mail := newFakeMail()
	mail.failFor["two@example.com"] = true

	newOrchestrator(&fakeQuotes{quote: testQuote}, store, mail, tuesday).Run(context.Background())

	// All three recipients were attempted, in selection order.
	require.Len(t, mail.sends, 3)
	assert.Equal(t, "one@example.com", mail.sends[0].to)
	assert.Equal(t, "three@example.com", mail.sends[2].to)

	// Exactly one outcome per recipient, exactly one failed.
	require.Len(t, store.outcomes, 3)
	assert.True(t, store.outcomes[0].success)
	assert.False(t, store.outcomes[1].success)
	assert.Equal(t, "u2", store.outcomes[1].userID)
	assert.Equal(t, "Email failed to send", store.outcomes[1].detail)
	assert.True(t, store.outcomes[2].success)

	require.Len(t, mail.summaries, 1)
	assert.Equal(t, domain.DailySummary{Sent: 2, Failed: 1}, mail.summaries[0])
}

func TestEmptyTierIsNotAnError(t *testing.T) {
	store := newFakeStore()
	mail := newFakeMail()

	newOrchestrator(&fakeQuotes{quote: testQuote}, store, mail, tuesday).Run(context.Background())

	assert.Empty(t, mail.sends)
	assert.Empty(t, store.outcomes)
	require.Len(t, mail.summaries, 1)
}

func TestSchemaFailureSkipsDispatchButSendsSummary(t *testing.T) {
	store := newFakeStore()
	store.schemaErr = assert.AnError
	store.users[domain.FrequencyDaily] = []domain.Recipient{
		{ID: "u1", Email: "alice@example.com", Name: "Alice"},
	}
	mail := newFakeMail()

	newOrchestrator(&fakeQuotes{quote: testQuote}, store, mail, tuesday).Run(context.Background())

	assert.Empty(t, mail.sends)
	require.Len(t, mail.summaries, 1)
}

func TestSelectFailureStillSendsSummary(t *testing.T) {
	store := newFakeStore()
	store.selectErr = assert.AnError
	mail := newFakeMail()

	newOrchestrator(&fakeQuotes{quote: testQuote}, store, mail, tuesday).Run(context.Background())

	assert.Empty(t, mail.sends)
	require.Len(t, mail.summaries, 1)
}

func TestSummarizeFailureStillSendsSummary(t *testing.T) {
	store := newFakeStore()
	store.summarizeErr = assert.AnError
	mail := newFakeMail()

	newOrchestrator(&fakeQuotes{quote: testQuote}, store, mail, tuesday).Run(context.Background())

	require.Len(t, mail.summaries, 1)
	assert.Equal(t, domain.DailySummary{}, mail.summaries[0])
}

func TestPanicIsCaughtAndSummaryStillSent(t *testing.T) {
	store := newFakeStore()
	store.selectPanics = true
	mail := newFakeMail()

	o := newOrchestrator(&fakeQuotes{quote: testQuote}, store, mail, tuesday)
	require.NotPanics(t, func() { o.Run(context.Background()) })

	require.Len(t, mail.summaries, 1)
}

package domain

// Quote is the quote-of-the-day delivered to every recipient in a run.
// It is produced once per run by the quote source and never persisted.
type Quote struct {
	Text   string `json:"quote"`
	Author string `json:"author"`
}

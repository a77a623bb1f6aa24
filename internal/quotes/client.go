// Package quotes fetches the quote of the day from the ZenQuotes API.
//
// The client never fails: every error mode (network, non-200, malformed
// payload) collapses to a fixed fallback quote so a provider outage can
// never take the delivery run down with it.
package quotes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/mindfuel/daily-quotes/internal/config"
	"github.com/mindfuel/daily-quotes/internal/domain"
	"github.com/mindfuel/daily-quotes/internal/pkg/logger"
)

// FallbackQuote is substituted when the provider is unreachable or returns
// a malformed payload.
var FallbackQuote = domain.Quote{
	Text:   "Keep pushing forward, even when it gets tough.",
	Author: "The MindFuel Team",
}

// apiQuote is the ZenQuotes wire format: a one-element array of
// {"q": text, "a": author} objects.
type apiQuote struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Client is a ZenQuotes API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a quote client from config. The request timeout bounds
// the only wait this client can incur.
func NewClient(cfg config.QuotesConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// FetchQuote returns today's quote, or the fallback on any failure.
// The result is never nil.
func (c *Client) FetchQuote(ctx context.Context) *domain.Quote {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/today", nil)
	if err != nil {
		logger.Error("quote request build failed", "error", err)
		return fallback()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("quote fetch failed", "error", err)
		logger.Warn("falling back to default quote")
		return fallback()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("quote provider returned non-200", "status", resp.StatusCode)
		return fallback()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("reading quote response failed", "error", err)
		return fallback()
	}

	var payload []apiQuote
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Warn("invalid response from quote provider", "error", err)
		return fallback()
	}
	if len(payload) == 0 || payload[0].Q == "" || payload[0].A == "" {
		logger.Warn("quote provider payload missing quote or author")
		return fallback()
	}

	return &domain.Quote{Text: payload[0].Q, Author: payload[0].A}
}

func fallback() *domain.Quote {
	q := FallbackQuote
	return &q
}

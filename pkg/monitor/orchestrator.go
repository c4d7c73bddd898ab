// Package monitor runs news fetches for a list of companies and keeps the outcome
// of the last completed fetch.
package monitor

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/umputun/newsdesk/pkg/backend"
	"github.com/umputun/newsdesk/pkg/domain"
)

//go:generate moq -out mocks/news_client.go -pkg mocks -skip-ensure -fmt goimports . NewsClient

const (
	// NoNewsNotice is set on an empty successful outcome
	NoNewsNotice = "No news found for the specified companies"
	// fallbackMessage used when a failure carries no message
	fallbackMessage = "An error occurred while fetching news"
)

// ErrNoCompanies returned when every identifier is blank
var ErrNoCompanies = errors.New("Please enter at least one company name") //nolint:staticcheck // shown to the user as is

// NewsClient makes a single call to the news service
type NewsClient interface {
	FetchNews(ctx context.Context, req backend.Request) ([]domain.NewsItem, error)
}

// Orchestrator validates identifiers, calls the news service and holds the resulting outcome.
// Concurrent FetchNews calls are not serialized: each one writes its outcome when it resolves
// and the last write wins, unless DiscardStale is set.
type Orchestrator struct {
	client NewsClient

	// DiscardStale drops resolutions of fetches superseded by a newer call
	DiscardStale bool

	gen atomic.Uint64

	mu      sync.Mutex
	outcome domain.Outcome
}

// New makes an orchestrator in the idle state
func New(client NewsClient) *Orchestrator {
	return &Orchestrator{client: client, outcome: domain.Idle{}}
}

// FetchNews runs one fetch for the given raw identifiers and returns its outcome.
// It never returns an error, every failure becomes a domain.Failed outcome.
func (o *Orchestrator) FetchNews(ctx context.Context, identifiers []string, forceRefresh bool) domain.Outcome {
	gen := o.gen.Add(1)

	companies := Companies(identifiers)
	if len(companies) == 0 {
		res := domain.Failed{Message: ErrNoCompanies.Error()}
		o.set(gen, res)
		return res
	}

	o.set(gen, domain.Loading{})
	log.Printf("[INFO] fetching news for %q, force refresh %v", companies, forceRefresh)

	items, err := o.client.FetchNews(ctx, backend.Request{Companies: companies, ForceRefresh: forceRefresh})
	if err != nil {
		res := domain.Failed{Message: Message(err)}
		log.Printf("[WARN] news fetch failed: %v", err)
		o.set(gen, res)
		return res
	}

	var res domain.Succeeded
	if len(items) == 0 {
		res = domain.Succeeded{Items: []domain.NewsItem{}, Notice: NoNewsNotice}
	} else {
		res = domain.Succeeded{Items: Normalize(items)}
	}
	log.Printf("[DEBUG] fetched %d news items for %d companies", len(res.Items), len(companies))
	o.set(gen, res)
	return res
}

// Outcome returns the current outcome
func (o *Orchestrator) Outcome() domain.Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.outcome
}

// Reset drops the current outcome and returns to idle
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcome = domain.Idle{}
}

// Generation returns the number of fetches started so far
func (o *Orchestrator) Generation() uint64 {
	return o.gen.Load()
}

// set writes the outcome of fetch number gen
func (o *Orchestrator) set(gen uint64, res domain.Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.DiscardStale && gen != o.gen.Load() {
		log.Printf("[DEBUG] discard %s outcome of stale fetch %d", res.State(), gen)
		return
	}
	o.outcome = res
}

// Companies trims identifiers and drops blank ones, order and duplicates are kept
func Companies(identifiers []string) []string {
	res := make([]string, 0, len(identifiers))
	for _, id := range identifiers {
		if s := strings.TrimSpace(id); s != "" {
			res = append(res, s)
		}
	}
	return res
}

// Message converts a fetch error to the message shown to the user
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, backend.ErrMalformedResponse) {
		return backend.ErrMalformedResponse.Error()
	}
	var se *backend.ServerError
	if errors.As(err, &se) {
		return se.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackMessage
}

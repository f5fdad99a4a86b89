// Package beach implements the BBQ beach search agent: it answers
// free-text queries about beaches where barbecue is allowed, with
// details on fees, equipment and booking.
package beach

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bbq-beach/agents/pkg/executor"
)

// SupportedContentTypes lists the content types the agent accepts and
// produces.
var SupportedContentTypes = []string{"text", "text/plain"}

// Config holds the agent's search configuration.
type Config struct {
	// SearchAPIKey enables the live search backend. Empty means mock mode.
	SearchAPIKey string
	// MockMode forces the canned catalog even when a key is present.
	MockMode bool
}

// Agent is the BBQ beach search agent. Without a search API key it
// serves results from a built-in catalog instead of failing.
type Agent struct {
	mock    bool
	catalog []beachSpot
	logger  *zap.Logger
}

type beachSpot struct {
	name      string
	area      string
	keywords  []string
	fee       string
	equipment string
	booking   string
	access    string
}

// New creates the agent. A missing search API key logs a warning and
// switches to mock mode rather than failing.
func New(cfg Config, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "beach_agent"))

	mock := cfg.MockMode
	if cfg.SearchAPIKey == "" {
		if !mock {
			logger.Warn("no search API key configured, running in mock mode")
		}
		mock = true
	}
	if !mock {
		// The live search backend is not wired up yet; the catalog is
		// the only data source either way.
		logger.Warn("live search backend unavailable, falling back to mock catalog")
		mock = true
	}

	return &Agent{
		mock:    mock,
		catalog: defaultCatalog(),
		logger:  logger,
	}
}

// MockMode reports whether the agent serves canned catalog results.
func (a *Agent) MockMode() bool { return a.mock }

// Stream answers a query as a chunk sequence: one working update while
// the catalog is searched, then a completed chunk with the results.
func (a *Agent) Stream(ctx context.Context, query, sessionID string) (<-chan executor.Chunk, error) {
	out := make(chan executor.Chunk, 2)

	go func() {
		defer close(out)

		a.logger.Info("searching BBQ beaches",
			zap.String("session_id", sessionID),
			zap.String("query", query))

		select {
		case out <- executor.Chunk{Content: "Searching for beaches where BBQ is allowed..."}:
		case <-ctx.Done():
			return
		}

		spots := a.search(query)
		select {
		case out <- executor.Chunk{Content: formatResults(query, spots), IsTaskComplete: true}:
		case <-ctx.Done():
		}
	}()

	return out, nil
}

// search matches catalog entries against the query keywords. An empty
// match returns the whole catalog so the user always gets suggestions.
func (a *Agent) search(query string) []beachSpot {
	q := strings.ToLower(query)
	var hits []beachSpot
	for _, spot := range a.catalog {
		for _, kw := range spot.keywords {
			if strings.Contains(q, kw) {
				hits = append(hits, spot)
				break
			}
		}
	}
	if len(hits) == 0 {
		hits = a.catalog
	}
	return hits
}

func formatResults(query string, spots []beachSpot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d BBQ-friendly beaches for %q:\n", len(spots), query)
	for _, spot := range spots {
		fmt.Fprintf(&b, "\n- %s (%s)\n", spot.name, spot.area)
		fmt.Fprintf(&b, "  Fee: %s\n", spot.fee)
		fmt.Fprintf(&b, "  Equipment: %s\n", spot.equipment)
		fmt.Fprintf(&b, "  Booking: %s\n", spot.booking)
		fmt.Fprintf(&b, "  Access: %s\n", spot.access)
	}
	return b.String()
}

func defaultCatalog() []beachSpot {
	return []beachSpot{
		{
			name:      "Zushi Beach BBQ Area",
			area:      "Kanagawa",
			keywords:  []string{"kanagawa", "zushi", "shonan"},
			fee:       "2,000 yen per adult, weekends only in summer",
			equipment: "Grill and charcoal rental on site",
			booking:   "Online reservation up to 2 weeks ahead",
			access:    "15 min walk from Zushi Station (JR Yokosuka Line)",
		},
		{
			name:      "Enoshima East Beach",
			area:      "Kanagawa (Shonan)",
			keywords:  []string{"shonan", "enoshima", "kanagawa", "fujisawa"},
			fee:       "Free area; paid terrace seats from 1,500 yen",
			equipment: "Bring your own or rent from beach huts",
			booking:   "First come first served for the free area",
			access:    "10 min walk from Katase-Enoshima Station",
		},
		{
			name:      "Inage Seaside Park BBQ Garden",
			area:      "Chiba",
			keywords:  []string{"chiba", "inage", "makuhari"},
			fee:       "3,000 yen per table of 6",
			equipment: "Full equipment and food packages available",
			booking:   "Phone or web reservation required",
			access:    "Bus from JR Inagekaigan Station",
		},
		{
			name:      "Odaiba Seaside Park",
			area:      "Tokyo",
			keywords:  []string{"tokyo", "odaiba"},
			fee:       "Free in designated zones",
			equipment: "No rentals; bring everything",
			booking:   "No reservation, fires allowed in fire pits only",
			access:    "5 min walk from Odaiba-Kaihinkoen Station",
		},
	}
}

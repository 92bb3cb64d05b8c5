// Package observability provides hooks for metrics and tracing of searches.
//
// The client library calls the registered hooks around every search so
// consumers can feed timings and outcomes to whatever backend they run,
// without the library depending on one.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSearchHooks(&mySearchHooks{})
//	    // ... run application
//	}
//
// The client emits events:
//
//	observability.Search().OnSearchStart(ctx, host)
//	// ... request and decode ...
//	observability.Search().OnSearchComplete(ctx, SearchEvent{...})
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Search Hooks
// =============================================================================

// SearchEvent describes one finished search.
type SearchEvent struct {
	Host       string
	StatusCode int // 0 when no response was received
	Pills      int
	NoRecords  bool
	Duration   time.Duration
	Err        error
}

// SearchHooks receives events from the search client.
type SearchHooks interface {
	// OnSearchStart records an outgoing search request.
	OnSearchStart(ctx context.Context, host string)

	// OnSearchComplete records the outcome of a search, successful or not.
	OnSearchComplete(ctx context.Context, ev SearchEvent)
}

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(context.Context, string)         {}
func (NoopSearchHooks) OnSearchComplete(context.Context, SearchEvent) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	searchHooks SearchHooks = NoopSearchHooks{}
	hooksMu     sync.RWMutex
)

// SetSearchHooks registers custom search hooks. A nil h is ignored.
// This should be called once at application startup before any searches.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Reset restores the no-op hooks.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
}

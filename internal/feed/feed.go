// Package feed pulls governance proposals from whichever backing store the
// scraper pipeline writes into. Providers are registered by name so a
// deployment picks one purely through configuration.
package feed

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"govtrader/internal/config"
	"govtrader/internal/types"
)

// Provider is one proposal source. Connect is called once at startup and
// Disconnect once at shutdown; FetchRecent runs every scan cycle and returns
// proposals newest-first, already cleaned of markup. KnownPostIDs reports
// which posts the source currently serves, for distinguishing genuinely new
// posts from re-reads.
type Provider interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	FetchRecent(ctx context.Context, limit int) ([]types.Proposal, error)
	KnownPostIDs(ctx context.Context) (map[string]struct{}, error)
}

// Factory builds a provider from the resolved configuration.
type Factory func(cfg config.FeedConfig) (Provider, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a provider constructor available under the given name.
// Called from init functions; a duplicate name panics because it is always a
// programming error.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("feed: provider %q registered twice", name))
	}
	registry[name] = f
}

// New builds the provider named by cfg.ProviderType.
func New(cfg config.FeedConfig) (Provider, error) {
	registryMu.RLock()
	f, ok := registry[cfg.ProviderType]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("feed: unknown provider type %q (have %v)", cfg.ProviderType, Names())
	}
	return f(cfg)
}

// Names lists the registered provider names, sorted for stable messages.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

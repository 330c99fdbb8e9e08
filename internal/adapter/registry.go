package adapter

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/riskibarqy/league-stats/internal/platform/fetcher"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
)

var (
	ErrAdapterNotFound = errors.New("adapter not found")
	ErrInvalidPlatform = errors.New("platform name is required")
	ErrDuplicate       = errors.New("adapter already registered")
)

// Factory builds an adapter around the shared fetcher. Platform packages
// expose one so the process wiring can register them.
type Factory func(f *fetcher.Fetcher, logger *logging.Logger) (Adapter, error)

// Registry maps platform names to adapters. Names are case-insensitive.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

func (r *Registry) Register(platform string, a Adapter) error {
	key := normalizePlatform(platform)
	if key == "" {
		return ErrInvalidPlatform
	}
	if a == nil {
		return fmt.Errorf("register %q: adapter is nil", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[key]; exists {
		return fmt.Errorf("register %q: %w", key, ErrDuplicate)
	}
	r.adapters[key] = a
	return nil
}

// RegisterFactories builds each adapter and registers it under its Platform name.
func (r *Registry) RegisterFactories(f *fetcher.Fetcher, logger *logging.Logger, factories ...Factory) error {
	for _, factory := range factories {
		if factory == nil {
			continue
		}
		a, err := factory(f, logger)
		if err != nil {
			return fmt.Errorf("build adapter: %w", err)
		}
		if err := r.Register(a.Platform(), a); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) Lookup(platform string) (Adapter, error) {
	key := normalizePlatform(platform)

	r.mu.RLock()
	a, ok := r.adapters[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("platform %q: %w", key, ErrAdapterNotFound)
	}
	return a, nil
}

// Platforms returns the registered names sorted ascending.
func (r *Registry) Platforms() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		out = append(out, name)
	}
	r.mu.RUnlock()

	slices.Sort(out)
	return out
}

func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

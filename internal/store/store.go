// Package store resolves ISO date keys to calendar entries from a remote
// JSON table kept in a single-file local cache.
package store

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"borecal/internal/config"
	appLog "borecal/internal/log"
	"borecal/internal/model"
)

// Source tells which lookup produced an entry.
type Source string

const (
	SourceBore    Source = "bore"
	SourceCivil   Source = "civil"
	SourceDefault Source = "default"
)

// Options configures New.
type Options struct {
	URL      string
	CacheDir string
	TTL      time.Duration
	Timeout  time.Duration

	// Now is the clock used for cache age. Defaults to time.Now.
	Now func() time.Time
	// Client overrides the HTTP client (its Timeout is replaced by Timeout).
	Client *http.Client
}

// OptionsFromConfig maps the application config onto store options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		URL:      cfg.JSONURL,
		CacheDir: cfg.CacheDir,
		TTL:      cfg.CacheTTL,
		Timeout:  cfg.FetchTimeout,
	}
}

// Store tries its strategies in order until one yields a table.
type Store struct {
	strategies []Strategy
	cache      *Cache
}

// New builds the standard chain: fresh cache, remote fetch, stale cache.
func New(opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = config.DefaultCacheTTL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultFetchTimeout
	}

	cache := NewCache(opts.CacheDir, opts.Now)
	fetcher := NewFetcher(opts.URL, opts.Timeout, opts.Client)

	s := NewWithStrategies(
		FreshCache{Cache: cache, TTL: opts.TTL},
		Remote{Fetcher: fetcher, Cache: cache},
		StaleCache{Cache: cache},
	)
	s.cache = cache
	return s
}

// NewWithStrategies builds a Store over an explicit chain.
func NewWithStrategies(strategies ...Strategy) *Store {
	return &Store{strategies: strategies}
}

// Strategies returns the chain in the order it is tried.
func (s *Store) Strategies() []Strategy {
	out := make([]Strategy, len(s.strategies))
	copy(out, s.strategies)
	return out
}

// Cache returns the cache used by the standard chain, or nil.
func (s *Store) Cache() *Cache { return s.cache }

// LoadTable returns the first table any strategy produces. If every
// strategy fails, the combined error is returned.
func (s *Store) LoadTable(ctx context.Context) (model.Table, error) {
	var errs error
	for i, st := range s.strategies {
		table, err := st.Load(ctx)
		if err == nil {
			appLog.Info("calendar table loaded", "strategy", st.Name(), "entries", len(table))
			return table, nil
		}
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", st.Name(), err))

		if i+1 < len(s.strategies) {
			appLog.Info("calendar strategy failed; trying next",
				"strategy", st.Name(),
				"next", s.strategies[i+1].Name(),
				"reason", err.Error(),
			)
		} else {
			appLog.Error("calendar strategy failed; no strategies left", err, "strategy", st.Name())
		}
	}
	if errs == nil {
		errs = fmt.Errorf("%w: no strategies configured", ErrNoCache)
	}
	return nil, errs
}

// ResolveEntry never fails: it degrades from the bore key to the civil key
// to model.DefaultEntry, including when no table can be loaded.
func (s *Store) ResolveEntry(ctx context.Context, lookupISO, civilISO string) (model.Entry, Source) {
	table, err := s.LoadTable(ctx)
	if err != nil {
		appLog.Error("calendar unavailable; using default entry", err)
		return model.DefaultEntry, SourceDefault
	}
	return Lookup(table, lookupISO, civilISO)
}

// Lookup selects the entry for lookupISO, then civilISO, then the default.
func Lookup(table model.Table, lookupISO, civilISO string) (model.Entry, Source) {
	if e, ok := table.Get(lookupISO); ok {
		return e, SourceBore
	}
	appLog.Info("no entry for bore date; trying civil date", "lookup", lookupISO, "civil", civilISO)

	if e, ok := table.Get(civilISO); ok {
		return e, SourceCivil
	}
	appLog.Info("no entry for bore or civil date; using default entry", "lookup", lookupISO, "civil", civilISO)

	return model.DefaultEntry, SourceDefault
}

package store

import (
	"context"
	"fmt"
	"time"

	appLog "borecal/internal/log"
	"borecal/internal/model"
)

// Strategy is one step of the table fallback chain.
type Strategy interface {
	Name() string
	Load(ctx context.Context) (model.Table, error)
}

// FreshCache serves the cache file only while it is younger than TTL.
type FreshCache struct {
	Cache *Cache
	TTL   time.Duration
}

func (s FreshCache) Name() string { return "fresh-cache" }

func (s FreshCache) Load(_ context.Context) (model.Table, error) {
	age, err := s.Cache.Age()
	if err != nil {
		return nil, err
	}
	if age >= s.TTL {
		return nil, fmt.Errorf("%w: age %s", ErrStale, age.Round(time.Second))
	}
	return s.Cache.Read()
}

// Remote fetches the document and, when it decodes, overwrites the cache.
type Remote struct {
	Fetcher *Fetcher
	Cache   *Cache
}

func (s Remote) Name() string { return "remote" }

func (s Remote) Load(ctx context.Context) (model.Table, error) {
	body, err := s.Fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	table, err := DecodeTable(body)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.Write(body); err != nil {
			// Still serve the freshly fetched table.
			appLog.Error("calendar cache save failed", err, "path", s.Cache.Path())
		}
	}
	return table, nil
}

// StaleCache serves the cache file at any age.
type StaleCache struct {
	Cache *Cache
}

func (s StaleCache) Name() string { return "stale-cache" }

func (s StaleCache) Load(_ context.Context) (model.Table, error) {
	return s.Cache.Read()
}

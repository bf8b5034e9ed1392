package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"borecal/internal/fileutil"
	"borecal/internal/model"
)

// CacheFileName is the single cache file kept under the cache directory.
const CacheFileName = "calendar.json"

// Cache is the on-disk copy of the last successfully fetched table. The
// file holds the raw JSON body; its modification time is the fetch time.
type Cache struct {
	path string
	now  func() time.Time
}

// NewCache returns a Cache rooted at dir. now defaults to time.Now.
func NewCache(dir string, now func() time.Time) *Cache {
	if dir == "" {
		// Development fallback when no cache dir is configured.
		dir = "./cache"
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		path: filepath.Join(dir, CacheFileName),
		now:  now,
	}
}

// Path returns the cache file location.
func (c *Cache) Path() string { return c.path }

// Age reports how long ago the cache file was written.
func (c *Cache) Age() (time.Duration, error) {
	info, err := os.Stat(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, ErrNoCache
		}
		return 0, err
	}
	return c.now().Sub(info.ModTime()), nil
}

// Read parses the cache file regardless of its age.
func (c *Cache) Read() (model.Table, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoCache
		}
		return nil, err
	}
	return DecodeTable(data)
}

// Write replaces the cache file with body.
func (c *Cache) Write(body []byte) error {
	return fileutil.WriteAtomic(c.path, body, ".calendar-*.tmp")
}

// DecodeTable parses a calendar document. Anything other than a JSON
// object of entry objects is reported as ErrMalformed. Keys mapped to null
// are dropped so they read as missing.
func DecodeTable(data []byte) (model.Table, error) {
	var rows map[string]*model.Entry
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if rows == nil {
		return nil, fmt.Errorf("%w: document is null", ErrMalformed)
	}

	table := make(model.Table, len(rows))
	for key, e := range rows {
		if e == nil {
			continue
		}
		table[key] = *e
	}
	return table, nil
}

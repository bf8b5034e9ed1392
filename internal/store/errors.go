package store

import "errors"

var (
	// ErrNetwork covers transport errors, timeouts and non-200 responses.
	ErrNetwork = errors.New("calendar fetch failed")
	// ErrMalformed is returned when a payload is not a JSON object of entries.
	ErrMalformed = errors.New("malformed calendar data")
	// ErrNoCache means no cache file exists.
	ErrNoCache = errors.New("no cached calendar")
	// ErrStale means the cache file is older than the freshness window.
	ErrStale = errors.New("cached calendar is stale")
)

package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	appLog "borecal/internal/log"
)

// maxBodyBytes caps the remote document; a year of entries is well under 1 MiB.
const maxBodyBytes = 16 << 20

// Fetcher downloads the remote calendar document.
type Fetcher struct {
	client *http.Client
	url    string
}

// NewFetcher creates a Fetcher whose requests are bounded by timeout.
// A nil client gets a fresh http.Client.
func NewFetcher(rawURL string, timeout time.Duration, client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	c := *client
	if timeout > 0 {
		c.Timeout = timeout
	}
	return &Fetcher{client: &c, url: rawURL}
}

// Fetch performs a single GET and returns the body of a 200 response.
// All failures wrap ErrNetwork.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	if f.url == "" {
		return nil, fmt.Errorf("%w: source URL is empty", ErrNetwork)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	appLog.Info("calendar fetch start", "url", redactURL(f.url))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrNetwork, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformed, maxBodyBytes)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformed)
	}

	appLog.Info("calendar fetch success", "url", redactURL(f.url), "status", resp.StatusCode, "bytes", len(body))
	return body, nil
}

// redactURL reduces u to scheme and host so tokens in the path or query
// never reach the logs.
func redactURL(u string) string {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "url://...(redacted)"
	}
	return parsed.Scheme + "://" + parsed.Host + "/...(redacted)"
}

package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"borecal/internal/app"
	"borecal/internal/bore"
	"borecal/internal/config"
	"borecal/internal/store"
)

const table = `{
  "2026-10-18": {"bore": "7 Etanim 6026", "yehudim": "7 Tishrei 5787", "event": "Shabbat", "moon": "", "aviv": ""}
}`

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(table))
	}))
	t.Cleanup(remote.Close)

	cfg := config.DefaultConfig()
	cfg.JSONURL = remote.URL
	cfg.CacheDir = t.TempDir()
	cfg.Widget.Output = filepath.Join(t.TempDir(), "widget.png")
	if mutate != nil {
		mutate(&cfg)
	}

	now := time.Date(2026, time.October, 17, 18, 5, 0, 0, time.UTC)
	a := app.New(cfg, bore.FixedClock(now), store.New(store.OptionsFromConfig(cfg)), nil)
	return NewServer(a)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := get(t, s.Handler(), "/health")
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Fatalf("health = %d %q", w.Code, w.Body.String())
	}
}

func TestEntryEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	w := get(t, s.Handler(), "/api/entry")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp entryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.CivilDate != "2026-10-17" || resp.LookupDate != "2026-10-18" || !resp.Shifted {
		t.Fatalf("dates = %+v", resp)
	}
	if resp.Source != "bore" || resp.Day != "7" || resp.Month != "Etanim" || resp.Year != "6026" || resp.Event != "Shabbat" {
		t.Fatalf("entry = %+v", resp)
	}
}

func TestEntryRejectsPost(t *testing.T) {
	s := newTestServer(t, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/entry", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSnapshotIsCached(t *testing.T) {
	s := newTestServer(t, nil)
	start := time.Date(2026, time.October, 17, 18, 5, 0, 0, time.UTC)
	clock := start
	s.now = func() time.Time { return clock }

	if first := s.snapshot(t.Context()); first.Source != store.SourceBore {
		t.Fatalf("source = %s", first.Source)
	}

	clock = start.Add(10 * time.Second)
	s.snapshot(t.Context())
	if !s.snapCache.updatedAt.Equal(start) {
		t.Fatalf("snapshot recomputed inside TTL")
	}

	clock = start.Add(snapshotTTL + time.Second)
	s.snapshot(t.Context())
	if !s.snapCache.updatedAt.Equal(clock) {
		t.Fatalf("snapshot not recomputed after TTL")
	}
}

func TestWidgetHTML(t *testing.T) {
	s := newTestServer(t, nil)
	w := get(t, s.Handler(), "/widget?mode=widget")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `data-mode="widget"`) || !strings.Contains(body, "Shabbat") {
		t.Fatalf("widget html missing content:\n%s", body)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestLayoutJSON(t *testing.T) {
	s := newTestServer(t, nil)
	w := get(t, s.Handler(), "/api/layout")
	if !strings.Contains(w.Body.String(), `"role":"event"`) {
		t.Fatalf("layout json = %s", w.Body.String())
	}
}

func TestPNGMissingIs404(t *testing.T) {
	s := newTestServer(t, nil)
	if w := get(t, s.Handler(), "/widget.png"); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestICSFeed(t *testing.T) {
	s := newTestServer(t, nil)
	w := get(t, s.Handler(), "/calendar.ics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "2026-10-18@borecal") {
		t.Fatalf("feed = %s", body)
	}
}

func TestBasicAuth(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.BasicAuth = &config.BasicAuthConfig{Username: "u", Password: "p"}
	})
	h := s.Handler()

	if w := get(t, h, "/health"); w.Code != http.StatusOK {
		t.Fatalf("health behind auth: %d", w.Code)
	}
	if w := get(t, h, "/api/entry"); w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d", w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/entry", nil)
	req.SetBasicAuth("u", "p")
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("authenticated status = %d", w.Code)
	}
}

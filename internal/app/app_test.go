package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"borecal/internal/bore"
	"borecal/internal/config"
	"borecal/internal/model"
	"borecal/internal/store"
	"borecal/internal/widget"
)

const table = `{
  "2026-10-17": {"bore": "6 Etanim 6026", "yehudim": "6 Tishrei 5787"},
  "2026-10-18": {"bore": "7 Etanim 6026", "yehudim": "7 Tishrei 5787", "event": "Shabbat"},
  "2026-10-20": {"bore": "9 Etanim 6026"}
}`

type recorder struct {
	layouts []widget.Layout
	modes   []widget.Mode
	err     error
}

func (r *recorder) Render(_ context.Context, l widget.Layout, m widget.Mode) error {
	r.layouts = append(r.layouts, l)
	r.modes = append(r.modes, m)
	return r.err
}

func newApp(t *testing.T, url string, now time.Time, r widget.Renderer) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.JSONURL = url
	cfg.CacheDir = t.TempDir()
	st := store.New(store.OptionsFromConfig(cfg))
	return New(cfg, bore.FixedClock(now), st, r)
}

func serve(t *testing.T, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestRunAfterSunsetUsesNextDay(t *testing.T) {
	rec := &recorder{}
	now := time.Date(2026, time.October, 17, 19, 30, 0, 0, time.UTC)
	a := newApp(t, serve(t, table), now, rec)

	snap, err := a.Run(context.Background(), widget.ModeWidget)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if snap.Dates.CivilISO != "2026-10-17" || snap.Dates.LookupISO != "2026-10-18" {
		t.Fatalf("dates = %+v", snap.Dates)
	}
	if snap.Source != store.SourceBore || snap.Entry.Event != "Shabbat" {
		t.Fatalf("entry = %+v/%s", snap.Entry, snap.Source)
	}
	if len(rec.modes) != 1 || rec.modes[0] != widget.ModeWidget {
		t.Fatalf("render modes = %v", rec.modes)
	}
	texts := rec.layouts[0].Texts()
	if texts[0].Text != "7" || texts[len(texts)-1].Text != "Shabbat" {
		t.Fatalf("layout texts = %+v", texts)
	}
	// Gregorian label always shows the unshifted civil date.
	if texts[2].Text != "sáb, 17 oct 2026" {
		t.Fatalf("gregorian = %q", texts[2].Text)
	}
}

func TestRunBeforeSunsetUsesCivilDay(t *testing.T) {
	now := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	a := newApp(t, serve(t, table), now, nil)

	snap, err := a.Run(context.Background(), widget.ModePreview)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if snap.Entry.Bore != "6 Etanim 6026" {
		t.Fatalf("entry = %+v", snap.Entry)
	}
}

func TestRunWithoutDataRendersDefault(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	rec := &recorder{}
	a := newApp(t, url, time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC), rec)

	snap, err := a.Run(context.Background(), widget.ModeWidget)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if snap.Source != store.SourceDefault || snap.Entry != model.DefaultEntry {
		t.Fatalf("entry = %+v/%s, want default", snap.Entry, snap.Source)
	}
	if len(rec.layouts) != 1 {
		t.Fatal("default entry was not rendered")
	}
}

func TestRunPropagatesRenderError(t *testing.T) {
	rec := &recorder{err: errors.New("no surface")}
	a := newApp(t, serve(t, table), time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC), rec)
	if _, err := a.Run(context.Background(), widget.ModeWidget); err == nil {
		t.Fatal("render error swallowed")
	}
	if _, ok := a.Last(); !ok {
		t.Fatal("snapshot not kept after render failure")
	}
}

func TestCheckTableReportsGaps(t *testing.T) {
	a := newApp(t, serve(t, table), time.Now(), nil)
	missing, err := a.CheckTable(context.Background())
	if err != nil {
		t.Fatalf("CheckTable: %v", err)
	}
	if len(missing) != 1 || missing[0] != "2026-10-19" {
		t.Fatalf("missing = %v, want [2026-10-19]", missing)
	}
}

func TestScheduleRegistersRefreshAndSunset(t *testing.T) {
	a := newApp(t, serve(t, table), time.Now(), nil)
	c, err := a.Schedule(context.Background(), widget.ModeWidget, time.UTC)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if n := len(c.Entries()); n != 2 {
		t.Fatalf("entries = %d, want 2", n)
	}
}

func TestScheduleRejectsBadSpec(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RefreshCron = "every now and then"
	a := New(cfg, bore.FixedClock(time.Now()), store.NewWithStrategies(), nil)
	if _, err := a.Schedule(context.Background(), widget.ModeWidget, nil); err == nil {
		t.Fatal("bad cron spec accepted")
	}
}

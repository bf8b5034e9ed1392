package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"borecal/internal/app"
	"borecal/internal/config"
	"borecal/internal/format"
	"borecal/internal/ics"
	appLog "borecal/internal/log"
	"borecal/internal/widget"
)

// snapshotTTL bounds how often HTTP previews recompute the entry.
const snapshotTTL = 30 * time.Second

// Server exposes previews of the widget over HTTP.
type Server struct {
	app *app.App
	cfg config.Config
	mux *http.ServeMux
	now func() time.Time

	// In-memory cache for snapshot responses to avoid reloading the table
	// on every request.
	snapMu    sync.RWMutex
	snapCache *snapshotCache
}

type snapshotCache struct {
	snap      app.Snapshot
	updatedAt time.Time
}

// NewServer constructs a new Server.
func NewServer(a *app.App) *Server {
	s := &Server{
		app: a,
		cfg: a.Config(),
		mux: http.NewServeMux(),
		now: time.Now,
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg.BasicAuth == nil {
		return false
	}
	// Empty username or password disables auth.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="borecal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Serve listens on cfg.Listen until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/entry", s.handleEntry)
	s.mux.HandleFunc("/api/layout", s.handleLayout)
	s.mux.HandleFunc("/widget", s.handleWidget)
	s.mux.HandleFunc("/widget.png", s.handlePNG)
	s.mux.HandleFunc("/calendar.ics", s.handleICS)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// snapshot returns a cached snapshot while it is younger than snapshotTTL.
func (s *Server) snapshot(ctx context.Context) app.Snapshot {
	now := s.now()

	s.snapMu.RLock()
	sc := s.snapCache
	s.snapMu.RUnlock()
	if sc != nil && now.Sub(sc.updatedAt) < snapshotTTL {
		return sc.snap
	}

	snap := s.app.Snapshot(ctx)

	s.snapMu.Lock()
	s.snapCache = &snapshotCache{snap: snap, updatedAt: now}
	s.snapMu.Unlock()

	return snap
}

// entryResponse is the JSON response shape for /api/entry.
type entryResponse struct {
	CivilDate  string    `json:"civil_date"`
	LookupDate string    `json:"lookup_date"`
	Shifted    bool      `json:"shifted"`
	Source     string    `json:"source"`
	Civil      time.Time `json:"civil"`
	Bore       string    `json:"bore"`
	Day        string    `json:"day"`
	Month      string    `json:"month"`
	Year       string    `json:"year"`
	Yehudim    string    `json:"yehudim"`
	Note       string    `json:"note"`
	Moon       string    `json:"moon"`
	Aviv       string    `json:"aviv"`
	Event      string    `json:"event"`
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snap := s.snapshot(r.Context())
	bd := format.ParseBoreDate(snap.Entry.Bore)

	resp := entryResponse{
		CivilDate:  snap.Dates.CivilISO,
		LookupDate: snap.Dates.LookupISO,
		Shifted:    snap.Dates.Shifted(),
		Source:     string(snap.Source),
		Civil:      snap.Dates.Civil,
		Bore:       snap.Entry.Bore,
		Day:        bd.Day,
		Month:      bd.Month,
		Year:       bd.Year,
		Yehudim:    snap.Entry.Yehudim,
		Note:       snap.Entry.Note,
		Moon:       snap.Entry.Moon,
		Aviv:       snap.Entry.Aviv,
		Event:      snap.Entry.Event,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot(r.Context()).Layout)
}

// handleWidget serves the widget HTML. ?mode=widget renders as the
// embedded surface; anything else is a preview.
func (s *Server) handleWidget(w http.ResponseWriter, r *http.Request) {
	mode := widget.ModeFromFlag(r.URL.Query().Get("mode") == "widget")
	snap := s.snapshot(r.Context())

	page, err := widget.RenderHTML(snap.Layout, s.cfg.Widget.Width, s.cfg.Widget.Height, mode)
	if err != nil {
		appLog.Error("widget html failed", err)
		writeError(w, http.StatusInternalServerError, "failed to render widget")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// handlePNG serves the last captured widget image from disk.
func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	// http.ServeFile maps missing files to 404.
	http.ServeFile(w, r, s.cfg.Widget.Output)
}

// handleICS publishes the table as an iCalendar feed.
func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	table, err := s.app.Store().LoadTable(r.Context())
	if err != nil {
		appLog.Error("ics feed: calendar unavailable", err)
		writeError(w, http.StatusServiceUnavailable, "calendar unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := ics.Write(w, table, ics.ExportOptions{Name: "Bore", Stamp: s.now()}); err != nil {
		appLog.Error("ics feed write failed", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}

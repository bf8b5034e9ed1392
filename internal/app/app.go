// Package app wires the date resolver, calendar store and widget builder
// into a single render pass.
package app

import (
	"context"
	"sync"

	"borecal/internal/bore"
	"borecal/internal/config"
	appLog "borecal/internal/log"
	"borecal/internal/model"
	"borecal/internal/store"
	"borecal/internal/widget"
)

// Snapshot is the outcome of one pass.
type Snapshot struct {
	Dates  bore.Dates
	Entry  model.Entry
	Source store.Source
	Layout widget.Layout
}

// App holds the injected collaborators of a run.
type App struct {
	cfg      config.Config
	clock    bore.Clock
	store    *store.Store
	renderer widget.Renderer

	mu   sync.RWMutex
	last *Snapshot
}

// New constructs an App. cfg is copied and never modified afterwards.
func New(cfg config.Config, clock bore.Clock, st *store.Store, r widget.Renderer) *App {
	return &App{
		cfg:      cfg,
		clock:    clock,
		store:    st,
		renderer: r,
	}
}

// Config returns the configuration the App was built with.
func (a *App) Config() config.Config { return a.cfg }

// Store returns the calendar store.
func (a *App) Store() *store.Store { return a.store }

// Snapshot computes dates, resolves the entry and builds the layout without
// rendering. It never fails: data problems degrade to the default entry.
func (a *App) Snapshot(ctx context.Context) Snapshot {
	dates := bore.Resolve(a.clock, a.cfg.SunsetHour)
	entry, src := a.store.ResolveEntry(ctx, dates.LookupISO, dates.CivilISO)
	layout := widget.Build(entry, dates.Civil, widget.ThemeFromConfig(a.cfg), a.cfg.Locale)

	snap := Snapshot{Dates: dates, Entry: entry, Source: src, Layout: layout}

	a.mu.Lock()
	a.last = &snap
	a.mu.Unlock()

	appLog.Info("entry selected",
		"source", string(src),
		"bore", entry.Bore,
		"event", entry.Event,
	)
	return snap
}

// Last returns the most recent snapshot, if any.
func (a *App) Last() (Snapshot, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.last == nil {
		return Snapshot{}, false
	}
	return *a.last, true
}

// Run performs one full pass and hands the layout to the renderer in the
// mode supplied by the host.
func (a *App) Run(ctx context.Context, mode widget.Mode) (Snapshot, error) {
	snap := a.Snapshot(ctx)
	if a.renderer == nil {
		return snap, nil
	}
	if err := a.renderer.Render(ctx, snap.Layout, mode); err != nil {
		appLog.Error("widget render failed", err, "mode", mode.String())
		return snap, err
	}
	return snap, nil
}

// CheckTable loads the table through the normal chain and returns the
// days missing between its first and last key.
func (a *App) CheckTable(ctx context.Context) ([]string, error) {
	table, err := a.store.LoadTable(ctx)
	if err != nil {
		return nil, err
	}
	first, last, ok := store.Span(table)
	if !ok {
		appLog.Info("calendar table has no dated entries")
		return nil, nil
	}
	missing, err := store.Coverage(table, first, last)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		appLog.Info("calendar table has gaps",
			"from", bore.ToISODate(first),
			"to", bore.ToISODate(last),
			"missing", len(missing),
			"first_missing", missing[0],
		)
	} else {
		appLog.Info("calendar table is contiguous", "from", bore.ToISODate(first), "to", bore.ToISODate(last))
	}
	return missing, nil
}

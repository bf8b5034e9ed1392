package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	appLog "borecal/internal/log"
	"borecal/internal/widget"
)

// Schedule registers periodic re-renders on a cron scheduler: the configured
// refresh spec plus the top of the sunset hour, when the bore day turns.
// The caller starts and stops the returned scheduler.
func (a *App) Schedule(ctx context.Context, mode widget.Mode, loc *time.Location) (*cron.Cron, error) {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))

	job := func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := a.Run(ctx, mode); err != nil {
			appLog.Error("scheduled render failed", err)
		}
	}

	specs := []string{a.cfg.RefreshCron, fmt.Sprintf("0 %d * * *", a.cfg.SunsetHour)}
	for _, spec := range specs {
		if _, err := c.AddFunc(spec, job); err != nil {
			return nil, fmt.Errorf("schedule %q: %w", spec, err)
		}
	}

	appLog.Info("render schedule registered", "refresh", a.cfg.RefreshCron, "sunset_hour", a.cfg.SunsetHour, "timezone", loc.String())
	return c, nil
}

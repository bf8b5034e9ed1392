package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"borecal/internal/app"
	"borecal/internal/bore"
	"borecal/internal/capture"
	"borecal/internal/config"
	"borecal/internal/ics"
	appLog "borecal/internal/log"
	"borecal/internal/store"
	"borecal/internal/web"
	"borecal/internal/widget"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	widget     bool
	out        string
	serve      bool
	listen     string
	exportICS  string
	check      bool
	dumpConfig string
	debug      bool
}

func main() {
	flags := parseFlags()
	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}
	defer appLog.Sync()

	appLog.Info("borecal starting", "version", "0.1.0")

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI values override the file; the result is frozen from here on.
	if flags.listen != "" {
		cfg.Listen = flags.listen
	}
	if flags.out != "" {
		cfg.Widget.Output = flags.out
	}

	if flags.dumpConfig != "" {
		if err := config.Save(flags.dumpConfig, cfg); err != nil {
			appLog.Error("failed to write config", err, "path", flags.dumpConfig)
			os.Exit(1)
		}
		appLog.Info("config written", "path", flags.dumpConfig)
		return
	}

	loc, err := cfg.Location()
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", cfg.Timezone)
	}

	mode := widget.ModeFromFlag(flags.widget)

	appLog.Info("effective config",
		"json_url", cfg.JSONURL,
		"sunset_hour", cfg.SunsetHour,
		"locale", cfg.Locale,
		"timezone", loc.String(),
		"cache_dir", cfg.CacheDir,
		"cache_ttl", cfg.CacheTTL,
		"mode", mode.String(),
		"serve", flags.serve,
	)

	st := store.New(store.OptionsFromConfig(cfg))
	renderer := widget.ByMode{
		Widget: capture.Renderer{
			Output: cfg.Widget.Output,
			Width:  cfg.Widget.Width,
			Height: cfg.Widget.Height,
		},
		Preview: widget.TerminalRenderer{Out: os.Stdout, Width: cfg.Widget.Width},
	}
	a := app.New(cfg, bore.SystemClock{Location: loc}, st, renderer)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if flags.exportICS != "" {
		if err := exportICS(ctx, st, flags.exportICS); err != nil {
			appLog.Error("ics export failed", err, "path", flags.exportICS)
			os.Exit(1)
		}
		return
	}

	if flags.check {
		if _, err := a.CheckTable(ctx); err != nil {
			appLog.Error("calendar check failed", err)
			os.Exit(1)
		}
		return
	}

	if _, err := a.Run(ctx, mode); err != nil {
		if !flags.serve {
			os.Exit(1)
		}
	}

	if !flags.serve {
		return
	}

	sched, err := a.Schedule(ctx, mode, loc)
	if err != nil {
		appLog.Error("failed to schedule renders", err)
		os.Exit(1)
	}
	sched.Start()
	defer func() {
		<-sched.Stop().Done()
	}()

	if err := web.NewServer(a).Serve(ctx); err != nil {
		appLog.Error("http server failed", err)
		os.Exit(1)
	}

	// Give in-flight renders a moment to log before exit.
	time.Sleep(100 * time.Millisecond)
	appLog.Info("borecal exiting")
}

func exportICS(ctx context.Context, st *store.Store, path string) error {
	table, err := st.LoadTable(ctx)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ics.Write(f, table, ics.ExportOptions{Name: "Bore"}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	appLog.Info("ics exported", "path", path, "entries", len(table))
	return nil
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "", "Optional YAML file overriding built-in settings")
	flag.BoolVar(&cfg.widget, "widget", false, "Host runs us as an embedded widget (capture PNG) instead of a preview")
	flag.StringVar(&cfg.out, "out", "", "Widget PNG path (overrides config)")
	flag.BoolVar(&cfg.serve, "serve", false, "Keep running: serve HTTP previews and re-render on schedule")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.exportICS, "export-ics", "", "Write the calendar table as an iCalendar file and exit")
	flag.BoolVar(&cfg.check, "check", false, "Load the table and report missing days, then exit")
	flag.StringVar(&cfg.dumpConfig, "dump-config", "", "Write the effective config as YAML and exit")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"borecal/internal/fileutil"
)

// NOTE: every field has a compiled-in default. The YAML file is optional
// and only overrides what it names; Load never writes to disk.

// Colors is the widget palette as "#rrggbb" strings.
type Colors struct {
	Background string `yaml:"background" json:"background"`
	Accent     string `yaml:"accent" json:"accent"`
	Black      string `yaml:"black" json:"black"`
	Gray       string `yaml:"gray" json:"gray"`
	LightGray  string `yaml:"light_gray" json:"light_gray"`
	DarkGray   string `yaml:"dark_gray" json:"dark_gray"`
}

// Fonts holds point sizes per text role.
type Fonts struct {
	Day       int `yaml:"day" json:"day"`
	MonthYear int `yaml:"month_year" json:"month_year"`
	Body      int `yaml:"body" json:"body"`
	Event     int `yaml:"event" json:"event"`
}

// Spacing holds spacer heights and the widget padding.
type Spacing struct {
	Small   int `yaml:"small" json:"small"`
	Medium  int `yaml:"medium" json:"medium"`
	Padding int `yaml:"padding" json:"padding"`
}

// WidgetConfig describes the fixed-size embed surface.
type WidgetConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
	// Output is where widget mode writes the captured PNG.
	Output string `yaml:"output" json:"output"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the preview server.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration. It is built once at
// startup and handed to each component by value.
type Config struct {
	// JSONURL is the remote calendar table.
	JSONURL string `yaml:"json_url" json:"json_url"`

	// SunsetHour is the local hour at which the bore day advances.
	SunsetHour int `yaml:"sunset_hour" json:"sunset_hour"`

	// Locale is a BCP 47 tag used for the Gregorian label (e.g. "es-CO").
	Locale string `yaml:"locale" json:"locale"`

	// Timezone is the IANA zone for the civil clock. Empty means time.Local.
	Timezone string `yaml:"timezone" json:"timezone"`

	// CacheDir holds the single cached table file.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// CacheTTL is how long a cached table is trusted without refetching.
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl"`

	// FetchTimeout bounds the remote request.
	FetchTimeout time.Duration `yaml:"fetch_timeout" json:"fetch_timeout"`

	Colors  Colors       `yaml:"colors" json:"colors"`
	Fonts   Fonts        `yaml:"fonts" json:"fonts"`
	Spacing Spacing      `yaml:"spacing" json:"spacing"`
	Widget  WidgetConfig `yaml:"widget" json:"widget"`

	// Listen is the HTTP address used in serve mode.
	Listen string `yaml:"listen" json:"listen"`

	// RefreshCron is the serve-mode re-render schedule. The sunset hour is
	// always scheduled in addition.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// BasicAuth, if non-nil, protects every endpoint except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

const (
	DefaultJSONURL      = "https://raw.githubusercontent.com/yonice7/bore/main/6025.json"
	DefaultSunsetHour   = 18
	DefaultLocale       = "es-CO"
	DefaultTimezone     = "America/Bogota"
	DefaultCacheTTL     = 24 * time.Hour
	DefaultFetchTimeout = 15 * time.Second
	DefaultListen       = "127.0.0.1:8080"
	DefaultRefreshCron  = "0 * * * *"
)

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() Config {
	return Config{
		JSONURL:      DefaultJSONURL,
		SunsetHour:   DefaultSunsetHour,
		Locale:       DefaultLocale,
		Timezone:     DefaultTimezone,
		CacheDir:     defaultCacheDir(),
		CacheTTL:     DefaultCacheTTL,
		FetchTimeout: DefaultFetchTimeout,
		Colors:       defaultColors(),
		Fonts:        defaultFonts(),
		Spacing:      defaultSpacing(),
		Widget:       defaultWidget(),
		Listen:       DefaultListen,
		RefreshCron:  DefaultRefreshCron,
	}
}

func defaultColors() Colors {
	return Colors{
		Background: "#fefefe",
		Accent:     "#d9534f",
		Black:      "#000000",
		Gray:       "#808080",
		LightGray:  "#aaaaaa",
		DarkGray:   "#555555",
	}
}

func defaultFonts() Fonts {
	return Fonts{Day: 48, MonthYear: 16, Body: 14, Event: 14}
}

func defaultSpacing() Spacing {
	return Spacing{Small: 4, Medium: 8, Padding: 12}
}

func defaultWidget() WidgetConfig {
	return WidgetConfig{Width: 338, Height: 158, Output: "widget.png"}
}

// defaultCacheDir resolves an app-private directory under the user cache
// dir, falling back to a relative path for development runs.
func defaultCacheDir() string {
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "borecal")
	}
	return "./cache"
}

// Normalize fills in missing/zero values with defaults so that partially
// filled YAML files behave correctly.
func (c *Config) Normalize() {
	if c.JSONURL == "" {
		c.JSONURL = DefaultJSONURL
	}
	// Hour-of-day only; anything else falls back rather than disabling the shift.
	if c.SunsetHour < 0 || c.SunsetHour > 23 {
		c.SunsetHour = DefaultSunsetHour
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.CacheDir == "" {
		c.CacheDir = defaultCacheDir()
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}

	dc := defaultColors()
	fillString(&c.Colors.Background, dc.Background)
	fillString(&c.Colors.Accent, dc.Accent)
	fillString(&c.Colors.Black, dc.Black)
	fillString(&c.Colors.Gray, dc.Gray)
	fillString(&c.Colors.LightGray, dc.LightGray)
	fillString(&c.Colors.DarkGray, dc.DarkGray)

	df := defaultFonts()
	fillInt(&c.Fonts.Day, df.Day)
	fillInt(&c.Fonts.MonthYear, df.MonthYear)
	fillInt(&c.Fonts.Body, df.Body)
	fillInt(&c.Fonts.Event, df.Event)

	ds := defaultSpacing()
	fillInt(&c.Spacing.Small, ds.Small)
	fillInt(&c.Spacing.Medium, ds.Medium)
	fillInt(&c.Spacing.Padding, ds.Padding)

	dw := defaultWidget()
	fillInt(&c.Widget.Width, dw.Width)
	fillInt(&c.Widget.Height, dw.Height)
	fillString(&c.Widget.Output, dw.Output)

	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.RefreshCron == "" {
		c.RefreshCron = DefaultRefreshCron
	}
}

func fillString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func fillInt(dst *int, def int) {
	if *dst <= 0 {
		*dst = def
	}
}

// Load returns the compiled-in configuration, overridden by the YAML file
// at path when one exists.
//
// Behavior:
//   - empty path or missing file: defaults
//   - existing file: defaults overlaid with the file, then normalized
//   - unreadable or invalid file: error
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}

	// Unmarshal over the defaults so absent keys keep compiled-in values.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Normalize()

	return cfg, nil
}

// Location resolves Timezone, falling back to time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local, err
	}
	return loc, nil
}

// Save writes cfg to path as YAML.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}

	cfg.Normalize()

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, ".borecal-config-*.tmp")
}

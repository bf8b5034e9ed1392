package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SunsetHour != 18 || cfg.Locale != "es-CO" || cfg.CacheTTL != 24*time.Hour || cfg.FetchTimeout != 15*time.Second {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.JSONURL != DefaultJSONURL {
		t.Fatalf("JSONURL = %s", cfg.JSONURL)
	}
}

func TestLoadMissingFileReturnsDefaultsWithoutWriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "borecal.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SunsetHour != DefaultSunsetHour {
		t.Fatalf("SunsetHour = %d", cfg.SunsetHour)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Load created %s", path)
	}
}

func TestLoadOverridesOnlyNamedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "borecal.yaml")
	content := `sunset_hour: 19
locale: en-US
cache_ttl: 12h
colors:
  accent: "#ff0000"
fonts:
  day: 60
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SunsetHour != 19 || cfg.Locale != "en-US" || cfg.CacheTTL != 12*time.Hour {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Colors.Accent != "#ff0000" || cfg.Colors.Background != "#fefefe" {
		t.Fatalf("colors = %+v", cfg.Colors)
	}
	if cfg.Fonts.Day != 60 || cfg.Fonts.Body != 14 {
		t.Fatalf("fonts = %+v", cfg.Fonts)
	}
	if cfg.FetchTimeout != DefaultFetchTimeout {
		t.Fatalf("FetchTimeout = %s", cfg.FetchTimeout)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "borecal.yaml")
	if err := os.WriteFile(path, []byte("sunset_hour: [nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("invalid YAML accepted")
	}
}

func TestNormalizeFixesOutOfRangeValues(t *testing.T) {
	cfg := Config{SunsetHour: 30, CacheTTL: -time.Hour}
	cfg.Normalize()
	if cfg.SunsetHour != DefaultSunsetHour || cfg.CacheTTL != DefaultCacheTTL {
		t.Fatalf("Normalize = %+v", cfg)
	}
	if cfg.Spacing.Small != 4 || cfg.Spacing.Medium != 8 || cfg.Widget.Output == "" {
		t.Fatalf("Normalize did not fill layout defaults: %+v", cfg)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "borecal.yaml")
	in := DefaultConfig()
	in.SunsetHour = 17
	in.Timezone = "UTC"

	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o", perm)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.SunsetHour != 17 || out.Timezone != "UTC" || out.CacheTTL != in.CacheTTL {
		t.Fatalf("round trip = %+v", out)
	}
}

func TestSaveRequiresPath(t *testing.T) {
	if err := Save("", DefaultConfig()); err == nil {
		t.Fatal("empty path accepted")
	}
}

func TestLocation(t *testing.T) {
	loc, err := Config{}.Location()
	if err != nil || loc != time.Local {
		t.Fatalf("empty timezone = %v, %v", loc, err)
	}
	if _, err := (Config{Timezone: "Nowhere/Invalid"}).Location(); err == nil {
		t.Fatal("invalid timezone accepted")
	}
}

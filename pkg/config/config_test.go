package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	p := cfg.Playback
	if p.TickInterval() != time.Second || p.Animation() != time.Second ||
		p.SeekWindow() != 200*time.Millisecond || p.RegionMeters != 500 {
		t.Errorf("unexpected defaults: %+v", p)
	}
	if p.FrameInterval() != time.Second/60 {
		t.Errorf("FrameInterval() = %v, want 1/60s", p.FrameInterval())
	}
	if cfg.Level() != slog.LevelInfo || cfg.Mode != ModeMCP {
		t.Errorf("level %v mode %q, want info mcp", cfg.Level(), cfg.Mode)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name: "empty keeps defaults",
			yaml: "",
			check: func(t *testing.T, cfg Config) {
				if cfg.Playback.TickIntervalMS != 1000 {
					t.Errorf("TickIntervalMS = %d, want 1000", cfg.Playback.TickIntervalMS)
				}
			},
		},
		{
			name: "override",
			yaml: `
data: trips/jakarta.gpx
mode: headless
listen: localhost:8080
autoplay: true
timeZone: Asia/Jakarta
logLevel: debug
playback:
  tickIntervalMS: 500
  animationMS: 0
`,
			check: func(t *testing.T, cfg Config) {
				if cfg.Data != "trips/jakarta.gpx" || cfg.Mode != ModeHeadless || !cfg.Autoplay {
					t.Errorf("top-level fields not applied: %+v", cfg)
				}
				if cfg.Playback.TickInterval() != 500*time.Millisecond || cfg.Playback.Animation() != 0 {
					t.Errorf("playback = %+v", cfg.Playback)
				}
				if cfg.Playback.SeekWindowMS != 200 || cfg.Playback.FrameRate != 60 {
					t.Errorf("unset playback fields lost their defaults: %+v", cfg.Playback)
				}
				if cfg.Level() != slog.LevelDebug {
					t.Errorf("Level() = %v, want debug", cfg.Level())
				}
				loc, err := cfg.Location()
				if err != nil || loc.String() != "Asia/Jakarta" {
					t.Errorf("Location() = %v, %v", loc, err)
				}
			},
		},
		{name: "bad mode", yaml: "mode: gui", wantErr: true},
		{name: "bad log level", yaml: "logLevel: loud", wantErr: true},
		{name: "zero tick", yaml: "playback:\n  tickIntervalMS: 0", wantErr: true},
		{name: "negative animation", yaml: "playback:\n  animationMS: -1", wantErr: true},
		{name: "frame rate too high", yaml: "playback:\n  frameRate: 1000", wantErr: true},
		{name: "bad listen address", yaml: "listen: not an address", wantErr: true},
		{name: "unknown zone", yaml: "timeZone: Mars/Olympus_Mons", wantErr: true},
		{name: "malformed yaml", yaml: "playback: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestValidationErrors(t *testing.T) {
	_, err := Parse([]byte("mode: gui"))
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error %v is not a validator.ValidationErrors", err)
	}
	if verrs[0].Field() != "Mode" || verrs[0].Tag() != "oneof" {
		t.Errorf("first validation error = %s/%s, want Mode/oneof", verrs[0].Field(), verrs[0].Tag())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tripreplay.yml")
	if err := os.WriteFile(path, []byte("autoplay: true\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Autoplay {
		t.Error("Autoplay not loaded")
	}

	if _, err := Load(filepath.Join(dir, "missing.yml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("mode: gui\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "bad.yml") {
		t.Errorf("Load(bad) error = %v, want it to name the file", err)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ConfirmQuit || !cfg.Cache.Enabled || cfg.Fetch.Timeout.Duration != 15*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if strings.HasPrefix(cfg.Download.Dir, "~") {
		t.Errorf("download dir not expanded: %s", cfg.Download.Dir)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
confirm_quit = true

[player]
video = ["vlc", "--play-and-exit", "{url}"]

[cache]
ttl = "1h"

[fetch]
timeout = "5s"

[keys.browsing]
"x" = "quit"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.ConfirmQuit {
		t.Error("confirm_quit not read")
	}
	if strings.Join(cfg.Player.Video, " ") != "vlc --play-and-exit {url}" {
		t.Errorf("player.video = %v", cfg.Player.Video)
	}
	if cfg.Player.Stream[0] != "mpv" {
		t.Errorf("player.stream lost its default: %v", cfg.Player.Stream)
	}
	if cfg.Cache.TTL.Duration != time.Hour || !cfg.Cache.Enabled || cfg.Cache.MemoryEntries != 64 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Fetch.Timeout.Duration != 5*time.Second {
		t.Errorf("fetch.timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Keys["browsing"]["x"] != "quit" {
		t.Errorf("keys = %v", cfg.Keys)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `confirm_quit = `},
		{"bad duration", "[cache]\nttl = \"soon\""},
		{"unknown key", `autoplay = true`},
		{"empty player", "[player]\nvideo = []"},
		{"zero timeout", "[fetch]\ntimeout = \"0s\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/Videos")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "Videos") {
		t.Errorf("got %s", got)
	}
	if got, _ := ExpandHome("/abs/~x"); got != "/abs/~x" {
		t.Errorf("absolute path changed: %s", got)
	}
}

// Package config loads ytui's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/user/ytui/keymap"
)

// Duration is a time.Duration written as a string such as "10m" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Player holds the command templates used to start playback. "{url}" in
// any argument is replaced with the target URL.
type Player struct {
	Video  []string `toml:"video"`
	Stream []string `toml:"stream"`
}

// Cache configures the page cache.
type Cache struct {
	Enabled       bool     `toml:"enabled"`
	TTL           Duration `toml:"ttl"`
	MemoryEntries int      `toml:"memory_entries"`
	// Path of the SQLite database; empty selects the default location.
	Path string `toml:"path"`
}

// Fetch configures backend requests.
type Fetch struct {
	Timeout Duration `toml:"timeout"`
}

// Download configures yt-dlp downloads.
type Download struct {
	Dir string `toml:"dir"`
}

// Config is the whole configuration file.
type Config struct {
	ConfirmQuit bool             `toml:"confirm_quit"`
	Player      Player           `toml:"player"`
	Cache       Cache            `toml:"cache"`
	Fetch       Fetch            `toml:"fetch"`
	Download    Download         `toml:"download"`
	Keys        keymap.Overrides `toml:"keys"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Player: Player{
			Video:  []string{"mpv", "{url}"},
			Stream: []string{"mpv", "{url}"},
		},
		Cache: Cache{
			Enabled:       true,
			TTL:           Duration{10 * time.Minute},
			MemoryEntries: 64,
		},
		Fetch: Fetch{
			Timeout: Duration{15 * time.Second},
		},
		Download: Download{
			Dir: "~/Videos/ytui",
		},
	}
}

// DefaultPath returns ~/.config/ytui/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ytui", "config.toml"), nil
}

// Load reads the file at path on top of the defaults. An empty path selects
// DefaultPath. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, cfg.normalize()
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("loading config from %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// normalize validates the config and expands "~" in paths.
func (c *Config) normalize() error {
	if len(c.Player.Video) == 0 || c.Player.Video[0] == "" {
		return errors.New("player.video must name a program")
	}
	if len(c.Player.Stream) == 0 {
		c.Player.Stream = c.Player.Video
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New("cache.ttl must not be negative")
	}
	if c.Cache.MemoryEntries < 0 {
		return errors.New("cache.memory_entries must not be negative")
	}
	if c.Fetch.Timeout.Duration <= 0 {
		return errors.New("fetch.timeout must be positive")
	}

	var err error
	if c.Download.Dir, err = ExpandHome(c.Download.Dir); err != nil {
		return err
	}
	if c.Cache.Path, err = ExpandHome(c.Cache.Path); err != nil {
		return err
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

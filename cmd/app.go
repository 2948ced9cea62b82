package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/user/ytui/config"
	"github.com/user/ytui/db"
	"github.com/user/ytui/fetch"
	"github.com/user/ytui/keymap"
	"github.com/user/ytui/player"
	"github.com/user/ytui/youtube"
)

// pruneAfter is how old a stored page must be before startup removes it.
const pruneAfter = 7 * 24 * time.Hour

// app holds everything a command needs, built from the config file.
type app struct {
	cfg     *config.Config
	db      *sql.DB
	backend fetch.Backend
	cached  *fetch.Cached
	keys    *keymap.Registry
	spawner *player.Spawner
}

func loadConfigOnly() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadApp reads the config, opens the database and builds the backend,
// key registry and player spawner.
func loadApp() (*app, error) {
	cfg, err := loadConfigOnly()
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a := &app{cfg: cfg, db: database}
	a.backend = youtube.New(nil, "")

	if cfg.Cache.Enabled && !noCache {
		if n, err := db.PrunePages(database, time.Now().Add(-pruneAfter)); err != nil {
			log.Printf("prune cache: %v", err)
		} else if n > 0 {
			log.Printf("pruned %d cached pages", n)
		}

		a.cached, err = fetch.NewCached(a.backend, fetch.CacheOptions{
			MemoryEntries: cfg.Cache.MemoryEntries,
			TTL:           cfg.Cache.TTL.Duration,
			Store:         db.PageCache{DB: database},
		})
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
		a.backend = a.cached
	}

	a.keys = keymap.NewDefaultRegistry()
	if err := keymap.Apply(a.keys, cfg.Keys); err != nil {
		database.Close()
		return nil, fmt.Errorf("invalid key bindings: %w", err)
	}

	a.spawner = player.NewSpawner(cfg.Player.Video, cfg.Player.Stream, player.DefaultSocketPath())
	return a, nil
}

func (a *app) history() db.History {
	return db.History{DB: a.db}
}

func (a *app) Close() error {
	return a.db.Close()
}

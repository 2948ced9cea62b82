package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetPage returns the encoded batch stored under key. ok is false when the
// key is not cached.
func GetPage(ctx context.Context, db *sql.DB, key string) (data []byte, fetchedAt time.Time, ok bool, err error) {
	var at int64
	err = db.QueryRowContext(ctx, SelectPageSQL, key).Scan(&data, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("select page: %w", err)
	}
	return data, time.Unix(at, 0), true, nil
}

// PutPage stores or replaces the encoded batch for key.
func PutPage(ctx context.Context, db *sql.DB, key string, data []byte, fetchedAt time.Time) error {
	if _, err := db.ExecContext(ctx, UpsertPageSQL, key, data, fetchedAt.Unix()); err != nil {
		return fmt.Errorf("upsert page: %w", err)
	}
	return nil
}

// ClearPages deletes every cached page and returns how many were removed.
func ClearPages(db *sql.DB) (int64, error) {
	result, err := db.Exec(DeletePagesSQL)
	if err != nil {
		return 0, fmt.Errorf("delete pages: %w", err)
	}
	return result.RowsAffected()
}

// PrunePages deletes pages fetched before cutoff.
func PrunePages(db *sql.DB, cutoff time.Time) (int64, error) {
	result, err := db.Exec(DeletePagesBeforeSQL, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune pages: %w", err)
	}
	return result.RowsAffected()
}

// GetPageStats summarises the page cache.
func GetPageStats(db *sql.DB) (PageStats, error) {
	var (
		s              PageStats
		oldest, newest int64
	)
	if err := db.QueryRow(SelectPageStatsSQL).Scan(&s.Entries, &s.Bytes, &oldest, &newest); err != nil {
		return PageStats{}, fmt.Errorf("select page stats: %w", err)
	}
	if s.Entries > 0 {
		s.Oldest = time.Unix(oldest, 0)
		s.Newest = time.Unix(newest, 0)
	}
	return s, nil
}

// InsertPlay records a playback and returns its row ID.
func InsertPlay(db *sql.DB, p Play) (int64, error) {
	at := p.PlayedAt
	if at.IsZero() {
		at = time.Now()
	}
	result, err := db.Exec(InsertPlaySQL, p.VideoID, p.Title, p.Channel, p.Start, p.Live, at.Unix())
	if err != nil {
		return 0, fmt.Errorf("insert play: %w", err)
	}
	return result.LastInsertId()
}

// RecentPlays returns up to limit plays, newest first.
func RecentPlays(db *sql.DB, limit int) ([]Play, error) {
	rows, err := db.Query(SelectRecentPlaysSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var (
			p  Play
			at int64
		)
		if err := rows.Scan(&p.ID, &p.VideoID, &p.Title, &p.Channel, &p.Start, &p.Live, &at); err != nil {
			return nil, fmt.Errorf("scan play: %w", err)
		}
		p.PlayedAt = time.Unix(at, 0)
		plays = append(plays, p)
	}
	return plays, rows.Err()
}

// PageCache adapts the pages table to the fetch cache's Store interface.
type PageCache struct {
	DB *sql.DB
}

func (c PageCache) Get(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	return GetPage(ctx, c.DB, key)
}

func (c PageCache) Put(ctx context.Context, key string, data []byte, fetchedAt time.Time) error {
	return PutPage(ctx, c.DB, key, data, fetchedAt)
}

// History records plays started from the browser.
type History struct {
	DB *sql.DB
}

func (h History) RecordPlay(p Play) error {
	_, err := InsertPlay(h.DB, p)
	return err
}

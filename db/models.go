package db

import "time"

// Play is a row in the plays table.
type Play struct {
	ID       int64
	VideoID  string
	Title    string
	Channel  string
	Start    int // seconds into the video playback began at
	Live     bool
	PlayedAt time.Time
}

// PageStats summarises the pages table.
type PageStats struct {
	Entries int
	Bytes   int64
	Oldest  time.Time
	Newest  time.Time
}

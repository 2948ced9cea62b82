package db

import (
	_ "embed"
)

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Page cache queries

//go:embed sql/select_page.sql
var SelectPageSQL string

//go:embed sql/upsert_page.sql
var UpsertPageSQL string

//go:embed sql/delete_pages.sql
var DeletePagesSQL string

//go:embed sql/delete_pages_before.sql
var DeletePagesBeforeSQL string

//go:embed sql/select_page_stats.sql
var SelectPageStatsSQL string

// Play history queries

//go:embed sql/insert_play.sql
var InsertPlaySQL string

//go:embed sql/select_recent_plays.sql
var SelectRecentPlaysSQL string

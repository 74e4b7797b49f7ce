package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
  create table if not exists session_events (
    event_id   integer primary key autoincrement,
    session_id text    not null,
    kind       text    not null,
    song_id    text    not null default '',
    user_id    text    not null default '',
    detail     text    not null default '',
    created_at integer not null
  );
  create index if not exists session_events_session_idx
    on session_events (session_id, event_id);`

type SQLiteRepository struct {
	sqlJournal
}

func NewSQLiteRepository(filePath string) (*SQLiteRepository, error) {
	db, err := sqlx.Connect("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", filePath, err)
	}
	// sqlite serialises writers anyway; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &SQLiteRepository{sqlJournal{db: db}}, nil
}

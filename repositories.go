package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/gommon/log"
)

type EventKind string

const (
	EventSessionCreated EventKind = "session_created"
	EventSongAdded      EventKind = "song_added"
	EventSongRemoved    EventKind = "song_removed"
	EventVoteCast       EventKind = "vote_cast"
)

// Event is one entry of a session's activity journal. The journal is an
// audit trail only; session state is never rebuilt from it.
type Event struct {
	EventID   int64     `json:"event_id" db:"event_id"`
	SessionID string    `json:"session_id" db:"session_id"`
	Kind      EventKind `json:"kind" db:"kind"`
	SongID    string    `json:"song_id" db:"song_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Detail    string    `json:"detail" db:"detail"`
	CreatedAt int64     `json:"created_at" db:"created_at"` // unix millis
}

type JournalRepository interface {
	Record(ctx context.Context, e Event) error
	// History returns the newest events of a session first.
	History(ctx context.Context, sessionID string, limit int) ([]Event, error)
	Close() error
}

// sqlJournal holds the queries shared by the SQLite and Postgres journals.
// Statements are written with ? and rebound for the driver.
type sqlJournal struct {
	db *sqlx.DB
}

func (r *sqlJournal) Record(ctx context.Context, e Event) error {
	query := r.db.Rebind(`
	  insert into session_events (session_id, kind, song_id, user_id, detail, created_at)
	  values (?, ?, ?, ?, ?, ?);`)

	_, err := r.db.ExecContext(ctx, query,
		e.SessionID, string(e.Kind), e.SongID, e.UserID, e.Detail, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("record %s event: %w", e.Kind, err)
	}
	return nil
}

func (r *sqlJournal) History(ctx context.Context, sessionID string, limit int) ([]Event, error) {
	query := r.db.Rebind(`
	  select event_id, session_id, kind, song_id, user_id, detail, created_at
	  from session_events
	  where session_id = ?
	  order by event_id desc
	  limit ?;`)

	events := make([]Event, 0)
	if err := r.db.SelectContext(ctx, &events, query, sessionID, limit); err != nil {
		return nil, fmt.Errorf("load history of %s: %w", sessionID, err)
	}
	return events, nil
}

func (r *sqlJournal) Close() error {
	return r.db.Close()
}

// OpenJournal picks the journal implementation from the DB_URL scheme:
// sqlite://path, postgres://... or nothing for an in-memory journal.
func OpenJournal(dbURL string, logger *log.Logger) (JournalRepository, error) {
	if strings.TrimSpace(dbURL) == "" {
		logger.Info("DB_URL not set, keeping the activity journal in memory")
		return NewMemoryRepository(defaultMemoryJournalSize), nil
	}

	u, err := url.Parse(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB_URL: %w", err)
	}

	switch u.Scheme {
	case "sqlite", "sqlite3":
		path := u.Host + u.Path
		if path == "" {
			path = "db.sqlite3"
		}
		logger.Infof("activity journal on sqlite file %s", path)
		return NewSQLiteRepository(path)

	case "postgres", "postgresql":
		logger.Infof("activity journal on postgres host %s", u.Hostname())
		return NewPostgresRepository(dbURL)
	}
	return nil, fmt.Errorf("unsupported DB_URL scheme %q", u.Scheme)
}

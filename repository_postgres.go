package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const postgresSchema = `
  create table if not exists session_events (
    event_id   bigserial primary key,
    session_id text   not null,
    kind       text   not null,
    song_id    text   not null default '',
    user_id    text   not null default '',
    detail     text   not null default '',
    created_at bigint not null
  );
  create index if not exists session_events_session_idx
    on session_events (session_id, event_id);`

type PostgresRepository struct {
	sqlJournal
}

func NewPostgresRepository(dbURL string) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	// make sure the required tables exist
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create postgres schema: %w", err)
	}
	return &PostgresRepository{sqlJournal{db: db}}, nil
}

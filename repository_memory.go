package main

import (
	"context"
	"sync"
)

const defaultMemoryJournalSize = 500

// MemoryRepository keeps the newest events of every session in process memory.
type MemoryRepository struct {
	mu      sync.Mutex
	events  map[string][]Event
	perSess int
	seq     int64
}

func NewMemoryRepository(perSession int) *MemoryRepository {
	if perSession <= 0 {
		perSession = defaultMemoryJournalSize
	}
	return &MemoryRepository{
		events:  make(map[string][]Event),
		perSess: perSession,
	}
}

var (
	_ JournalRepository = (*MemoryRepository)(nil)
	_ JournalRepository = (*SQLiteRepository)(nil)
	_ JournalRepository = (*PostgresRepository)(nil)
)

func (r *MemoryRepository) Record(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	e.EventID = r.seq
	list := append(r.events[e.SessionID], e)
	if len(list) > r.perSess {
		list = list[len(list)-r.perSess:]
	}
	r.events[e.SessionID] = list
	return nil
}

func (r *MemoryRepository) History(_ context.Context, sessionID string, limit int) ([]Event, error) {
	if limit <= 0 {
		return []Event{}, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.events[sessionID]
	out := make([]Event, 0, min(limit, len(list)))
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, list[i])
	}
	return out, nil
}

func (r *MemoryRepository) Close() error { return nil }

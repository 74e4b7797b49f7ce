// Package session is the in-memory state engine behind a collaborative song
// queue: sessions, their songs, per-user votes and the cooldowns that gate
// re-voting and re-adding removed songs.
package session

import (
	"sync"
	"time"
)

type Song struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Artist     string    `json:"artist"`
	AlbumImage string    `json:"albumImage"`
	SongLink   string    `json:"songLink"`
	Votes      int       `json:"votes"`
	AddedBy    string    `json:"addedBy"`
	AddedAt    time.Time `json:"addedAt"`
}

// VoteRecord is the single standing vote of one user.
type VoteRecord struct {
	SongID      string    `json:"songId"`
	LastVotedAt time.Time `json:"lastVotedAt"`
}

// RemovedSong marks when a song id left the queue.
type RemovedSong struct {
	ID        string    `json:"id"`
	RemovedAt time.Time `json:"removedAt"`
}

// Summary is the list-level view of a session.
type Summary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	SongsCount int       `json:"songsCount"`
}

// Session is one collaborative queue. All exported methods are safe for
// concurrent use; each session is guarded by its own lock so unrelated
// sessions never contend.
type Session struct {
	mu sync.Mutex

	id        string
	name      string
	createdAt time.Time

	// songs keeps insertion order, which is the tie-break in View.
	songs        []*Song
	removedSongs []RemovedSong
	voters       map[string]VoteRecord

	clock     Clock
	cooldowns Cooldowns
}

func newSession(id, name string, clock Clock, cooldowns Cooldowns) *Session {
	return &Session{
		id:        id,
		name:      name,
		createdAt: clock.Now(),
		songs:     make([]*Song, 0),
		voters:    make(map[string]VoteRecord),
		clock:     clock,
		cooldowns: cooldowns,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Name() string { return s.name }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		ID:         s.id,
		Name:       s.name,
		CreatedAt:  s.createdAt,
		SongsCount: len(s.songs),
	}
}

// findSong returns the index of the song with id, or -1. Caller holds s.mu.
func (s *Session) findSong(id string) int {
	for i, song := range s.songs {
		if song.ID == id {
			return i
		}
	}
	return -1
}

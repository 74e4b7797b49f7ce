package session

import (
	"fmt"
	"strings"
	"time"
)

// NewSong carries the fields supplied when a participant adds a track.
type NewSong struct {
	ID         string
	Name       string
	Artist     string
	AlbumImage string
	SongLink   string
	AddedBy    string
}

func (n NewSong) validate() error {
	var missing []string
	if strings.TrimSpace(n.ID) == "" {
		missing = append(missing, "songId")
	}
	if strings.TrimSpace(n.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(n.AlbumImage) == "" {
		missing = append(missing, "albumImage")
	}
	if strings.TrimSpace(n.AddedBy) == "" {
		missing = append(missing, "addedBy")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing song information (%s): %w", strings.Join(missing, ", "), ErrValidation)
	}
	return nil
}

// AddSong appends a song with zero votes. It fails when the id is already
// queued or was removed less than the re-add cooldown ago.
func (s *Session) AddSong(n NewSong) (Song, error) {
	if err := n.validate(); err != nil {
		return Song{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findSong(n.ID) >= 0 {
		return Song{}, fmt.Errorf("song %q already exists in the session: %w", n.ID, ErrConflict)
	}

	now := s.clock.Now()
	if remaining, active := s.readdRemaining(n.ID, now); active {
		return Song{}, newCooldownError(ActionReadd, remaining, now)
	}

	song := &Song{
		ID:         n.ID,
		Name:       n.Name,
		Artist:     n.Artist,
		AlbumImage: n.AlbumImage,
		SongLink:   n.SongLink,
		Votes:      0,
		AddedBy:    n.AddedBy,
		AddedAt:    now,
	}
	s.songs = append(s.songs, song)
	return *song, nil
}

// RemoveSong drops the song and starts its re-add cooldown.
func (s *Session) RemoveSong(songID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findSong(songID)
	if idx < 0 {
		return fmt.Errorf("song %q not found in session: %w", songID, ErrNotFound)
	}

	now := s.clock.Now()
	s.songs = append(s.songs[:idx], s.songs[idx+1:]...)
	s.removedSongs = append(s.removedSongs, RemovedSong{ID: songID, RemovedAt: now})
	s.pruneRemovedLocked(now)
	return nil
}

// PruneRemoved drops removal markers whose cooldown has passed and reports
// how many went away.
func (s *Session) PruneRemoved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneRemovedLocked(s.clock.Now())
}

func (s *Session) pruneRemovedLocked(now time.Time) int {
	kept := s.removedSongs[:0]
	for _, rs := range s.removedSongs {
		if _, active := Remaining(rs.RemovedAt, s.cooldowns.Readd, now); active {
			kept = append(kept, rs)
		}
	}
	pruned := len(s.removedSongs) - len(kept)
	s.removedSongs = kept
	return pruned
}

// readdRemaining looks at every marker for id; stale ones are ignored so
// correctness never depends on pruning.
func (s *Session) readdRemaining(id string, now time.Time) (time.Duration, bool) {
	var longest time.Duration
	found := false
	for _, rs := range s.removedSongs {
		if rs.ID != id {
			continue
		}
		if remaining, active := Remaining(rs.RemovedAt, s.cooldowns.Readd, now); active && remaining > longest {
			longest = remaining
			found = true
		}
	}
	return longest, found
}

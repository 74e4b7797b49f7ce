package session

import (
	"sort"
	"time"
)

// View is the read model served to clients.
type View struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	CreatedAt    time.Time             `json:"createdAt"`
	Songs        []Song                `json:"songs"`
	RemovedSongs []RemovedSong         `json:"removedSongs"`
	UserVotes    map[string]VoteRecord `json:"userVotes"`
}

// View copies the session state with songs ordered by votes, highest first.
// Songs with equal votes keep the order in which they were added.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	songs := make([]Song, len(s.songs))
	for i, song := range s.songs {
		songs[i] = *song
	}
	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].Votes > songs[j].Votes
	})

	now := s.clock.Now()
	removed := make([]RemovedSong, 0, len(s.removedSongs))
	for _, rs := range s.removedSongs {
		if _, active := Remaining(rs.RemovedAt, s.cooldowns.Readd, now); active {
			removed = append(removed, rs)
		}
	}

	votes := make(map[string]VoteRecord, len(s.voters))
	for user, rec := range s.voters {
		votes[user] = rec
	}

	return View{
		ID:           s.id,
		Name:         s.name,
		CreatedAt:    s.createdAt,
		Songs:        songs,
		RemovedSongs: removed,
		UserVotes:    votes,
	}
}

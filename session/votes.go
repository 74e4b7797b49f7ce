package session

import (
	"fmt"
	"strings"
	"time"
)

type VoteResult struct {
	SongVotes      int       `json:"songVotes"`
	NextEligibleAt time.Time `json:"nextEligibleAt"`
}

// CastVote credits userID's single standing vote to songID. A vote for a
// different song moves the vote over; a vote for the song already credited
// changes nothing. Every vote action of a user is gated by the vote cooldown,
// regardless of which song it targets.
func (s *Session) CastVote(songID, userID string) (VoteResult, error) {
	if strings.TrimSpace(userID) == "" {
		return VoteResult{}, fmt.Errorf("missing userId: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findSong(songID)
	if idx < 0 {
		return VoteResult{}, fmt.Errorf("song %q not found in session: %w", songID, ErrNotFound)
	}
	target := s.songs[idx]

	now := s.clock.Now()
	prev, hasPrev := s.voters[userID]
	if hasPrev {
		if remaining, active := Remaining(prev.LastVotedAt, s.cooldowns.Vote, now); active {
			return VoteResult{}, newCooldownError(ActionVote, remaining, now)
		}
	}

	if hasPrev && prev.SongID != songID {
		// The previous song may have been removed meanwhile.
		if i := s.findSong(prev.SongID); i >= 0 && s.songs[i].Votes > 0 {
			s.songs[i].Votes--
		}
	}

	if !hasPrev || prev.SongID != songID {
		target.Votes++
		s.voters[userID] = VoteRecord{SongID: songID, LastVotedAt: now}
	}

	return VoteResult{
		SongVotes:      target.Votes,
		NextEligibleAt: now.Add(s.cooldowns.Vote),
	}, nil
}

// Vote returns the standing vote of userID, if any.
func (s *Session) Vote(userID string) (VoteRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.voters[userID]
	return rec, ok
}

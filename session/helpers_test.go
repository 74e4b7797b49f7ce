package session_test

import (
	"testing"
	"time"

	"github.com/himanshub16/upnext/session"
)

var epoch = time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T) (*session.Session, *session.ManualClock) {
	t.Helper()
	clock := session.NewManualClock(epoch)
	store := session.NewStore(session.WithClock(clock))
	sess, err := store.Create("Party")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sess, clock
}

func song(id string) session.NewSong {
	return session.NewSong{
		ID:         id,
		Name:       "Song " + id,
		Artist:     "Artist",
		AlbumImage: "http://img/" + id,
		SongLink:   "http://open/" + id,
		AddedBy:    "u1",
	}
}

func mustAdd(t *testing.T, sess *session.Session, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if _, err := sess.AddSong(song(id)); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
}

func votesOf(t *testing.T, sess *session.Session, id string) int {
	t.Helper()
	for _, s := range sess.View().Songs {
		if s.ID == id {
			return s.Votes
		}
	}
	t.Fatalf("song %s not in view", id)
	return 0
}

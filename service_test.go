package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/himanshub16/upnext/session"
)

type failingJournal struct {
	records int
}

func (f *failingJournal) Record(context.Context, Event) error {
	f.records++
	return errors.New("disk full")
}

func (f *failingJournal) History(context.Context, string, int) ([]Event, error) {
	return nil, errors.New("disk full")
}

func (f *failingJournal) Close() error { return nil }

func TestServiceFlowRecordsJournal(t *testing.T) {
	svc, clock, journal := newTestService(t)
	ctx := context.Background()

	view, err := svc.CreateSession(ctx, "Party")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddSong(ctx, view.ID, session.NewSong{
		ID: "s1", Name: "Foo", AlbumImage: "http://x", AddedBy: "u1",
	}); err != nil {
		t.Fatal(err)
	}
	res, err := svc.CastVote(ctx, view.ID, "s1", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if res.SongVotes != 1 {
		t.Fatalf("songVotes = %d", res.SongVotes)
	}
	clock.Advance(time.Second)
	if err := svc.RemoveSong(ctx, view.ID, "s1"); err != nil {
		t.Fatal(err)
	}

	events, err := journal.History(ctx, view.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []EventKind{EventSongRemoved, EventVoteCast, EventSongAdded, EventSessionCreated}
	if len(events) != len(want) {
		t.Fatalf("got %d events: %+v", len(events), events)
	}
	for i, kind := range want {
		if events[i].Kind != kind {
			t.Fatalf("event %d = %s, want %s", i, events[i].Kind, kind)
		}
	}
	if events[0].CreatedAt != testEpoch.Add(time.Second).UnixMilli() {
		t.Fatalf("created_at = %d", events[0].CreatedAt)
	}
	if events[1].UserID != "u1" || events[1].Detail != "votes=1" {
		t.Fatalf("unexpected vote event %+v", events[1])
	}
}

func TestServiceRejectedOperationsAreNotJournaled(t *testing.T) {
	svc, _, journal := newTestService(t)
	ctx := context.Background()

	view, _ := svc.CreateSession(ctx, "Party")
	if _, err := svc.AddSong(ctx, view.ID, session.NewSong{ID: "s1"}); !errors.Is(err, session.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.CastVote(ctx, view.ID, "s1", "u1"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	events, _ := journal.History(ctx, view.ID, 10)
	if len(events) != 1 {
		t.Fatalf("only the creation should be journaled, got %+v", events)
	}
}

func TestServiceUnknownSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GetSession(ctx, "nope"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("get: %v", err)
	}
	if _, err := svc.AddSong(ctx, "nope", session.NewSong{}); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("add: %v", err)
	}
	if err := svc.RemoveSong(ctx, "nope", "s1"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.CastVote(ctx, "nope", "s1", "u1"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("vote: %v", err)
	}
	if _, err := svc.Activity(ctx, "nope", 10); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("activity: %v", err)
	}
}

func TestServiceCreateSessionInvalid(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.CreateSession(context.Background(), "   "); !errors.Is(err, session.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if svc.SessionCount() != 0 {
		t.Fatal("no session should be stored")
	}
}

func TestServiceJournalFailureDoesNotFailOperation(t *testing.T) {
	store := session.NewStore(session.WithClock(session.NewManualClock(testEpoch)))
	journal := &failingJournal{}
	svc := NewService(store, journal, quietLogger())

	view, err := svc.CreateSession(context.Background(), "Party")
	if err != nil {
		t.Fatalf("journal failure leaked: %v", err)
	}
	if journal.records != 1 {
		t.Fatalf("expected one record attempt, got %d", journal.records)
	}
	if _, err := svc.GetSession(context.Background(), view.ID); err != nil {
		t.Fatal(err)
	}
}

func TestServiceActivityLimit(t *testing.T) {
	svc, clock, _ := newTestService(t)
	ctx := context.Background()
	view, _ := svc.CreateSession(ctx, "Party")
	for _, u := range []string{"a", "b", "c"} {
		_, _ = svc.AddSong(ctx, view.ID, session.NewSong{ID: u, Name: u, AlbumImage: "img", AddedBy: u})
		clock.Advance(time.Second)
	}

	events, err := svc.Activity(ctx, view.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].SongID != "c" || events[1].SongID != "b" {
		t.Fatalf("unexpected events %+v", events)
	}

	events, err = svc.Activity(ctx, view.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 4 {
		t.Fatalf("default limit should return everything here, got %d", len(events))
	}
}

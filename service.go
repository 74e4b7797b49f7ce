package main

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"

	"github.com/himanshub16/upnext/session"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 500
)

// Service is what the HTTP layer drives. Each call maps to one request.
type Service interface {
	CreateSession(ctx context.Context, name string) (session.View, error)
	ListSessions(ctx context.Context) []session.Summary
	GetSession(ctx context.Context, sessionID string) (session.View, error)
	AddSong(ctx context.Context, sessionID string, song session.NewSong) (session.Song, error)
	RemoveSong(ctx context.Context, sessionID, songID string) error
	CastVote(ctx context.Context, sessionID, songID, userID string) (session.VoteResult, error)
	Activity(ctx context.Context, sessionID string, limit int) ([]Event, error)
	Cooldowns() session.Cooldowns
	SessionCount() int
}

type ServiceImpl struct {
	store   *session.Store
	journal JournalRepository
	logger  *log.Logger
}

func NewService(store *session.Store, journal JournalRepository, logger *log.Logger) *ServiceImpl {
	return &ServiceImpl{
		store:   store,
		journal: journal,
		logger:  logger,
	}
}

var _ Service = (*ServiceImpl)(nil)

func (s *ServiceImpl) CreateSession(ctx context.Context, name string) (session.View, error) {
	sess, err := s.store.Create(name)
	if err != nil {
		return session.View{}, err
	}
	s.logger.Infof("session %s created: %q", sess.ID(), sess.Name())
	s.record(ctx, Event{SessionID: sess.ID(), Kind: EventSessionCreated, Detail: sess.Name()})
	return sess.View(), nil
}

func (s *ServiceImpl) ListSessions(_ context.Context) []session.Summary {
	return s.store.List()
}

func (s *ServiceImpl) GetSession(_ context.Context, sessionID string) (session.View, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return session.View{}, err
	}
	return sess.View(), nil
}

func (s *ServiceImpl) AddSong(ctx context.Context, sessionID string, song session.NewSong) (session.Song, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return session.Song{}, err
	}
	added, err := sess.AddSong(song)
	if err != nil {
		s.logger.Debugf("session %s: add %s rejected: %v", sessionID, song.ID, err)
		return session.Song{}, err
	}
	s.logger.Infof("session %s: %s added %s", sessionID, added.AddedBy, added.ID)
	s.record(ctx, Event{
		SessionID: sessionID,
		Kind:      EventSongAdded,
		SongID:    added.ID,
		UserID:    added.AddedBy,
		Detail:    added.Name,
	})
	return added, nil
}

func (s *ServiceImpl) RemoveSong(ctx context.Context, sessionID, songID string) error {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return err
	}
	if err := sess.RemoveSong(songID); err != nil {
		return err
	}
	s.logger.Infof("session %s: removed %s", sessionID, songID)
	s.record(ctx, Event{SessionID: sessionID, Kind: EventSongRemoved, SongID: songID})
	return nil
}

func (s *ServiceImpl) CastVote(ctx context.Context, sessionID, songID, userID string) (session.VoteResult, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return session.VoteResult{}, err
	}
	res, err := sess.CastVote(songID, userID)
	if err != nil {
		s.logger.Debugf("session %s: vote by %s on %s rejected: %v", sessionID, userID, songID, err)
		return session.VoteResult{}, err
	}
	s.record(ctx, Event{
		SessionID: sessionID,
		Kind:      EventVoteCast,
		SongID:    songID,
		UserID:    userID,
		Detail:    fmt.Sprintf("votes=%d", res.SongVotes),
	})
	return res, nil
}

// Activity returns the newest journal entries of an existing session.
func (s *ServiceImpl) Activity(ctx context.Context, sessionID string, limit int) ([]Event, error) {
	if _, err := s.store.Get(sessionID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return s.journal.History(ctx, sessionID, limit)
}

func (s *ServiceImpl) Cooldowns() session.Cooldowns {
	return s.store.Cooldowns()
}

func (s *ServiceImpl) SessionCount() int {
	return s.store.Len()
}

// record appends to the journal after the engine has committed. A journal
// failure is logged and does not undo the operation.
func (s *ServiceImpl) record(ctx context.Context, e Event) {
	e.CreatedAt = s.store.Clock().Now().UnixMilli()
	if err := s.journal.Record(ctx, e); err != nil {
		s.logger.Errorf("journal: %v", err)
	}
}

func (s *ServiceImpl) Close() error {
	return s.journal.Close()
}

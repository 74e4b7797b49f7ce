package main

import (
	"sync"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/himanshub16/upnext/session"
)

// Sweeper periodically drops expired removal markers from every session.
// Lookups already ignore stale markers, so this only bounds memory.
type Sweeper struct {
	store    *session.Store
	interval time.Duration
	logger   *log.Logger

	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewSweeper(store *session.Store, interval time.Duration, logger *log.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	s.ticker = time.NewTicker(s.interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.ticker.C:
				if n := s.Sweep(); n > 0 {
					s.logger.Debugf("sweeper pruned %d removal markers", n)
				}
			case <-s.done:
				s.logger.Info("sweeper stopped")
				return
			}
		}
	}()
}

// Sweep runs one pass and reports how many markers were dropped.
func (s *Sweeper) Sweep() int {
	total := 0
	s.store.Each(func(sess *session.Session) {
		total += sess.PruneRemoved()
	})
	return total
}

func (s *Sweeper) Shutdown() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.done)
	s.wg.Wait()
}

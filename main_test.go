package main

import (
	"io"
	"testing"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/himanshub16/upnext/session"
)

var testEpoch = time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

func quietLogger() *log.Logger {
	logger := log.New("test")
	logger.SetOutput(io.Discard)
	return logger
}

func newTestService(t *testing.T) (*ServiceImpl, *session.ManualClock, *MemoryRepository) {
	t.Helper()
	clock := session.NewManualClock(testEpoch)
	store := session.NewStore(session.WithClock(clock))
	journal := NewMemoryRepository(100)
	return NewService(store, journal, quietLogger()), clock, journal
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/himanshub16/upnext/session"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		newLogger("info").Fatal(err)
	}
	logger := newLogger(cfg.LogLevel)

	journal, err := OpenJournal(cfg.DBURL, logger)
	if err != nil {
		logger.Fatal(err)
	}

	store := session.NewStore(session.WithCooldowns(cfg.Cooldowns()))
	service := NewService(store, journal, logger)
	defer func() {
		if err := service.Close(); err != nil {
			logger.Errorf("close journal: %v", err)
		}
	}()

	sweeper := NewSweeper(store, cfg.SweepInterval, logger)
	sweeper.Start()
	defer sweeper.Shutdown()

	router := NewHTTPRouter(service, NewTrackSearcher(cfg.Spotify, logger), cfg, logger)

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s (vote cooldown %s, re-add cooldown %s)",
			cfg.Addr, cfg.VoteCooldown, cfg.ReaddCooldown)
		serverErr <- router.Start(cfg.Addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			logger.Errorf("server stopped: %v", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

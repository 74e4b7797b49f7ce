package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/labstack/gommon/log"

	"github.com/himanshub16/upnext/session"
)

// Config is read from the environment once at startup.
type Config struct {
	Addr     string `env:"ADDR"      envDefault:":3000"`
	DBURL    string `env:"DB_URL"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL"  envDefault:"72h"`

	// The cooldowns enforced by the engine are the ones reported to clients.
	VoteCooldown  time.Duration `env:"VOTE_COOLDOWN"  envDefault:"60s"`
	ReaddCooldown time.Duration `env:"READD_COOLDOWN" envDefault:"5m"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`

	Spotify SpotifyConfig `envPrefix:"SPOTIFY_"`
}

type SpotifyConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	TokenURL     string `env:"TOKEN_URL" envDefault:"https://accounts.spotify.com/api/token"`
	APIURL       string `env:"API_URL"   envDefault:"https://api.spotify.com"`
}

func (c SpotifyConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.VoteCooldown < 0 || cfg.ReaddCooldown < 0 {
		return Config{}, fmt.Errorf("cooldowns must not be negative (vote=%s, readd=%s)",
			cfg.VoteCooldown, cfg.ReaddCooldown)
	}
	if cfg.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", cfg.SweepInterval)
	}
	return cfg, nil
}

func (c Config) Cooldowns() session.Cooldowns {
	return session.Cooldowns{Vote: c.VoteCooldown, Readd: c.ReaddCooldown}
}

func newLogger(level string) *log.Logger {
	logger := log.New("upnext")
	logger.SetHeader("${time_rfc3339} ${level} ${prefix} ${short_file}:${line}")
	logger.SetLevel(parseLogLevel(level))
	return logger
}

func parseLogLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	}
	return log.INFO
}

// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/ethos-games/internal/memory"
)

// Score backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all server configuration.
type Config struct {
	Port         string
	LogLevel     string
	ClientOrigin string

	// Best-score persistence
	ScoreBackend string
	SQLitePath   string
	RedisURL     string

	// Browser identity cookie signing key
	BrowserSecret string

	// Content
	DictionaryFile string
	TokensFile     string
	DailySalt      string

	// Memory-game delays
	Timing memory.Timing

	// Idle games are evicted after this long
	SessionTTL time.Duration
}

// Load builds a Config from environment variables, applying defaults.
func Load() (*Config, error) {
	c := &Config{
		Port:           getEnv("PORT", "5175"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:3000"),
		ScoreBackend:   strings.ToLower(getEnv("SCORE_BACKEND", BackendMemory)),
		SQLitePath:     getEnv("SQLITE_PATH", "./data/scores.db"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		BrowserSecret:  getEnv("BROWSER_SECRET", "dev_secret_change_me"),
		DictionaryFile: os.Getenv("HANGMAN_DICTIONARY_FILE"),
		TokensFile:     os.Getenv("MEMORY_TOKENS_FILE"),
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		Timing:         memory.DefaultTiming,
		SessionTTL:     2 * time.Hour,
	}

	var err error
	if c.Timing.MatchDelay, err = envMillis("MATCH_DELAY_MS", c.Timing.MatchDelay); err != nil {
		return nil, err
	}
	if c.Timing.MismatchDelay, err = envMillis("MISMATCH_DELAY_MS", c.Timing.MismatchDelay); err != nil {
		return nil, err
	}
	if c.Timing.ShuffleDelay, err = envMillis("SHUFFLE_DELAY_MS", c.Timing.ShuffleDelay); err != nil {
		return nil, err
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config: invalid SESSION_TTL %q", v)
		}
		c.SessionTTL = d
	}

	switch c.ScoreBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return nil, fmt.Errorf("config: unknown SCORE_BACKEND %q", c.ScoreBackend)
	}
	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envMillis(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("config: invalid %s %q", k, v)
	}
	return time.Duration(n) * time.Millisecond, nil
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/ethos-games/internal/memory"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "SCORE_BACKEND", "MATCH_DELAY_MS", "MISMATCH_DELAY_MS", "SHUFFLE_DELAY_MS", "SESSION_TTL"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, BackendMemory, c.ScoreBackend)
	assert.Equal(t, memory.DefaultTiming, c.Timing)
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SCORE_BACKEND", "SQLite")
	t.Setenv("MATCH_DELAY_MS", "500")
	t.Setenv("MISMATCH_DELAY_MS", "750")
	t.Setenv("SHUFFLE_DELAY_MS", "0")
	t.Setenv("SESSION_TTL", "30m")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, BackendSQLite, c.ScoreBackend)
	assert.Equal(t, memory.Timing{
		MatchDelay:    500 * time.Millisecond,
		MismatchDelay: 750 * time.Millisecond,
		ShuffleDelay:  0,
	}, c.Timing)
	assert.Equal(t, 30*time.Minute, c.SessionTTL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown backend", "SCORE_BACKEND", "postgres"},
		{"negative delay", "MATCH_DELAY_MS", "-1"},
		{"non-numeric delay", "MISMATCH_DELAY_MS", "soon"},
		{"bad ttl", "SESSION_TTL", "forever"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

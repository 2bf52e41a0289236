package daily

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	assert.Equal(t, "2026-10-18", DateKey(time.Date(2026, 10, 19, 5, 0, 0, 0, loc)))
}

func TestWordIndex_StablePerDay(t *testing.T) {
	morning := time.Date(2026, 3, 1, 0, 0, 1, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, WordIndex(morning, "salt", 20), WordIndex(evening, "salt", 20))
}

func TestWordIndex_Range(t *testing.T) {
	day := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for i := 0; i < 365; i++ {
		idx := WordIndex(day.AddDate(0, 0, i), "salt", 20)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 20)
		seen[idx] = true
	}
	assert.Greater(t, len(seen), 15)
}

func TestWordIndex_EdgeCases(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, WordIndex(day, "salt", 0))
	assert.Equal(t, 0, WordIndex(day, "salt", 1))

	long := strings.Repeat("k", 100)
	idx := WordIndex(day, long, 20)
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, 20)
}

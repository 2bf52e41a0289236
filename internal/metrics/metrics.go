// Package metrics exposes Prometheus counters for both games.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RoundsStarted counts new rounds/deals by game.
	RoundsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ethos_games",
		Name:      "rounds_started_total",
		Help:      "Rounds started, by game.",
	}, []string{"game"})

	// RoundsFinished counts finished rounds by game and outcome (won, lost, complete).
	RoundsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ethos_games",
		Name:      "rounds_finished_total",
		Help:      "Rounds finished, by game and outcome.",
	}, []string{"game", "outcome"})

	// NewBests counts completions that set a personal best.
	NewBests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ethos_games",
		Name:      "personal_bests_total",
		Help:      "Completions that lowered a stored best, by game and field.",
	}, []string{"game", "field"})

	// MemoryMoves observes moves needed to clear a memory board.
	MemoryMoves = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ethos_games",
		Name:      "memory_moves",
		Help:      "Moves taken to complete a memory board.",
		Buckets:   prometheus.LinearBuckets(8, 4, 8),
	})

	// ActiveSessions tracks games held in memory.
	ActiveSessions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ethos_games",
		Name:      "active_sessions",
		Help:      "Games currently held in memory, by game.",
	}, []string{"game"})
)

// internal/httpserver/routes_memory.go
//
// HTTP routes for the card-matching game.
// Exposes four endpoints under /memory:
//   - POST /memory/new        → deal a board
//   - GET  /memory/{id}       → current board (poll while a pair or shuffle is pending)
//   - POST /memory/{id}/flip  → flip one card
//   - POST /memory/{id}/reset → turn everything face down and re-deal after the shuffle delay
//
// Pair resolution and the clock run on the session's own timers, so state can
// change between requests. Tokens of face-down cards are never sent.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/robalobadob/ethos-games/internal/memory"
	"github.com/robalobadob/ethos-games/internal/metrics"
	"github.com/robalobadob/ethos-games/internal/scores"
	"github.com/robalobadob/ethos-games/internal/store"
)

const gameMemory = "memory"

// memorySession pairs a timed board with its owner and last scored result.
type memorySession struct {
	game  *memory.Session
	owner string

	mu        sync.Mutex // guards result and resultGen
	result    *scores.Result
	resultGen uint64 // deal the result belongs to
}

// mountMemory registers all /memory routes.
func (s *Server) mountMemory(r chi.Router) {
	r.Route("/memory", func(r chi.Router) {
		r.Post("/new", s.handleMemoryNew)
		r.Get("/{id}", s.handleMemoryGet)
		r.Post("/{id}/flip", s.handleMemoryFlip)
		r.Post("/{id}/reset", s.handleMemoryReset)
	})
}

// cardView is a card as the client sees it.
type cardView struct {
	ID       int    `json:"id"`
	Token    string `json:"token,omitempty"`
	Revealed bool   `json:"revealed"`
	Matched  bool   `json:"matched"`
}

// memoryView is the wire form of a board.
type memoryView struct {
	GameID    string         `json:"gameId"`
	Status    memory.Status  `json:"status"`
	Cards     []cardView     `json:"cards"`
	Moves     int            `json:"moves"`
	Elapsed   int            `json:"elapsed"`
	Clock     string         `json:"clock"`
	Shuffling bool           `json:"shuffling"`
	Best      scores.Record  `json:"best"`
	Result    *scores.Result `json:"result,omitempty"`
	Share     string         `json:"share,omitempty"`
}

func (s *Server) handleMemoryNew(w http.ResponseWriter, r *http.Request) {
	b, err := memory.NewBoard(s.lists.Tokens, memory.WithTiming(s.opts.Timing))
	if err != nil {
		s.log.Error().Err(err).Msg("memory board")
		writeError(w, http.StatusInternalServerError, "no_tokens")
		return
	}

	id := uuid.NewString()
	ms := &memorySession{owner: browserID(r)}
	ms.game = memory.NewSession(b,
		memory.WithTickInterval(s.opts.TickInterval),
		memory.WithLogger(s.log.With().Str("game", id).Logger()),
		memory.OnComplete(func(c memory.Completion) { s.memoryCompleted(ms, c) }),
	)

	if err := s.memory.Save(r.Context(), id, ms); err != nil {
		ms.game.Close()
		s.log.Error().Err(err).Str("game", id).Msg("save memory game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	metrics.RoundsStarted.WithLabelValues(gameMemory).Inc()
	metrics.ActiveSessions.WithLabelValues(gameMemory).Set(float64(s.memory.Len()))

	writeJSON(w, http.StatusCreated, s.memoryView(r.Context(), id, ms, ms.game.Snapshot()))
}

func (s *Server) handleMemoryGet(w http.ResponseWriter, r *http.Request) {
	id, ms, ok := s.memoryFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.memoryView(r.Context(), id, ms, ms.game.Snapshot()))
}

// flipReq is the body of /memory/{id}/flip.
type flipReq struct {
	CardID *int `json:"cardId"`
}

// handleMemoryFlip flips one card. Flips the board refuses (pair pending,
// shuffling, card already up) return the unchanged board.
func (s *Server) handleMemoryFlip(w http.ResponseWriter, r *http.Request) {
	id, ms, ok := s.memoryFor(w, r)
	if !ok {
		return
	}
	var p flipReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.CardID == nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	writeJSON(w, http.StatusOK, s.memoryView(r.Context(), id, ms, ms.game.Flip(*p.CardID)))
}

func (s *Server) handleMemoryReset(w http.ResponseWriter, r *http.Request) {
	id, ms, ok := s.memoryFor(w, r)
	if !ok {
		return
	}
	snap := ms.game.Reset()
	metrics.RoundsStarted.WithLabelValues(gameMemory).Inc()
	writeJSON(w, http.StatusOK, s.memoryView(r.Context(), id, ms, snap))
}

// memoryCompleted runs on the session's timer goroutine once a board is cleared.
// The result is tagged with the completed deal so a reset made while the
// scores were being written never shows it on the next deal.
func (s *Server) memoryCompleted(ms *memorySession, c memory.Completion) {
	res := s.scoresFor(ms.owner).RecordCompletion(context.Background(), scores.Memory, c.Elapsed, c.Moves)
	ms.mu.Lock()
	ms.result = &res
	ms.resultGen = c.Generation
	ms.mu.Unlock()

	metrics.RoundsFinished.WithLabelValues(gameMemory, string(memory.StatusComplete)).Inc()
	metrics.MemoryMoves.Observe(float64(c.Moves))
	countBests(gameMemory, res)
}

// memoryFor loads the game named in the URL. Games of other browsers read as missing.
func (s *Server) memoryFor(w http.ResponseWriter, r *http.Request) (string, *memorySession, bool) {
	id := chi.URLParam(r, "id")
	ms, err := s.memory.Get(r.Context(), id)
	if err != nil || ms.owner != browserID(r) {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			s.log.Error().Err(err).Str("game", id).Msg("load memory")
		}
		writeError(w, http.StatusNotFound, "game_not_found")
		return "", nil, false
	}
	return id, ms, true
}

func (s *Server) memoryView(ctx context.Context, id string, ms *memorySession, snap memory.Snapshot) memoryView {
	cards := make([]cardView, len(snap.Cards))
	for i, c := range snap.Cards {
		cards[i] = cardView{ID: c.ID, Revealed: c.Revealed, Matched: c.Matched}
		if c.Revealed || c.Matched {
			cards[i].Token = c.Token
		}
	}

	ms.mu.Lock()
	result := ms.result
	if ms.resultGen != snap.Generation {
		result = nil
	}
	ms.mu.Unlock()

	v := memoryView{
		GameID:    id,
		Status:    snap.Status,
		Cards:     cards,
		Moves:     snap.Moves,
		Elapsed:   snap.Elapsed,
		Clock:     memory.FormatElapsed(snap.Elapsed),
		Shuffling: snap.Shuffling,
		Result:    result,
	}
	if result != nil {
		v.Best = result.Record
		v.Share = memory.ShareText(snap.Elapsed)
	} else {
		v.Best = s.scoresFor(ms.owner).Read(ctx, scores.Memory)
	}
	return v
}

// internal/httpserver/routes_hangman.go
//
// HTTP routes for the word-guessing game.
// Exposes four endpoints under /hangman:
//   - POST /hangman/new        → start a game (random word, or today's word with {"daily":true})
//   - GET  /hangman/{id}       → current state
//   - POST /hangman/{id}/guess → guess one letter
//   - POST /hangman/{id}/next  → start another random round in the same game
//
// The secret word and its definition are only sent once the round is over.
// A won round is scored for the calling browser: elapsed seconds and wrong guesses.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/robalobadob/ethos-games/internal/daily"
	"github.com/robalobadob/ethos-games/internal/hangman"
	"github.com/robalobadob/ethos-games/internal/metrics"
	"github.com/robalobadob/ethos-games/internal/scores"
	"github.com/robalobadob/ethos-games/internal/store"
)

const gameHangman = "hangman"

// hangmanSession is one browser's game; mu serialises engine access.
type hangmanSession struct {
	mu      sync.Mutex
	engine  *hangman.Engine
	owner   string
	daily   string // date key when playing the word of the day
	started time.Time
	result  *scores.Result
}

// mountHangman registers all /hangman routes.
func (s *Server) mountHangman(r chi.Router) {
	r.Route("/hangman", func(r chi.Router) {
		r.Post("/new", s.handleHangmanNew)
		r.Get("/{id}", s.handleHangmanGet)
		r.Post("/{id}/guess", s.handleHangmanGuess)
		r.Post("/{id}/next", s.handleHangmanNext)
	})
}

// hangmanNewReq is the optional body of /hangman/new.
type hangmanNewReq struct {
	Daily bool `json:"daily"`
}

// hangmanView is the wire form of a game.
type hangmanView struct {
	GameID     string         `json:"gameId"`
	Status     hangman.Status `json:"status"`
	Mask       []string       `json:"mask"`
	Guessed    []string       `json:"guessed"`
	Wrong      int            `json:"wrong"`
	Remaining  int            `json:"remaining"`
	MaxWrong   int            `json:"maxWrong"`
	Figure     []string       `json:"figure"`
	Daily      string         `json:"daily,omitempty"`
	Word       string         `json:"word,omitempty"`       // only once finished
	Definition string         `json:"definition,omitempty"` // only once finished
	Best       scores.Record  `json:"best"`
	Result     *scores.Result `json:"result,omitempty"`
}

// handleHangmanNew starts a game. An empty body means a random word.
func (s *Server) handleHangmanNew(w http.ResponseWriter, r *http.Request) {
	var p hangmanNewReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}

	e, err := hangman.New(s.lists.Dictionary)
	if err != nil {
		s.log.Error().Err(err).Msg("hangman engine")
		writeError(w, http.StatusInternalServerError, "no_dictionary")
		return
	}

	now := s.opts.Now()
	sess := &hangmanSession{engine: e, owner: browserID(r), started: now}
	if p.Daily {
		dict := s.lists.Dictionary
		e.Start(dict[daily.WordIndex(now, s.opts.DailySalt, len(dict))])
		sess.daily = daily.DateKey(now)
	}

	id := uuid.NewString()
	if err := s.hangman.Save(r.Context(), id, sess); err != nil {
		s.log.Error().Err(err).Str("game", id).Msg("save hangman game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	metrics.RoundsStarted.WithLabelValues(gameHangman).Inc()
	metrics.ActiveSessions.WithLabelValues(gameHangman).Set(float64(s.hangman.Len()))
	s.log.Debug().Str("game", id).Bool("daily", p.Daily).Msg("hangman started")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusCreated, s.hangmanView(r, id, sess))
}

func (s *Server) handleHangmanGet(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.hangmanFor(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, s.hangmanView(r, id, sess))
}

// guessReq is the body of /hangman/{id}/guess.
type guessReq struct {
	Letter string `json:"letter"`
}

// handleHangmanGuess applies one letter. Anything but a single character is rejected;
// a character the engine ignores (digit, repeat) returns the unchanged state.
func (s *Server) handleHangmanGuess(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.hangmanFor(w, r)
	if !ok {
		return
	}
	var p guessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	if utf8.RuneCountInString(p.Letter) != 1 {
		writeError(w, http.StatusBadRequest, "invalid_letter")
		return
	}
	letter, _ := utf8.DecodeRuneInString(p.Letter)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	snap, done := sess.engine.GuessLetter(letter)
	if done {
		metrics.RoundsFinished.WithLabelValues(gameHangman, string(snap.Status)).Inc()
		if snap.Status == hangman.StatusWon {
			elapsed := int(s.opts.Now().Sub(sess.started) / time.Second)
			res := s.scoresFor(sess.owner).RecordCompletion(r.Context(), scores.Hangman, elapsed, snap.Wrong)
			sess.result = &res
			countBests(gameHangman, res)
		}
		s.log.Info().Str("game", id).Str("status", string(snap.Status)).Int("wrong", snap.Wrong).Msg("hangman round over")
	}
	writeJSON(w, http.StatusOK, s.hangmanView(r, id, sess))
}

// handleHangmanNext starts another random round; the word of the day is played once.
func (s *Server) handleHangmanNext(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.hangmanFor(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.daily != "" {
		writeError(w, http.StatusConflict, "daily_round")
		return
	}
	sess.engine.StartNewRound()
	sess.started = s.opts.Now()
	sess.result = nil
	metrics.RoundsStarted.WithLabelValues(gameHangman).Inc()
	writeJSON(w, http.StatusOK, s.hangmanView(r, id, sess))
}

// hangmanFor loads the game named in the URL. Games of other browsers read as missing.
func (s *Server) hangmanFor(w http.ResponseWriter, r *http.Request) (string, *hangmanSession, bool) {
	id := chi.URLParam(r, "id")
	sess, err := s.hangman.Get(r.Context(), id)
	if err != nil || sess.owner != browserID(r) {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			s.log.Error().Err(err).Str("game", id).Msg("load hangman")
		}
		writeError(w, http.StatusNotFound, "game_not_found")
		return "", nil, false
	}
	return id, sess, true
}

// hangmanView must be called with sess.mu held.
func (s *Server) hangmanView(r *http.Request, id string, sess *hangmanSession) hangmanView {
	snap := sess.engine.Snapshot()
	v := hangmanView{
		GameID:    id,
		Status:    snap.Status,
		Mask:      snap.Mask,
		Guessed:   snap.Guessed,
		Wrong:     snap.Wrong,
		Remaining: snap.Remaining,
		MaxWrong:  hangman.MaxWrong,
		Figure:    hangman.Figure(snap.Wrong),
		Daily:     sess.daily,
		Result:    sess.result,
	}
	if snap.Status.Finished() {
		v.Word = snap.Entry.Word
		v.Definition = snap.Entry.Definition
	}
	if sess.result != nil {
		v.Best = sess.result.Record
	} else {
		v.Best = s.scoresFor(sess.owner).Read(r.Context(), scores.Hangman)
	}
	return v
}

// countBests bumps the personal-best counter for each lowered field.
func countBests(game string, res scores.Result) {
	if res.NewBestTime {
		metrics.NewBests.WithLabelValues(game, "time").Inc()
	}
	if res.NewBestMoves {
		metrics.NewBests.WithLabelValues(game, "moves").Inc()
	}
}

// internal/hangman/engine.go
//
// Core engine for a single word-guessing table.
// Responsibilities:
//   - Pick a random entry from the dictionary for each round (repeats allowed).
//   - Apply letter guesses, counting letters absent from the word as wrong.
//   - Track state transitions: playing → won/lost, checking the win first.
//
// Notes:
//   - Characters outside A–Z (digits in "ERC20", "WEB3") are shown from the
//     start and never need to be guessed.
//   - The engine is not safe for concurrent use; callers serialise access.
package hangman

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"unicode"
)

var (
	// ErrEmptyDictionary is returned by New when no entries are supplied.
	ErrEmptyDictionary = errors.New("hangman: empty dictionary")
	// ErrNoLetters is returned for a word with nothing to guess.
	ErrNoLetters = errors.New("hangman: word has no letters A-Z")
)

// Engine owns the dictionary and the state of the current round.
type Engine struct {
	dict    []Entry
	intn    func(n int) int
	entry   Entry
	guessed map[rune]struct{}
	wrong   int
	status  Status
}

// Option customises an Engine.
type Option func(*Engine)

// WithRand makes word selection draw from r, which makes rounds reproducible in tests.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.intn = r.IntN }
}

// New constructs an engine and starts its first round.
// Entry words are trimmed and uppercased; definitions are kept as given.
func New(dict []Entry, opts ...Option) (*Engine, error) {
	if len(dict) == 0 {
		return nil, ErrEmptyDictionary
	}
	e := &Engine{
		dict: make([]Entry, len(dict)),
		intn: rand.IntN,
	}
	for i, en := range dict {
		e.dict[i] = normalize(en)
		if !HasLetters(e.dict[i].Word) {
			return nil, fmt.Errorf("%w: %q", ErrNoLetters, e.dict[i].Word)
		}
	}
	for _, o := range opts {
		o(e)
	}
	e.StartNewRound()
	return e, nil
}

// StartNewRound picks an entry uniformly at random and resets the round.
func (e *Engine) StartNewRound() Snapshot {
	return e.Start(e.dict[e.intn(len(e.dict))])
}

// Start resets the round around a specific entry (daily word, tests).
func (e *Engine) Start(en Entry) Snapshot {
	e.entry = normalize(en)
	e.guessed = make(map[rune]struct{}, 26)
	e.wrong = 0
	e.status = StatusPlaying
	return e.Snapshot()
}

// GuessLetter applies one letter guess.
// The bool is true only on the guess that ends the round, so callers can
// react to completion exactly once.
//
// No-ops (state unchanged, false):
//   - round already won or lost;
//   - letter outside A–Z (case-insensitive);
//   - letter guessed before, right or wrong.
func (e *Engine) GuessLetter(letter rune) (Snapshot, bool) {
	if e.status != StatusPlaying {
		return e.Snapshot(), false
	}
	l := unicode.ToUpper(letter)
	if !isLetter(l) {
		return e.Snapshot(), false
	}
	if _, ok := e.guessed[l]; ok {
		return e.Snapshot(), false
	}

	e.guessed[l] = struct{}{}
	if !strings.ContainsRune(e.entry.Word, l) {
		e.wrong++
	}

	if e.solved() {
		e.status = StatusWon
	} else if e.wrong >= MaxWrong {
		e.status = StatusLost
	}
	return e.Snapshot(), e.status.Finished()
}

// Status reports the current round status.
func (e *Engine) Status() Status { return e.status }

// Mask renders the word with unguessed letters replaced by "_".
func (e *Engine) Mask() []string {
	out := make([]string, 0, len(e.entry.Word))
	for _, r := range e.entry.Word {
		if e.revealed(r) {
			out = append(out, string(r))
		} else {
			out = append(out, "_")
		}
	}
	return out
}

// Snapshot copies the current round state.
func (e *Engine) Snapshot() Snapshot {
	guessed := make([]string, 0, len(e.guessed))
	for r := range e.guessed {
		guessed = append(guessed, string(r))
	}
	sort.Strings(guessed)
	return Snapshot{
		Entry:     e.entry,
		Mask:      e.Mask(),
		Guessed:   guessed,
		Wrong:     e.wrong,
		Remaining: MaxWrong - e.wrong,
		Status:    e.status,
	}
}

// solved reports whether every letter of the word has been guessed.
func (e *Engine) solved() bool {
	for _, r := range e.entry.Word {
		if !e.revealed(r) {
			return false
		}
	}
	return true
}

func (e *Engine) revealed(r rune) bool {
	if !isLetter(r) {
		return true
	}
	_, ok := e.guessed[r]
	return ok
}

func normalize(en Entry) Entry {
	return Entry{
		Word:       strings.ToUpper(strings.TrimSpace(en.Word)),
		Definition: strings.TrimSpace(en.Definition),
	}
}

// HasLetters reports whether word (any case) contains at least one letter A–Z,
// i.e. whether a round on it can be played at all.
func HasLetters(word string) bool {
	for _, r := range strings.ToUpper(word) {
		if isLetter(r) {
			return true
		}
	}
	return false
}

// isLetter checks for an uppercase ASCII letter.
func isLetter(r rune) bool { return r >= 'A' && r <= 'Z' }

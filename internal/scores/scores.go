// internal/scores/scores.go
//
// Best-score bookkeeping per game variant.
// Responsibilities:
//   - Read the best elapsed time and move count for a variant.
//   - On completion, lower each best independently when the new value is strictly better.
//
// Notes:
//   - Values are stored as base-10 strings; anything else reads as "no record".
//   - Storage failures never reach the caller: reads fall back to "no record",
//     writes are logged and dropped.

package scores

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/robalobadob/ethos-games/internal/kv"
)

// Variant names the pair of keys one game stores its bests under.
type Variant struct {
	Name     string
	TimeKey  string
	MovesKey string
}

var (
	// Memory is the card-matching game. Moves are completed pairs of flips.
	Memory = Variant{Name: "memory", TimeKey: "memoryGameBestTime", MovesKey: "memoryGameBestMoves"}
	// Hangman is the word game. Moves are wrong guesses in a won round.
	Hangman = Variant{Name: "hangman", TimeKey: "hangmanBestTime", MovesKey: "hangmanBestMoves"}
)

// Lookup finds a variant by name.
func Lookup(name string) (Variant, bool) {
	switch name {
	case Memory.Name:
		return Memory, true
	case Hangman.Name:
		return Hangman, true
	}
	return Variant{}, false
}

// Record holds the stored bests; nil means no record.
type Record struct {
	BestElapsedSeconds *int `json:"bestElapsedSeconds"`
	BestMoveCount      *int `json:"bestMoveCount"`
}

// Result describes how a completion compared to the previous bests.
type Result struct {
	Record       Record `json:"record"`       // bests after the update
	NewBestTime  bool   `json:"newBestTime"`  // time was stored
	NewBestMoves bool   `json:"newBestMoves"` // moves were stored
	TiedTime     bool   `json:"tiedTime"`     // time equals the previous best
	TiedMoves    bool   `json:"tiedMoves"`    // moves equal the previous best
}

// Store reads and updates best scores through a KV.
type Store struct {
	kv  kv.KV
	log zerolog.Logger
}

// New constructs a Store over kv.
func New(store kv.KV, log zerolog.Logger) *Store {
	return &Store{kv: store, log: log}
}

// Read returns the bests for v.
func (s *Store) Read(ctx context.Context, v Variant) Record {
	return Record{
		BestElapsedSeconds: s.readInt(ctx, v.TimeKey),
		BestMoveCount:      s.readInt(ctx, v.MovesKey),
	}
}

// RecordCompletion stores elapsed and moves as new bests when they beat
// (strictly) or fill in the stored values. Ties leave storage untouched.
func (s *Store) RecordCompletion(ctx context.Context, v Variant, elapsed, moves int) Result {
	prev := s.Read(ctx, v)
	res := Result{Record: prev}

	res.NewBestTime, res.TiedTime = s.lower(ctx, v.TimeKey, prev.BestElapsedSeconds, elapsed)
	if res.NewBestTime {
		res.Record.BestElapsedSeconds = &elapsed
	}
	res.NewBestMoves, res.TiedMoves = s.lower(ctx, v.MovesKey, prev.BestMoveCount, moves)
	if res.NewBestMoves {
		res.Record.BestMoveCount = &moves
	}

	s.log.Debug().
		Str("variant", v.Name).
		Int("elapsed", elapsed).
		Int("moves", moves).
		Bool("newBestTime", res.NewBestTime).
		Bool("newBestMoves", res.NewBestMoves).
		Msg("completion recorded")
	return res
}

// lower writes val under key if there is no previous value or val < prev.
func (s *Store) lower(ctx context.Context, key string, prev *int, val int) (stored, tied bool) {
	if prev != nil && val >= *prev {
		return false, val == *prev
	}
	if err := s.kv.Set(ctx, key, strconv.Itoa(val)); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("best score write failed")
	}
	return true, false
}

func (s *Store) readInt(ctx context.Context, key string) *int {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("best score read failed")
		return nil
	}
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

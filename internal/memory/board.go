// internal/memory/board.go
//
// Pair-matching engine for a single board.
// Responsibilities:
//   - Deal two copies of every token and shuffle them uniformly.
//   - Accept at most two face-up unresolved cards at a time.
//   - Count one move per completed pair of flips.
//   - Resolve a pending pair against the board as it is at resolution time.
//
// Timers are not owned here: Flip hands back a Pending that the caller
// schedules, and Tick is called once per elapsed second. Every deal bumps
// the generation so resolutions scheduled for an earlier deal are ignored.
package memory

import (
	"errors"
	"math/rand/v2"
)

var (
	// ErrNoTokens is returned when a deal is attempted with an empty token set.
	ErrNoTokens = errors.New("memory: empty token set")
	// ErrDuplicateToken is returned when the token set repeats a token.
	ErrDuplicateToken = errors.New("memory: duplicate token")
)

// Board holds one deal. It is not safe for concurrent use; see Session.
type Board struct {
	tokens     []string
	cards      []Card
	selection  []int
	moves      int
	elapsed    int
	status     Status
	shuffling  bool
	generation uint64
	pending    *Pending
	timing     Timing
	shuffle    func(n int, swap func(i, j int))
}

// Option customises a Board.
type Option func(*Board)

// WithTiming overrides DefaultTiming.
func WithTiming(t Timing) Option {
	return func(b *Board) { b.timing = t }
}

// WithRand shuffles with r instead of the global source.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) { b.shuffle = r.Shuffle }
}

// NewBoard validates tokens and performs the first deal.
func NewBoard(tokens []string, opts ...Option) (*Board, error) {
	b := &Board{timing: DefaultTiming, shuffle: rand.Shuffle}
	for _, o := range opts {
		o(b)
	}
	if err := b.Deal(tokens); err != nil {
		return nil, err
	}
	return b, nil
}

// Deal replaces the board with a fresh shuffled deal of tokens.
// Any pending resolution from the previous deal becomes stale.
func (b *Board) Deal(tokens []string) error {
	if len(tokens) == 0 {
		return ErrNoTokens
	}
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			return ErrDuplicateToken
		}
		seen[t] = struct{}{}
	}

	deck := make([]string, 0, 2*len(tokens))
	deck = append(deck, tokens...)
	deck = append(deck, tokens...)
	b.shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	b.tokens = append(b.tokens[:0], tokens...)
	b.cards = make([]Card, len(deck))
	for i, t := range deck {
		b.cards[i] = Card{ID: i, Token: t}
	}
	b.selection = nil
	b.moves = 0
	b.elapsed = 0
	b.status = StatusIdle
	b.shuffling = false
	b.pending = nil
	b.generation++
	return nil
}

// BeginShuffle turns every card face down and closes the board to flips
// until FinishShuffle is called with the returned generation.
func (b *Board) BeginShuffle() uint64 {
	b.generation++
	b.pending = nil
	b.selection = nil
	for i := range b.cards {
		b.cards[i].Revealed = false
		b.cards[i].Matched = false
	}
	b.status = StatusIdle
	b.shuffling = true
	return b.generation
}

// FinishShuffle re-deals the current token set if gen is still current.
// The bool reports whether a deal happened.
func (b *Board) FinishShuffle(gen uint64) (Snapshot, bool) {
	if !b.shuffling || gen != b.generation {
		return b.Snapshot(), false
	}
	// tokens were validated by the deal that stored them
	_ = b.Deal(b.tokens)
	return b.Snapshot(), true
}

// Flip turns card id face up.
// When it completes a pair the move is counted and a Pending is returned
// for the caller to resolve after Pending.Delay.
//
// No-ops: board complete or shuffling, a pair already pending, id out of
// range, card already revealed or matched.
func (b *Board) Flip(id int) (Snapshot, *Pending) {
	if b.status == StatusComplete || b.shuffling || len(b.selection) == 2 {
		return b.Snapshot(), nil
	}
	if id < 0 || id >= len(b.cards) {
		return b.Snapshot(), nil
	}
	c := &b.cards[id]
	if c.Revealed || c.Matched {
		return b.Snapshot(), nil
	}

	if b.status == StatusIdle {
		b.status = StatusPlaying
	}
	c.Revealed = true
	b.selection = append(b.selection, id)
	if len(b.selection) < 2 {
		return b.Snapshot(), nil
	}

	b.moves++
	p := Pending{
		Generation: b.generation,
		Cards:      [2]int{b.selection[0], b.selection[1]},
		Outcome:    OutcomeMismatch,
		Delay:      b.timing.MismatchDelay,
	}
	if b.cards[p.Cards[0]].Token == b.cards[p.Cards[1]].Token {
		p.Outcome = OutcomeMatch
		p.Delay = b.timing.MatchDelay
	}
	b.pending = &p
	out := p
	return b.Snapshot(), &out
}

// ResolvePending settles the face-up pair of deal gen.
// A non-nil Completion is returned exactly once per deal, on the
// resolution that matches the last pair.
func (b *Board) ResolvePending(gen uint64) (Snapshot, *Completion) {
	if b.pending == nil || gen != b.generation || len(b.selection) != 2 {
		return b.Snapshot(), nil
	}
	first, second := &b.cards[b.selection[0]], &b.cards[b.selection[1]]
	b.pending = nil
	b.selection = nil

	if first.Token == second.Token {
		first.Matched, second.Matched = true, true
		first.Revealed, second.Revealed = true, true
	} else {
		first.Revealed, second.Revealed = false, false
	}

	if !b.allMatched() {
		return b.Snapshot(), nil
	}
	b.status = StatusComplete
	return b.Snapshot(), &Completion{Moves: b.moves, Elapsed: b.elapsed, Generation: b.generation}
}

// Tick advances the clock by one second while playing.
func (b *Board) Tick() Snapshot {
	if b.status == StatusPlaying {
		b.elapsed++
	}
	return b.Snapshot()
}

// Pending returns the unresolved pair, if any.
func (b *Board) Pending() (Pending, bool) {
	if b.pending == nil {
		return Pending{}, false
	}
	return *b.pending, true
}

// Status reports the current deal status.
func (b *Board) Status() Status { return b.status }

// Generation identifies the current deal.
func (b *Board) Generation() uint64 { return b.generation }

// Timing returns the delays this board hands out.
func (b *Board) Timing() Timing { return b.timing }

// Snapshot copies the board state.
func (b *Board) Snapshot() Snapshot {
	cards := make([]Card, len(b.cards))
	copy(cards, b.cards)
	return Snapshot{
		Cards:      cards,
		Selection:  append([]int(nil), b.selection...),
		Moves:      b.moves,
		Elapsed:    b.elapsed,
		Status:     b.status,
		Shuffling:  b.shuffling,
		Generation: b.generation,
	}
}

func (b *Board) allMatched() bool {
	for _, c := range b.cards {
		if !c.Matched {
			return false
		}
	}
	return true
}

package memory

import (
	"math/rand/v2"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identity leaves the deck in deal order: A, B, ..., A, B, ...
func identity(int, func(i, j int)) {}

func newBoard(t *testing.T, tokens ...string) *Board {
	t.Helper()
	b, err := NewBoard(tokens, func(b *Board) { b.shuffle = identity })
	require.NoError(t, err)
	return b
}

// pairOf returns the two card ids that carry token.
func pairOf(t *testing.T, s Snapshot, token string) (int, int) {
	t.Helper()
	var ids []int
	for _, c := range s.Cards {
		if c.Token == token {
			ids = append(ids, c.ID)
		}
	}
	require.Len(t, ids, 2)
	return ids[0], ids[1]
}

func TestNewBoard_Validation(t *testing.T) {
	_, err := NewBoard(nil)
	assert.ErrorIs(t, err, ErrNoTokens)

	_, err = NewBoard([]string{"a", "b", "a"})
	assert.ErrorIs(t, err, ErrDuplicateToken)
}

func TestDeal_EveryTokenDealtTwice(t *testing.T) {
	tokens := []string{"pink", "purple", "blue", "yellow", "orange", "teal", "green", "angry"}
	b, err := NewBoard(tokens, WithRand(rand.New(rand.NewPCG(7, 7))))
	require.NoError(t, err)

	s := b.Snapshot()
	require.Len(t, s.Cards, 16)
	counts := map[string]int{}
	for i, c := range s.Cards {
		assert.Equal(t, i, c.ID)
		assert.False(t, c.Revealed)
		assert.False(t, c.Matched)
		counts[c.Token]++
	}
	for _, tok := range tokens {
		assert.Equal(t, 2, counts[tok], tok)
	}
	assert.Equal(t, StatusIdle, s.Status)
	assert.Equal(t, 0, s.Moves)
	assert.Equal(t, 0, s.Elapsed)
	assert.Empty(t, s.Selection)
}

func TestDeal_ShuffleIsUniformish(t *testing.T) {
	// With two tokens there are 6 distinct layouts; all should show up.
	b, err := NewBoard([]string{"A", "B"}, WithRand(rand.New(rand.NewPCG(1, 99))))
	require.NoError(t, err)

	seen := map[string]int{}
	for i := 0; i < 600; i++ {
		require.NoError(t, b.Deal([]string{"A", "B"}))
		var sb strings.Builder
		for _, c := range b.Snapshot().Cards {
			sb.WriteString(c.Token)
		}
		seen[sb.String()]++
	}
	assert.Len(t, seen, 6)
	for layout, n := range seen {
		assert.Greater(t, n, 50, layout)
	}
}

func TestMatchScenario(t *testing.T) {
	b := newBoard(t, "A", "B")
	a1, a2 := pairOf(t, b.Snapshot(), "A")
	b1, b2 := pairOf(t, b.Snapshot(), "B")

	s, p := b.Flip(a1)
	assert.Nil(t, p)
	assert.Equal(t, StatusPlaying, s.Status)
	assert.Equal(t, 0, s.Moves)

	s, p = b.Flip(a2)
	require.NotNil(t, p)
	assert.Equal(t, OutcomeMatch, p.Outcome)
	assert.Equal(t, DefaultTiming.MatchDelay, p.Delay)
	assert.Equal(t, 1, s.Moves)

	s, done := b.ResolvePending(p.Generation)
	assert.Nil(t, done)
	assert.True(t, s.Cards[a1].Matched)
	assert.True(t, s.Cards[a2].Matched)
	assert.True(t, s.Cards[a1].Revealed)
	assert.Equal(t, StatusPlaying, s.Status)

	b.Flip(b1)
	_, p = b.Flip(b2)
	require.NotNil(t, p)
	s, done = b.ResolvePending(p.Generation)
	require.NotNil(t, done)
	assert.Equal(t, Completion{Moves: 2, Elapsed: 0, Generation: p.Generation}, *done)
	assert.Equal(t, StatusComplete, s.Status)
	assert.Equal(t, 2, s.Moves)
}

func TestMismatch_FlipsBack(t *testing.T) {
	b := newBoard(t, "A", "B")
	a1, _ := pairOf(t, b.Snapshot(), "A")
	b1, _ := pairOf(t, b.Snapshot(), "B")

	b.Flip(a1)
	_, p := b.Flip(b1)
	require.NotNil(t, p)
	assert.Equal(t, OutcomeMismatch, p.Outcome)
	assert.Equal(t, DefaultTiming.MismatchDelay, p.Delay)

	s, done := b.ResolvePending(p.Generation)
	assert.Nil(t, done)
	assert.False(t, s.Cards[a1].Revealed)
	assert.False(t, s.Cards[b1].Revealed)
	assert.False(t, s.Cards[a1].Matched)
	assert.Empty(t, s.Selection)
	assert.Equal(t, 1, s.Moves)
}

func TestFlip_Guards(t *testing.T) {
	b := newBoard(t, "A", "B", "C")
	a1, a2 := pairOf(t, b.Snapshot(), "A")
	c1, _ := pairOf(t, b.Snapshot(), "C")

	// out of range
	s, p := b.Flip(-1)
	assert.Nil(t, p)
	assert.Equal(t, StatusIdle, s.Status)
	s, _ = b.Flip(6)
	assert.Equal(t, StatusIdle, s.Status)

	// same card twice
	b.Flip(a1)
	before := b.Snapshot()
	s, p = b.Flip(a1)
	assert.Nil(t, p)
	assert.Equal(t, before, s)

	// third card while a pair is pending
	_, p = b.Flip(a2)
	require.NotNil(t, p)
	before = b.Snapshot()
	s, _ = b.Flip(c1)
	assert.Equal(t, before, s)
	assert.Len(t, s.Selection, 2)

	// matched card
	b.ResolvePending(p.Generation)
	before = b.Snapshot()
	s, _ = b.Flip(a1)
	assert.Equal(t, before, s)
}

func TestMoveCounting(t *testing.T) {
	b := newBoard(t, "A", "B", "C")
	a1, _ := pairOf(t, b.Snapshot(), "A")
	b1, _ := pairOf(t, b.Snapshot(), "B")
	c1, _ := pairOf(t, b.Snapshot(), "C")

	for i, pair := range [][2]int{{a1, b1}, {b1, c1}, {c1, a1}} {
		s, p := b.Flip(pair[0])
		assert.Equal(t, i, s.Moves, "single flip must not count")
		s, p = b.Flip(pair[1])
		require.NotNil(t, p)
		assert.Equal(t, i+1, s.Moves)
		b.ResolvePending(p.Generation)
	}
}

func TestCompletion_AfterRandomPlay(t *testing.T) {
	tokens := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	r := rand.New(rand.NewPCG(42, 42))
	b, err := NewBoard(tokens, WithRand(r))
	require.NoError(t, err)

	completions := 0
	for step := 0; step < 10000 && b.Status() != StatusComplete; step++ {
		_, p := b.Flip(r.IntN(16))
		if p == nil {
			continue
		}
		s, done := b.ResolvePending(p.Generation)
		if done != nil {
			completions++
		}
		matched := 0
		for _, c := range s.Cards {
			if c.Matched {
				matched++
			}
		}
		assert.Equal(t, matched == len(s.Cards), s.Status == StatusComplete)
	}
	assert.Equal(t, StatusComplete, b.Status())
	assert.Equal(t, 1, completions)

	// terminal: flips and ticks do nothing
	before := b.Snapshot()
	s, p := b.Flip(0)
	assert.Nil(t, p)
	assert.Equal(t, before, s)
	assert.Equal(t, before, b.Tick())
}

func TestResolvePending_StaleGenerationIgnored(t *testing.T) {
	b := newBoard(t, "A", "B")
	a1, a2 := pairOf(t, b.Snapshot(), "A")
	b.Flip(a1)
	_, p := b.Flip(a2)
	require.NotNil(t, p)

	require.NoError(t, b.Deal([]string{"A", "B"}))
	fresh := b.Snapshot()

	s, done := b.ResolvePending(p.Generation)
	assert.Nil(t, done)
	assert.Equal(t, fresh, s)
	_, ok := b.Pending()
	assert.False(t, ok)
}

func TestResolvePending_WithoutPendingIsNoop(t *testing.T) {
	b := newBoard(t, "A", "B")
	before := b.Snapshot()
	s, done := b.ResolvePending(b.Generation())
	assert.Nil(t, done)
	assert.Equal(t, before, s)
}

func TestShuffleWindow(t *testing.T) {
	b := newBoard(t, "A", "B")
	a1, a2 := pairOf(t, b.Snapshot(), "A")
	b.Flip(a1)
	_, p := b.Flip(a2)
	require.NotNil(t, p)

	gen := b.BeginShuffle()
	s := b.Snapshot()
	assert.True(t, s.Shuffling)
	assert.Equal(t, StatusIdle, s.Status)
	for _, c := range s.Cards {
		assert.False(t, c.Revealed)
	}

	// flips are rejected and the old resolution is stale
	s, p2 := b.Flip(0)
	assert.Nil(t, p2)
	assert.False(t, s.Cards[0].Revealed)
	_, done := b.ResolvePending(p.Generation)
	assert.Nil(t, done)

	// an older shuffle cannot finish a newer one
	_, dealt := b.FinishShuffle(gen - 1)
	assert.False(t, dealt)

	s, dealt = b.FinishShuffle(gen)
	assert.True(t, dealt)
	assert.False(t, s.Shuffling)
	assert.Equal(t, 0, s.Moves)
	assert.Greater(t, s.Generation, gen)

	_, dealt = b.FinishShuffle(gen)
	assert.False(t, dealt)
}

func TestTick(t *testing.T) {
	b := newBoard(t, "A", "B")
	assert.Equal(t, 0, b.Tick().Elapsed, "idle board does not tick")

	b.Flip(0)
	b.Tick()
	s := b.Tick()
	assert.Equal(t, 2, s.Elapsed)
}

func TestSnapshot_IsACopy(t *testing.T) {
	b := newBoard(t, "A", "B")
	b.Flip(0)
	s := b.Snapshot()
	s.Cards[0].Token = "Z"
	s.Selection[0] = 3

	fresh := b.Snapshot()
	assert.NotEqual(t, "Z", fresh.Cards[0].Token)
	assert.Equal(t, []int{0}, fresh.Selection)
}

func TestFormatElapsed(t *testing.T) {
	cases := map[int]string{0: "0:00", 9: "0:09", 61: "1:01", 600: "10:00", -3: "0:00"}
	keys := make([]int, 0, len(cases))
	for k := range cases {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		assert.Equal(t, cases[k], FormatElapsed(k))
	}
}

func TestShareText(t *testing.T) {
	assert.Equal(t, "Just completed EthOS Faces in under 30 seconds!", ShareText(0))
	assert.Equal(t, "Just completed EthOS Faces in under 30 seconds!", ShareText(29))
	assert.Equal(t, "Just completed EthOS Faces in 0:30!", ShareText(30))
	assert.Equal(t, "Just completed EthOS Faces in 2:05!", ShareText(125))
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Session drives a Board with real timers: a one-second clock while the
// deal is being played, deferred pair resolution, and the shuffle window
// before a re-deal. All board access goes through mu because timer
// callbacks run on their own goroutines.
type Session struct {
	mu         sync.Mutex
	board      *Board
	tickEvery  time.Duration
	onComplete func(Completion)
	stopTick   context.CancelFunc
	closed     bool
	log        zerolog.Logger
}

// SessionOption customises a Session.
type SessionOption func(*Session)

// OnComplete registers fn to run (outside the session lock) when a deal is completed.
func OnComplete(fn func(Completion)) SessionOption {
	return func(s *Session) { s.onComplete = fn }
}

// WithTickInterval shortens the clock period, for tests.
func WithTickInterval(d time.Duration) SessionOption {
	return func(s *Session) { s.tickEvery = d }
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// NewSession wraps b. The session owns b from here on.
func NewSession(b *Board, opts ...SessionOption) *Session {
	s := &Session{board: b, tickEvery: time.Second, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Flip forwards to Board.Flip, starting the clock on the first flip and
// scheduling resolution of a completed pair.
func (s *Session) Flip(id int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.board.Snapshot()
	}

	snap, p := s.board.Flip(id)
	if snap.Status == StatusPlaying && s.stopTick == nil {
		s.startClock(snap.Generation)
	}
	if p != nil {
		gen := p.Generation
		time.AfterFunc(p.Delay, func() { s.resolve(gen) })
		s.log.Debug().Int("move", snap.Moves).Str("outcome", string(p.Outcome)).Msg("pair pending")
	}
	return snap
}

// Reset turns the board face down and re-deals after the shuffle delay.
func (s *Session) Reset() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.board.Snapshot()
	}

	s.stopClock()
	gen := s.board.BeginShuffle()
	time.AfterFunc(s.board.Timing().ShuffleDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		if _, dealt := s.board.FinishShuffle(gen); dealt {
			s.log.Debug().Uint64("generation", s.board.Generation()).Msg("board dealt")
		}
	})
	return s.board.Snapshot()
}

// Snapshot returns the current board state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Snapshot()
}

// Close stops the clock; pending timers become no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopClock()
}

func (s *Session) resolve(gen uint64) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	_, done := s.board.ResolvePending(gen)
	if done != nil {
		s.stopClock()
	}
	cb := s.onComplete
	s.mu.Unlock()

	if done != nil {
		s.log.Info().Int("moves", done.Moves).Int("elapsed", done.Elapsed).Msg("board complete")
		if cb != nil {
			cb(*done)
		}
	}
}

// startClock must be called with mu held.
func (s *Session) startClock(gen uint64) {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopTick = cancel
	go func() {
		t := time.NewTicker(s.tickEvery)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.mu.Lock()
				if s.board.Generation() == gen {
					s.board.Tick()
				}
				s.mu.Unlock()
			}
		}
	}()
}

// stopClock must be called with mu held.
func (s *Session) stopClock() {
	if s.stopTick != nil {
		s.stopTick()
		s.stopTick = nil
	}
}

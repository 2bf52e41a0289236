// internal/memory/types.go
//
// Type definitions for the pair-matching engine.

package memory

import (
	"fmt"
	"time"
)

// Status represents the lifecycle of a deal.
//   - "idle":     dealt, no card flipped yet.
//   - "playing":  the first card has been flipped; the clock runs.
//   - "complete": every card is matched.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusPlaying  Status = "playing"
	StatusComplete Status = "complete"
)

// Card is one face on the board. ID is its position after the shuffle.
type Card struct {
	ID       int    `json:"id"`
	Token    string `json:"token"`
	Revealed bool   `json:"revealed"`
	Matched  bool   `json:"matched"`
}

// Outcome is the expected result of a two-card selection.
type Outcome string

const (
	OutcomeMatch    Outcome = "match"
	OutcomeMismatch Outcome = "mismatch"
)

// Timing holds the fixed delays a driver waits before calling back into the board.
type Timing struct {
	MatchDelay    time.Duration // both faces stay up before locking as matched
	MismatchDelay time.Duration // both faces stay up before flipping back
	ShuffleDelay  time.Duration // cards stay face down before a re-deal
}

// DefaultTiming mirrors the delays the front-end animations are built around.
var DefaultTiming = Timing{
	MatchDelay:    1000 * time.Millisecond,
	MismatchDelay: 1500 * time.Millisecond,
	ShuffleDelay:  1000 * time.Millisecond,
}

// Pending describes a resolution the driver must schedule after Delay.
// Generation ties it to the deal it was created in.
type Pending struct {
	Generation uint64
	Cards      [2]int
	Outcome    Outcome
	Delay      time.Duration
}

// Completion is reported once, when the last pair is matched.
type Completion struct {
	Moves      int
	Elapsed    int    // seconds
	Generation uint64 // deal that was completed
}

// Snapshot is a copy of the board after a transition.
type Snapshot struct {
	Cards      []Card
	Selection  []int
	Moves      int
	Elapsed    int
	Status     Status
	Shuffling  bool
	Generation uint64
}

// FormatElapsed renders seconds as m:ss.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ShareText is the brag line offered after a cleared board.
// Boards cleared in under 30 seconds are not timed to the second.
func ShareText(seconds int) string {
	t := FormatElapsed(seconds)
	if seconds < 30 {
		t = "under 30 seconds"
	}
	return "Just completed EthOS Faces in " + t + "!"
}

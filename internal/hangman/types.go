// internal/hangman/types.go
//
// Core type definitions for the word-guessing engine.
// Defines:
//   - Status: lifecycle of a round (playing → won/lost).
//   - Entry: one dictionary word with its definition.
//   - Snapshot: immutable view of a round handed to the presentation layer.

package hangman

// MaxWrong is the number of wrong letters that ends a round.
const MaxWrong = 6

// Status represents where a round is in its lifecycle.
// Possible values:
//   - "playing": guesses are accepted.
//   - "won":     every letter of the word has been guessed.
//   - "lost":    MaxWrong wrong letters were guessed first.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Finished reports whether s is a terminal status.
func (s Status) Finished() bool { return s == StatusWon || s == StatusLost }

// Entry is a single dictionary item.
type Entry struct {
	Word       string `json:"word"`       // Secret word (uppercase).
	Definition string `json:"definition"` // Revealed once the round is over.
}

// Snapshot is a copy of the round state after a transition.
// Mutating a Snapshot never affects the engine.
type Snapshot struct {
	Entry     Entry    // Active entry for this round.
	Mask      []string // One element per character of the word; "_" when hidden.
	Guessed   []string // Guessed letters in alphabetical order.
	Wrong     int      // Wrong guesses so far (0..MaxWrong).
	Remaining int      // MaxWrong - Wrong.
	Status    Status
}

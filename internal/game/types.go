// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - State: the engine's state-machine position.
//   - Board dimensions.

package game

const (
	Rows        = 6 // guesses per game
	Cols        = 5 // letters per guess
	Cells       = Rows * Cols
	MaxAttempts = Rows
)

// Mark represents the evaluation result for a single letter in a guess.
//   - "correct": letter is in the target at the same position.
//   - "present": letter is in the target at a different, unmatched position.
//   - "absent":  letter has no unmatched occurrence in the target.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// State is the logical position of the engine's state machine.
type State int

const (
	AwaitingInput State = iota // current row not full
	RowComplete                // current row full, waiting for submit
	Won                        // terminal
	Lost                       // terminal
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting_input"
	case RowComplete:
		return "row_complete"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "unknown"
}

// Terminal reports whether no further input is accepted.
func (s State) Terminal() bool { return s == Won || s == Lost }

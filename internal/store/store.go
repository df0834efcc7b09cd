// internal/store/store.go
//
// Game history for the running process.
//
// Every finished game is recorded as a Result so the board can show
// statistics (games played, win rate, streaks, guess distribution).
// History lives only as long as the process: the memory store keeps a
// slice, the SQLite store an in-memory database.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenktu/wordle-game/internal/game"
)

// ErrInvalidResult is returned by Record for results that cannot come
// out of a finished game.
var ErrInvalidResult = errors.New("store: invalid result")

// defaultRecentLimit applies when Recent is called with limit <= 0.
const defaultRecentLimit = 20

// Result is one finished game.
type Result struct {
	Target     string    `json:"target"`
	Guesses    int       `json:"guesses"` // accepted guesses, 1..6
	Won        bool      `json:"won"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Stats summarizes the recorded history.
type Stats struct {
	Played        int            `json:"played"`
	Wins          int            `json:"wins"`
	CurrentStreak int            `json:"currentStreak"`
	MaxStreak     int            `json:"maxStreak"`
	Distribution  [game.Rows]int `json:"distribution"` // wins by guess count, index 0 = 1 guess
}

// WinRate returns the percentage of games won, 0 when nothing was played.
func (s Stats) WinRate() int {
	if s.Played == 0 {
		return 0
	}
	return s.Wins * 100 / s.Played
}

// Store defines the history interface.
// Implementations are safe for concurrent use.
type Store interface {
	// Record appends a finished game.
	Record(ctx context.Context, r Result) error

	// Stats summarizes every recorded game.
	Stats(ctx context.Context) (Stats, error)

	// Recent returns up to limit results, newest first.
	Recent(ctx context.Context, limit int) ([]Result, error)
}

func validate(r Result) error {
	if r.Guesses < 1 || r.Guesses > game.MaxAttempts {
		return fmt.Errorf("%w: guesses %d out of range", ErrInvalidResult, r.Guesses)
	}
	if r.Target == "" {
		return fmt.Errorf("%w: empty target", ErrInvalidResult)
	}
	return nil
}

// streaks walks results oldest first and returns the trailing and the
// longest run of wins.
func streaks(won []bool) (current, longest int) {
	for _, w := range won {
		if w {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return current, longest
}

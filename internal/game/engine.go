// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Own the 6x5 letter grid, the write cursor, the target and the attempt count.
//   - Accept letter entry/removal and guess submission.
//   - Score guesses with the two-pass Wordle algorithm (see Score).
//   - Track state transitions: awaiting input → row complete → won/lost.
//   - Notify subscribed observers of every state change.
//
// Notes:
//   - The engine is single-threaded: operations must not run concurrently,
//     and observers must not call back into the engine from Notify.
//   - Invalid operations never return errors. Submissions report them with
//     an InvalidGuess event; edits past the board edges are silent no-ops.
package game

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cenktu/wordle-game/internal/words"
)

// Engine is the guess-evaluation state machine for one player.
type Engine struct {
	dict   *words.Dictionary
	picker words.Picker
	logger zerolog.Logger
	reveal bool

	grid     [Cells]rune // 0 marks an empty cell
	row, col int
	target   string
	attempts int
	state    State

	observers []subscription
	nextSubID int
}

type subscription struct {
	id int
	o  Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithPicker sets how targets are drawn from the dictionary.
// The default draws uniformly at random.
func WithPicker(p words.Picker) Option {
	return func(e *Engine) { e.picker = p }
}

// WithLogger sets the engine logger. The default is the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRevealTarget makes TargetWord report the answer while the game is
// still in progress. Intended for debugging.
func WithRevealTarget(reveal bool) Option {
	return func(e *Engine) { e.reveal = reveal }
}

// New constructs an engine over dict and starts the first game.
// A nil or empty dictionary is a configuration error.
func New(dict *words.Dictionary, opts ...Option) (*Engine, error) {
	if dict == nil || dict.Len() == 0 {
		return nil, words.ErrEmptyDictionary
	}
	e := &Engine{
		dict:   dict,
		picker: words.RandomPicker{},
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.NewGame()
	return e, nil
}

// Subscribe registers o for notifications and returns a function that
// removes it again. Observers are notified in registration order.
func (e *Engine) Subscribe(o Observer) (unsubscribe func()) {
	e.nextSubID++
	id := e.nextSubID
	e.observers = append(e.observers, subscription{id: id, o: o})
	return func() {
		for i, s := range e.observers {
			if s.id == id {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) emit(evs ...Event) {
	subs := append([]subscription(nil), e.observers...)
	for _, ev := range evs {
		for _, s := range subs {
			s.o.Notify(ev)
		}
	}
}

// ----------------------------- commands ------------------------------------

// AddLetter writes r at the cursor and advances it. Lowercase letters are
// folded to uppercase. It is a silent no-op when r is not an ASCII letter,
// the current row is full, or the game is over.
func (e *Engine) AddLetter(r rune) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return
	}
	if e.state != AwaitingInput || e.col >= Cols || e.row >= Rows {
		return
	}
	e.grid[index(e.row, e.col)] = r
	e.col++
	if e.col == Cols {
		e.state = RowComplete
	}
	e.emit(Event{Kind: GridChanged}, Event{Kind: CurrentColChanged})
}

// RemoveLetter clears the cell before the cursor and moves the cursor
// back. It is a silent no-op at column 0 or once the game is over.
func (e *Engine) RemoveLetter() {
	if e.state.Terminal() || e.col == 0 {
		return
	}
	e.col--
	e.grid[index(e.row, e.col)] = 0
	e.state = AwaitingInput
	e.emit(Event{Kind: GridChanged}, Event{Kind: CurrentColChanged})
}

// SubmitGuess scores the current row against the target.
//
// Rejections (incomplete row, word not in the dictionary, game already
// over) emit InvalidGuess and change nothing. An accepted guess emits
// GuessEvaluated, counts as an attempt, and then either ends the game
// (GameOver) or advances the cursor to the start of the next row.
func (e *Engine) SubmitGuess() {
	if e.state.Terminal() {
		e.reject(ReasonGameOver)
		return
	}
	if e.col != Cols {
		e.reject(ReasonIncomplete)
		return
	}

	guess := e.Row(e.row)
	e.logger.Debug().Str("guess", guess).Int("row", e.row).Msg("submitting guess")
	if !e.dict.Contains(guess) {
		e.reject(ReasonNotAWord)
		return
	}

	marks := Score(guess, e.target)
	e.emit(Event{Kind: GuessEvaluated, Marks: marks})
	e.attempts++

	switch {
	case allCorrect(marks):
		e.state = Won
		e.logger.Debug().Int("attempts", e.attempts).Msg("game won")
		e.emit(Event{Kind: GameOver, Won: true})
	case e.attempts >= MaxAttempts:
		e.state = Lost
		e.logger.Debug().Str("target", e.target).Msg("game lost")
		e.emit(Event{Kind: GameOver, Won: false})
	default:
		e.row++
		e.col = 0
		e.state = AwaitingInput
		e.emit(
			Event{Kind: CurrentRowChanged},
			Event{Kind: CurrentColChanged},
			Event{Kind: GridChanged},
		)
	}
}

func (e *Engine) reject(reason string) {
	e.logger.Debug().Str("reason", reason).Msg("invalid guess")
	e.emit(Event{Kind: InvalidGuess, Reason: reason})
}

// NewGame discards the current game and starts a fresh one with a newly
// drawn target. Valid in any state.
func (e *Engine) NewGame() {
	e.target = e.dict.Pick(e.picker)
	e.attempts = 0
	e.row, e.col = 0, 0
	e.grid = [Cells]rune{}
	e.state = AwaitingInput

	e.logger.Info().Int("dictionary", e.dict.Len()).Msg("new game started")
	e.logger.Debug().Str("target", e.target).Msg("target drawn")
	e.emit(
		Event{Kind: GridChanged},
		Event{Kind: CurrentRowChanged},
		Event{Kind: CurrentColChanged},
		Event{Kind: TargetWordChanged},
	)
}

// ------------------------------ queries ------------------------------------

// index maps (row, col) to the flat grid index row*Cols+col.
func index(row, col int) int { return row*Cols + col }

// Cell returns the letter at (row, col), or 0 when the cell is empty or
// out of range.
func (e *Engine) Cell(row, col int) rune {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return 0
	}
	return e.grid[index(row, col)]
}

// Row returns the letters entered in row, empty cells skipped.
func (e *Engine) Row(row int) string {
	buf := make([]rune, 0, Cols)
	for c := 0; c < Cols; c++ {
		if r := e.Cell(row, c); r != 0 {
			buf = append(buf, r)
		}
	}
	return string(buf)
}

// Grid returns the 30 cells in row-major order; empty cells are "".
func (e *Engine) Grid() []string {
	out := make([]string, Cells)
	for i, r := range e.grid {
		if r != 0 {
			out[i] = string(r)
		}
	}
	return out
}

// CurrentRow returns the row the cursor is in.
func (e *Engine) CurrentRow() int { return e.row }

// CurrentCol returns the cursor column, in [0, Cols].
func (e *Engine) CurrentCol() int { return e.col }

// Attempts returns the number of accepted guesses in this game.
func (e *Engine) Attempts() int { return e.attempts }

// State returns the current state-machine position.
func (e *Engine) State() State { return e.state }

// TargetWord returns the answer once the game is over, or at any time when
// the engine was built WithRevealTarget. ok is false when it is withheld.
func (e *Engine) TargetWord() (word string, ok bool) {
	if e.reveal || e.state.Terminal() {
		return e.target, true
	}
	return "", false
}

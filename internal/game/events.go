package game

// EventKind identifies a notification emitted by the Engine.
type EventKind int

const (
	GridChanged EventKind = iota
	CurrentRowChanged
	CurrentColChanged
	TargetWordChanged
	GuessEvaluated // Marks set
	GameOver       // Won set
	InvalidGuess   // Reason set
)

var eventNames = [...]string{
	GridChanged:       "grid_changed",
	CurrentRowChanged: "current_row_changed",
	CurrentColChanged: "current_col_changed",
	TargetWordChanged: "target_word_changed",
	GuessEvaluated:    "guess_evaluated",
	GameOver:          "game_over",
	InvalidGuess:      "invalid_guess",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Reasons carried by InvalidGuess events.
const (
	ReasonIncomplete = "guess not complete"
	ReasonNotAWord   = "not in dictionary"
	ReasonGameOver   = "game is over"
)

// Event is a one-shot notification. Only the field matching Kind is set.
type Event struct {
	Kind   EventKind
	Marks  []Mark
	Won    bool
	Reason string
}

// Observer receives engine notifications synchronously, on the goroutine
// that invoked the engine operation.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Notify calls f(e).
func (f ObserverFunc) Notify(e Event) { f(e) }

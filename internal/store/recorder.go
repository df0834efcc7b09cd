package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cenktu/wordle-game/internal/game"
)

// Source is the read side of the engine the Recorder needs.
type Source interface {
	TargetWord() (string, bool)
	Attempts() int
}

// Recorder is a game.Observer that writes a Result to a Store whenever a
// game ends. Write failures are logged; they never disturb play.
type Recorder struct {
	ctx   context.Context
	store Store
	src   Source
	now   func() time.Time
}

// NewRecorder returns a Recorder reading finished games from src.
func NewRecorder(ctx context.Context, st Store, src Source) *Recorder {
	return &Recorder{ctx: ctx, store: st, src: src, now: time.Now}
}

// Notify implements game.Observer.
func (r *Recorder) Notify(e game.Event) {
	if e.Kind != game.GameOver {
		return
	}
	target, _ := r.src.TargetWord()
	res := Result{
		Target:     target,
		Guesses:    r.src.Attempts(),
		Won:        e.Won,
		FinishedAt: r.now().UTC(),
	}
	if err := r.store.Record(r.ctx, res); err != nil {
		log.Warn().Err(err).Str("target", target).Msg("record game result")
		return
	}
	log.Debug().Bool("won", res.Won).Int("guesses", res.Guesses).Msg("game recorded")
}

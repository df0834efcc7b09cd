// Package tui draws the game board in a terminal and forwards key presses
// to the engine.
//
// The View is an engine observer: it keeps the marks of every evaluated
// row (the engine hands them out once and does not retain them) and
// redraws after each handled event.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/cenktu/wordle-game/internal/game"
	"github.com/cenktu/wordle-game/internal/store"
)

// Layout
const (
	boardLeft = 2
	boardTop  = 2
	cellWidth = 4 // three columns of tile plus one of gap
	rowHeight = 2
	statusTop = boardTop + game.Rows*rowHeight + 1
)

var (
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleEmpty   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTyped   = tcell.StyleDefault.Bold(true)
	styleCursor  = tcell.StyleDefault.Underline(true)
	styleCorrect = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorWhite).Bold(true)
	stylePresent = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack).Bold(true)
	styleAbsent  = tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// View renders one engine on one screen.
type View struct {
	ctx    context.Context
	screen tcell.Screen
	eng    *game.Engine
	stats  store.Store // optional

	marks  [game.Rows][]game.Mark
	status string
	failed bool // status describes a rejected guess
	unsub  func()
}

// New builds a View and subscribes it to eng. st may be nil, in which
// case no statistics are shown.
func New(ctx context.Context, screen tcell.Screen, eng *game.Engine, st store.Store) *View {
	v := &View{ctx: ctx, screen: screen, eng: eng, stats: st}
	v.unsub = eng.Subscribe(v)
	return v
}

// Close unsubscribes the view from the engine.
func (v *View) Close() {
	if v.unsub != nil {
		v.unsub()
		v.unsub = nil
	}
}

// Notify implements game.Observer.
func (v *View) Notify(e game.Event) {
	switch e.Kind {
	case game.GuessEvaluated:
		// Emitted before the cursor advances, so CurrentRow is the scored row.
		v.marks[v.eng.CurrentRow()] = e.Marks
	case game.InvalidGuess:
		v.status, v.failed = reasonText(e.Reason), true
	case game.GameOver:
		target, _ := v.eng.TargetWord()
		if e.Won {
			v.status = fmt.Sprintf("Solved in %d/%d!  Ctrl-N for a new game.", v.eng.Attempts(), game.MaxAttempts)
		} else {
			v.status = fmt.Sprintf("Out of guesses. The word was %s.  Ctrl-N for a new game.", target)
		}
		v.failed = false
	case game.TargetWordChanged:
		v.marks = [game.Rows][]game.Mark{}
		v.status, v.failed = "", false
	case game.GridChanged:
		if v.failed {
			v.status, v.failed = "", false
		}
	}
}

func reasonText(reason string) string {
	switch reason {
	case game.ReasonIncomplete:
		return "Not enough letters"
	case game.ReasonNotAWord:
		return "Not in word list"
	case game.ReasonGameOver:
		return "Game over. Ctrl-N for a new game"
	}
	return "Invalid guess"
}

// HandleEvent applies ev to the engine and redraws. It returns false when
// the player asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			v.eng.SubmitGuess()
		case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
			v.eng.RemoveLetter()
		case tcell.KeyCtrlN:
			v.eng.NewGame()
		case tcell.KeyRune:
			v.eng.AddLetter(ev.Rune())
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	v.Draw()
	return true
}

// Run draws the board and processes input until the player quits or ctx
// is cancelled. The caller owns the screen's Init and Fini.
func (v *View) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil { // screen finalized
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return nil
			}
		}
	}
}

// Draw renders the whole board.
func (v *View) Draw() {
	v.screen.Clear()
	drawText(v.screen, boardLeft, 0, styleTitle, "W O R D L E")

	for r := 0; r < game.Rows; r++ {
		for c := 0; c < game.Cols; c++ {
			v.drawCell(r, c)
		}
	}

	if v.status != "" {
		style := styleTitle
		if v.failed {
			style = styleError
		}
		drawText(v.screen, boardLeft, statusTop, style, v.status)
	}
	if line := v.statsLine(); line != "" {
		drawText(v.screen, boardLeft, statusTop+1, styleHelp, line)
	}
	drawText(v.screen, boardLeft, statusTop+3, styleHelp, "type letters · Enter submit · Backspace delete · Ctrl-N new game · Esc quit")
	v.screen.Show()
}

func (v *View) drawCell(r, c int) {
	x := boardLeft + c*cellWidth
	y := boardTop + r*rowHeight

	ch := v.eng.Cell(r, c)
	style := styleEmpty
	switch {
	case v.marks[r] != nil:
		style = markStyle(v.marks[r][c])
	case ch != 0:
		style = styleTyped
	case r == v.eng.CurrentRow() && c == v.eng.CurrentCol() && !v.eng.State().Terminal():
		style = styleCursor
	}
	if ch == 0 {
		ch = '·'
	}
	v.screen.SetContent(x, y, ' ', nil, style)
	v.screen.SetContent(x+1, y, ch, nil, style)
	v.screen.SetContent(x+2, y, ' ', nil, style)
}

func markStyle(m game.Mark) tcell.Style {
	switch m {
	case game.MarkCorrect:
		return styleCorrect
	case game.MarkPresent:
		return stylePresent
	}
	return styleAbsent
}

func (v *View) statsLine() string {
	if v.stats == nil {
		return ""
	}
	st, err := v.stats.Stats(v.ctx)
	if err != nil {
		log.Warn().Err(err).Msg("load stats")
		return ""
	}
	if st.Played == 0 {
		return ""
	}
	dist := make([]string, len(st.Distribution))
	for i, n := range st.Distribution {
		dist[i] = fmt.Sprintf("%d:%d", i+1, n)
	}
	return fmt.Sprintf("Played %d  Win %d%%  Streak %d  Best %d  [%s]",
		st.Played, st.WinRate(), st.CurrentStreak, st.MaxStreak, strings.Join(dist, " "))
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

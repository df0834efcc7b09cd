package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/cenktu/wordle-game/internal/game"
	"github.com/cenktu/wordle-game/internal/store"
	"github.com/cenktu/wordle-game/internal/words"
)

func createTestView(t *testing.T, target string) (*View, tcell.SimulationScreen, *game.Engine, store.Store) {
	t.Helper()
	d, err := words.New([]string{"CRANE", "HOUSE", "SPEED", "ERASE"})
	if err != nil {
		t.Fatalf("dictionary: %v", err)
	}
	idx := -1
	for i, w := range d.Words() {
		if w == target {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("target %s not in dictionary", target)
	}
	eng, err := game.New(d,
		game.WithPicker(words.PickerFunc(func(int) int { return idx })),
		game.WithLogger(zerolog.Nop()),
	)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(100, 30)
	t.Cleanup(screen.Fini)

	st := store.NewMemoryStore()
	eng.Subscribe(store.NewRecorder(context.Background(), st, eng))
	v := New(context.Background(), screen, eng, st)
	t.Cleanup(v.Close)
	v.Draw()
	return v, screen, eng, st
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func typeKeys(v *View, s string) {
	for _, r := range s {
		v.HandleEvent(runeKey(r))
	}
}

// line returns the text of screen row y.
func line(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func cellAt(s tcell.SimulationScreen, row, col int) (rune, tcell.Color) {
	x := boardLeft + col*cellWidth + 1
	y := boardTop + row*rowHeight
	r, _, style, _ := s.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return r, bg
}

func TestView_TypingFillsRow(t *testing.T) {
	v, screen, eng, _ := createTestView(t, "CRANE")

	typeKeys(v, "hou")
	if eng.CurrentCol() != 3 {
		t.Fatalf("Expected col 3, got %d", eng.CurrentCol())
	}
	if r, _ := cellAt(screen, 0, 0); r != 'H' {
		t.Errorf("Expected H drawn at (0,0), got %q", r)
	}
	if r, _ := cellAt(screen, 0, 3); r != '·' {
		t.Errorf("Expected empty marker at (0,3), got %q", r)
	}

	v.HandleEvent(key(tcell.KeyBackspace2))
	if eng.CurrentCol() != 2 {
		t.Errorf("Expected backspace to remove a letter, col=%d", eng.CurrentCol())
	}
}

func TestView_SubmitColorsRow(t *testing.T) {
	v, screen, eng, _ := createTestView(t, "SPEED")

	typeKeys(v, "erase")
	v.HandleEvent(key(tcell.KeyEnter))

	if eng.CurrentRow() != 1 {
		t.Fatalf("Expected row 1, got %d", eng.CurrentRow())
	}
	wantBg := []tcell.Color{
		tcell.ColorYellow, tcell.ColorDarkGray, tcell.ColorDarkGray, tcell.ColorYellow, tcell.ColorYellow,
	}
	for c, want := range wantBg {
		if _, bg := cellAt(screen, 0, c); bg != want {
			t.Errorf("Cell (0,%d): expected background %v, got %v", c, want, bg)
		}
	}
}

func TestView_InvalidGuessStatus(t *testing.T) {
	v, screen, _, _ := createTestView(t, "CRANE")

	typeKeys(v, "cr")
	v.HandleEvent(key(tcell.KeyEnter))
	if got := line(screen, statusTop); !strings.Contains(got, "Not enough letters") {
		t.Errorf("Expected incomplete status, got %q", got)
	}

	typeKeys(v, "a")
	if got := line(screen, statusTop); got != "" {
		t.Errorf("Expected status cleared after typing, got %q", got)
	}
}

func TestView_WinShowsStats(t *testing.T) {
	v, screen, eng, st := createTestView(t, "CRANE")

	typeKeys(v, "crane")
	v.HandleEvent(key(tcell.KeyEnter))

	if eng.State() != game.Won {
		t.Fatalf("Expected Won, got %s", eng.State())
	}
	if got := line(screen, statusTop); !strings.Contains(got, "Solved in 1/6") {
		t.Errorf("Expected win status, got %q", got)
	}
	if got := line(screen, statusTop+1); !strings.Contains(got, "Played 1") || !strings.Contains(got, "Win 100%") {
		t.Errorf("Expected stats line, got %q", got)
	}
	stats, _ := st.Stats(context.Background())
	if stats.Wins != 1 {
		t.Errorf("Expected recorded win, got %+v", stats)
	}

	v.HandleEvent(key(tcell.KeyCtrlN))
	if eng.State() != game.AwaitingInput || eng.Attempts() != 0 {
		t.Errorf("Expected new game, got state=%s attempts=%d", eng.State(), eng.Attempts())
	}
	if _, bg := cellAt(screen, 0, 0); bg == tcell.ColorGreen {
		t.Error("Expected marks cleared on new game")
	}
}

func TestView_LossRevealsTarget(t *testing.T) {
	v, screen, _, _ := createTestView(t, "CRANE")

	for i := 0; i < game.MaxAttempts; i++ {
		typeKeys(v, "house")
		v.HandleEvent(key(tcell.KeyEnter))
	}
	if got := line(screen, statusTop); !strings.Contains(got, "The word was CRANE") {
		t.Errorf("Expected loss status revealing CRANE, got %q", got)
	}
}

func TestView_EscapeQuits(t *testing.T) {
	v, _, _, _ := createTestView(t, "CRANE")
	if v.HandleEvent(key(tcell.KeyEscape)) {
		t.Error("Expected Escape to quit")
	}
	if !v.HandleEvent(runeKey('x')) {
		t.Error("Expected letters to keep running")
	}
}

func TestView_RunStopsOnEscape(t *testing.T) {
	v, screen, _, _ := createTestView(t, "CRANE")

	done := make(chan error, 1)
	go func() { done <- v.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Escape")
	}
}

func TestView_RunStopsOnCancel(t *testing.T) {
	v, _, _, _ := createTestView(t, "CRANE")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- v.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cenktu/wordle-game/internal/config"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), append([]string{"wordle"}, args...))
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	tests := []struct {
		guess, target string
		want          string
	}{
		{"erase", "speed", "present absent absent present present"},
		{"PAPER", "apple", "present present correct present absent"},
		{"crane", "CRANE", "correct correct correct correct correct"},
	}
	for _, tt := range tests {
		out, err := runCLI(t, "score", tt.guess, tt.target)
		if err != nil {
			t.Fatalf("score %s %s failed: %v", tt.guess, tt.target, err)
		}
		if !strings.Contains(out, tt.want) {
			t.Errorf("score %s %s: expected %q in output, got %q", tt.guess, tt.target, tt.want, out)
		}
	}
}

func TestScoreCommand_BadArgs(t *testing.T) {
	if _, err := runCLI(t, "score", "crane"); err == nil {
		t.Error("Expected error for missing target")
	}
	if _, err := runCLI(t, "score", "cranes", "crane"); err == nil {
		t.Error("Expected error for six-letter guess")
	}
}

func TestWordsCommand(t *testing.T) {
	chdir(t, t.TempDir()) // keep any developer .env out of the test

	out, err := runCLI(t, "words")
	if err != nil {
		t.Fatalf("words failed: %v", err)
	}
	if !strings.Contains(out, "(embedded)") {
		t.Errorf("Expected embedded source, got %q", out)
	}

	path := filepath.Join(t.TempDir(), "dict.txt")
	if err := os.WriteFile(path, []byte("crane\nspeed\nnope\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err = runCLI(t, "--words", path, "words")
	if err != nil {
		t.Fatalf("words failed: %v", err)
	}
	if !strings.Contains(out, "dictionary: 2 words") {
		t.Errorf("Expected 2 words, got %q", out)
	}
}

func TestWordsCommand_EmptyDictionaryFails(t *testing.T) {
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("cat\ndog\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := runCLI(t, "--words", path, "words"); err == nil {
		t.Error("Expected error for dictionary without five-letter words")
	}
}

func TestNewEngine_Daily(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	if err := os.WriteFile(path, []byte("crane\nspeed\napple\npaper\nrobin\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := config.Config{WordsFile: path, Daily: true, DailySalt: "salt", RevealTarget: true}
	dict, err := loadDictionary(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	first, err := newEngine(cfg, dict)
	if err != nil {
		t.Fatalf("newEngine failed: %v", err)
	}
	second, err := newEngine(cfg, dict)
	if err != nil {
		t.Fatalf("newEngine failed: %v", err)
	}
	a, _ := first.TargetWord()
	b, _ := second.TargetWord()
	if a != b {
		t.Errorf("Expected daily games to share a target, got %s and %s", a, b)
	}
}

func TestOpenHistory(t *testing.T) {
	for _, backend := range []string{config.HistoryMemory, config.HistorySQLite} {
		st, closeFn, err := openHistory(context.Background(), config.Config{History: backend})
		if err != nil {
			t.Fatalf("%s: openHistory failed: %v", backend, err)
		}
		if _, err := st.Stats(context.Background()); err != nil {
			t.Errorf("%s: Stats failed: %v", backend, err)
		}
		closeFn()
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

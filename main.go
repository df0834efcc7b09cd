// Command wordle plays a single-session game of Wordle in the terminal.
//
// Modes:
//
//	wordle [flags]              play on the terminal board (default)
//	wordle score GUESS TARGET   print the marks a guess earns against a target
//	wordle words                report the loaded dictionary
//
// Settings come from the environment (optionally a .env file) and can be
// overridden with flags.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/cenktu/wordle-game/internal/config"
	"github.com/cenktu/wordle-game/internal/daily"
	"github.com/cenktu/wordle-game/internal/game"
	"github.com/cenktu/wordle-game/internal/store"
	"github.com/cenktu/wordle-game/internal/tui"
	"github.com/cenktu/wordle-game/internal/words"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("wordle exited")
		stop()
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "wordle",
		Usage:   "guess the hidden five-letter word in six tries",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "words", Aliases: []string{"w"}, Usage: "dictionary file, one word per line (default: embedded list)"},
			&cli.StringFlag{Name: "log-level", Usage: "zerolog level (trace, debug, info, warn, error)"},
			&cli.StringFlag{Name: "log-file", Usage: `log destination, "-" for stderr`},
			&cli.BoolFlag{Name: "daily", Usage: "use the date-keyed daily target"},
			&cli.BoolFlag{Name: "reveal", Usage: "show the target while playing (debugging)"},
			&cli.StringFlag{Name: "history", Usage: "history backend: sqlite or memory"},
		},
		Action: play,
		Commands: []*cli.Command{
			{
				Name:      "score",
				Usage:     "print the marks GUESS earns against TARGET",
				ArgsUsage: "GUESS TARGET",
				Action:    scoreCmd,
			},
			{
				Name:   "words",
				Usage:  "report the loaded dictionary",
				Action: wordsCmd,
			},
		},
	}
}

// loadConfig reads .env and the environment, then applies flag overrides.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if cmd.IsSet("words") {
		cfg.WordsFile = cmd.String("words")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("log-file") {
		cfg.LogFile = cmd.String("log-file")
	}
	if cmd.IsSet("daily") {
		cfg.Daily = cmd.Bool("daily")
	}
	if cmd.IsSet("reveal") {
		cfg.RevealTarget = cmd.Bool("reveal")
	}
	if cmd.IsSet("history") {
		cfg.History = cmd.String("history")
	}
	return cfg, cfg.Validate()
}

// setupLogging points the global logger at cfg.LogFile. The returned
// function closes the file.
func setupLogging(cfg config.Config) (func(), error) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFile == "-" || cfg.LogFile == "" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}

// openHistory builds the configured game history backend.
func openHistory(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.History == config.HistoryMemory {
		return store.NewMemoryStore(), func() {}, nil
	}
	db, err := store.OpenSQLite(ctx)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

// loadDictionary reads the configured word list. An empty result is fatal:
// no game can start without a target pool.
func loadDictionary(cfg config.Config) (*words.Dictionary, error) {
	dict, err := words.Load(cfg.WordsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list: %w", err)
	}
	return dict, nil
}

func newEngine(cfg config.Config, dict *words.Dictionary) (*game.Engine, error) {
	opts := []game.Option{game.WithRevealTarget(cfg.RevealTarget)}
	if cfg.Daily {
		opts = append(opts, game.WithPicker(daily.NewPicker(cfg.DailySalt)))
	}
	return game.New(dict, opts...)
}

// play runs the terminal board.
func play(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	dict, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	log.Info().Int("words", dict.Len()).Str("source", sourceName(cfg)).Bool("daily", cfg.Daily).Msg("dictionary loaded")

	eng, err := newEngine(cfg, dict)
	if err != nil {
		return err
	}

	hist, closeHist, err := openHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeHist()
	eng.Subscribe(store.NewRecorder(ctx, hist, eng))

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	view := tui.New(ctx, screen, eng, hist)
	defer view.Close()
	return view.Run(ctx)
}

// scoreCmd prints the marks for GUESS against TARGET, one per letter.
func scoreCmd(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return fmt.Errorf("score: expected GUESS and TARGET, got %d arguments", cmd.NArg())
	}
	guess, target := words.Normalize(cmd.Args().Get(0)), words.Normalize(cmd.Args().Get(1))
	for _, w := range []string{guess, target} {
		if len(w) != words.WordLength {
			return fmt.Errorf("score: %q is not %d letters", w, words.WordLength)
		}
	}
	return writeMarks(cmd.Root().Writer, guess, game.Score(guess, target))
}

func writeMarks(w io.Writer, guess string, marks []game.Mark) error {
	tiles := make([]string, len(marks))
	names := make([]string, len(marks))
	for i, m := range marks {
		names[i] = string(m)
		switch m {
		case game.MarkCorrect:
			tiles[i] = "🟩"
		case game.MarkPresent:
			tiles[i] = "🟨"
		default:
			tiles[i] = "⬜"
		}
	}
	_, err := fmt.Fprintf(w, "%s %s\n%s\n", guess, strings.Join(tiles, ""), strings.Join(names, " "))
	return err
}

// wordsCmd reports the size and source of the dictionary.
func wordsCmd(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dict, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "dictionary: %d words (%s)\n", dict.Len(), sourceName(cfg))
	return err
}

func sourceName(cfg config.Config) string {
	if cfg.WordsFile == "" {
		return "embedded"
	}
	return cfg.WordsFile
}

// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// Responsibilities:
//   - Opening an in-memory SQLite database pinned to a single connection
//     (every new connection to ":memory:" would see an empty database).
//   - Applying the embedded migrations in sql/*.sql (idempotent, recorded
//     in _migrations).
//   - Recording results and computing statistics.

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrations embed.FS

// SQLStore is a Store backed by database/sql.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLite opens a private in-memory database and applies migrations.
func OpenSQLite(ctx context.Context) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLStore{db: db}, nil
}

// Close releases the database; its contents are discarded.
func (s *SQLStore) Close() error { return s.db.Close() }

// migrate applies the embedded sql/*.sql files in lexical order, each in
// its own transaction, skipping those already listed in _migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(migrations, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Debug().Str("migration", f).Msg("applied")
	}
	return nil
}

// Record inserts r after validating it.
func (s *SQLStore) Record(ctx context.Context, r Result) error {
	if err := validate(r); err != nil {
		return err
	}
	finished := r.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO results (target, guesses, won, finished_at)
        VALUES (?, ?, ?, ?)`,
		r.Target, r.Guesses, boolToInt(r.Won), finished.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Stats aggregates played/wins and the win distribution in SQL, then walks
// the win flags in insertion order for streaks.
func (s *SQLStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(SUM(won), 0) FROM results`,
	).Scan(&st.Played, &st.Wins); err != nil {
		return Stats{}, fmt.Errorf("count results: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT guesses, COUNT(1) FROM results WHERE won=1 GROUP BY guesses`)
	if err != nil {
		return Stats{}, fmt.Errorf("distribution: %w", err)
	}
	for rows.Next() {
		var guesses, n int
		if err := rows.Scan(&guesses, &n); err != nil {
			rows.Close()
			return Stats{}, err
		}
		if guesses >= 1 && guesses <= len(st.Distribution) {
			st.Distribution[guesses-1] = n
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	flags, err := s.db.QueryContext(ctx, `SELECT won FROM results ORDER BY id ASC`)
	if err != nil {
		return Stats{}, fmt.Errorf("streaks: %w", err)
	}
	defer flags.Close()

	won := make([]bool, 0, st.Played)
	for flags.Next() {
		var w int
		if err := flags.Scan(&w); err != nil {
			return Stats{}, err
		}
		won = append(won, w == 1)
	}
	if err := flags.Err(); err != nil {
		return Stats{}, err
	}
	st.CurrentStreak, st.MaxStreak = streaks(won)
	return st, nil
}

// Recent returns up to limit results, newest first.
func (s *SQLStore) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT target, guesses, won, finished_at
        FROM results
        ORDER BY id DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var (
			r        Result
			won      int
			finished string
		)
		if err := rows.Scan(&r.Target, &r.Guesses, &won, &finished); err != nil {
			return nil, err
		}
		r.Won = won == 1
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

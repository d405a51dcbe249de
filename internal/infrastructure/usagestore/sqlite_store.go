package usagestore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/ports"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// SQLiteStore persists the usage log in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// OpenSQLite opens (or creates) the database at path and applies pending
// migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// modernc.org/sqlite serialises writes; limit to one connection.
	db.SetMaxOpenConns(1)

	if err := pragmas(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func pragmas(ctx context.Context, db *sql.DB) error {
	for _, p := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("setting %s: %w", p, err)
		}
	}
	return nil
}

var migrateMu sync.Mutex

func migrate(db *sql.DB) error {
	// goose keeps its base FS and dialect in package state.
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Load reads the retained records (oldest first) and the lifetime counter.
func (s *SQLiteStore) Load(ctx context.Context) (domain.UsageLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT timestamp_ms, model, prompt_tokens, completion_tokens, total_tokens, cost
		FROM usage_records ORDER BY id ASC`)
	if err != nil {
		return domain.UsageLog{}, fmt.Errorf("query usage records: %w", err)
	}
	defer rows.Close()

	var log domain.UsageLog
	for rows.Next() {
		var rec domain.UsageRecord
		var ts int64
		if err := rows.Scan(&ts, &rec.Model, &rec.PromptTokens, &rec.CompletionTokens, &rec.TotalTokens, &rec.Cost); err != nil {
			return domain.UsageLog{}, fmt.Errorf("scan usage record: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		log.Records = append(log.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return domain.UsageLog{}, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT prompt_tokens, completion_tokens, total_tokens, cost, request_count
		FROM usage_lifetime WHERE id = 1`)
	lt := &log.Lifetime
	err = row.Scan(&lt.TotalPromptTokens, &lt.TotalCompletionTokens, &lt.TotalTokens, &lt.TotalCost, &lt.RequestCount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.UsageLog{}, fmt.Errorf("query lifetime usage: %w", err)
	}
	return log, nil
}

// Save replaces the stored log with log in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, log domain.UsageLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM usage_records"); err != nil {
		return fmt.Errorf("clear usage records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO usage_records
		(timestamp_ms, model, prompt_tokens, completion_tokens, total_tokens, cost)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range log.Records {
		if _, err := stmt.ExecContext(ctx,
			rec.Timestamp.UnixMilli(),
			rec.Model,
			rec.PromptTokens,
			rec.CompletionTokens,
			rec.TotalTokens,
			rec.Cost,
		); err != nil {
			return fmt.Errorf("insert usage record: %w", err)
		}
	}

	lt := log.Lifetime
	if _, err := tx.ExecContext(ctx, `INSERT INTO usage_lifetime
		(id, prompt_tokens, completion_tokens, total_tokens, cost, request_count)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			prompt_tokens = excluded.prompt_tokens,
			completion_tokens = excluded.completion_tokens,
			total_tokens = excluded.total_tokens,
			cost = excluded.cost,
			request_count = excluded.request_count`,
		lt.TotalPromptTokens, lt.TotalCompletionTokens, lt.TotalTokens, lt.TotalCost, lt.RequestCount,
	); err != nil {
		return fmt.Errorf("update lifetime usage: %w", err)
	}

	return tx.Commit()
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ ports.UsageRepository = (*SQLiteStore)(nil)

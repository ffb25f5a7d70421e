// Package storage provides the SQLite-backed selection log. It records
// what the user actually picked (and for which query), powering the
// history command and the picker's history-browse mode. The log is
// informational only; the ranking engine reads frecency exclusively from
// the usage-history JSON file.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS selections (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	ts_unix     INTEGER NOT NULL,
	choice_uuid TEXT NOT NULL DEFAULT '',
	text        TEXT NOT NULL,
	type        TEXT NOT NULL DEFAULT '',
	plugin      TEXT NOT NULL DEFAULT '',
	query       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_selections_ts ON selections(ts_unix DESC);
`

// Selection is one row of the selection log.
type Selection struct {
	ID     int64
	TsUnix int64
	UUID   string
	Text   string
	Type   string
	Plugin string
	Query  string
}

// Log is the append-mostly selection log.
type Log struct {
	db        *sql.DB
	closeOnce sync.Once
	closeErr  error
}

// Open opens (creating if needed) the selection log at dbPath.
func Open(dbPath string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) DSN syntax.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite handles concurrency better with a single writer connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Log{db: db}, nil
}

// Close closes the log. Safe to call more than once.
func (l *Log) Close() error {
	l.closeOnce.Do(func() {
		_, _ = l.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
		l.closeErr = l.db.Close()
	})
	return l.closeErr
}

// Append records one selection.
func (l *Log) Append(ctx context.Context, s Selection) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO selections (ts_unix, choice_uuid, text, type, plugin, query)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.TsUnix, s.UUID, s.Text, s.Type, s.Plugin, s.Query)
	if err != nil {
		return fmt.Errorf("append selection: %w", err)
	}
	return nil
}

// Recent returns the newest selections, optionally filtered by a substring
// of the selected text, newest first.
func (l *Log) Recent(ctx context.Context, filter string, limit int) ([]Selection, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, ts_unix, choice_uuid, text, type, plugin, query
		FROM selections`
	args := []any{}
	if filter != "" {
		query += ` WHERE text LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(filter)+"%")
	}
	query += ` ORDER BY ts_unix DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query selections: %w", err)
	}
	defer rows.Close()

	var out []Selection
	for rows.Next() {
		var s Selection
		if err := rows.Scan(&s.ID, &s.TsUnix, &s.UUID, &s.Text, &s.Type, &s.Plugin, &s.Query); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Clear deletes every logged selection.
func (l *Log) Clear(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, `DELETE FROM selections`); err != nil {
		return fmt.Errorf("clear selections: %w", err)
	}
	return nil
}

// escapeLike escapes LIKE metacharacters so a filter is matched literally.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

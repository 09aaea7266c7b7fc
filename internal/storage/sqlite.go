package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"notelint/internal/lint"
	"notelint/internal/notes"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			root TEXT,
			generated_at TEXT,
			disabled JSON,
			summary JSON
		);`,
		`CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY,
			hash TEXT,
			title TEXT,
			sections INTEGER,
			blocks INTEGER,
			read_error TEXT,
			parse_error TEXT,
			error_line INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS issues (
			path TEXT,
			seq INTEGER,
			kind TEXT,
			section INTEGER,
			heading TEXT,
			line INTEGER,
			message TEXT,
			PRIMARY KEY (path, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_issues_kind ON issues(kind);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) SaveReport(ctx context.Context, r *lint.Report) error {
	if r == nil {
		return fmt.Errorf("report is nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Snapshot semantics: the stored run always mirrors the latest report.
	for _, q := range []string{"DELETE FROM issues", "DELETE FROM files", "DELETE FROM runs"} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
	}

	summary, err := json.Marshal(r.Summary)
	if err != nil {
		return err
	}
	disabled, err := json.Marshal(r.Disabled)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, root, generated_at, disabled, summary) VALUES (1, ?, ?, ?, ?)",
		r.Root, r.GeneratedAt, disabled, summary); err != nil {
		return err
	}

	fileStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO files (path, hash, title, sections, blocks, read_error, parse_error, error_line)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer fileStmt.Close()

	issueStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO issues (path, seq, kind, section, heading, line, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer issueStmt.Close()

	for _, f := range r.Files {
		if _, err := fileStmt.ExecContext(ctx, f.Path, f.Hash, f.Title, f.Sections, f.Blocks, f.ReadError, f.ParseError, f.ErrorLine); err != nil {
			return err
		}
		for i, is := range f.Issues {
			if _, err := issueStmt.ExecContext(ctx, f.Path, i, string(is.Kind), is.Section, is.Heading, is.Line, is.Message); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadReport(ctx context.Context) (*lint.Report, error) {
	var r lint.Report
	var disabled, summary []byte
	err := s.db.QueryRowContext(ctx, "SELECT root, generated_at, disabled, summary FROM runs WHERE id = 1").
		Scan(&r.Root, &r.GeneratedAt, &disabled, &summary)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	if err := json.Unmarshal(summary, &r.Summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	if err := json.Unmarshal(disabled, &r.Disabled); err != nil {
		return nil, fmt.Errorf("failed to decode disabled kinds: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT path, hash, title, sections, blocks, read_error, parse_error, error_line FROM files ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	r.Files = []lint.FileResult{}
	for rows.Next() {
		var f lint.FileResult
		if err := rows.Scan(&f.Path, &f.Hash, &f.Title, &f.Sections, &f.Blocks, &f.ReadError, &f.ParseError, &f.ErrorLine); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		r.Files = append(r.Files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range r.Files {
		issues, err := s.FindIssuesByFile(ctx, r.Files[i].Path)
		if err != nil {
			return nil, err
		}
		r.Files[i].Issues = issues
	}

	return &r, nil
}

func (s *SQLiteStore) FindIssuesByFile(ctx context.Context, path string) ([]notes.Issue, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT kind, section, heading, line, message FROM issues WHERE path = ? ORDER BY seq", path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	issues := []notes.Issue{}
	for rows.Next() {
		var is notes.Issue
		var kind string
		if err := rows.Scan(&kind, &is.Section, &is.Heading, &is.Line, &is.Message); err != nil {
			return nil, err
		}
		is.Kind = notes.IssueKind(kind)
		issues = append(issues, is)
	}
	return issues, rows.Err()
}

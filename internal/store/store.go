// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/voynich/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for analysis runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ciphertext TEXT NOT NULL,
			diagnostics TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_languages (
			run_id INTEGER NOT NULL,
			lang TEXT NOT NULL,
			dictionary TEXT NOT NULL,
			words INTEGER NOT NULL,
			fingerprint TEXT NOT NULL,
			PRIMARY KEY (run_id, lang)
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id INTEGER NOT NULL,
			lang TEXT NOT NULL,
			seq INTEGER NOT NULL,
			technique TEXT NOT NULL,
			params TEXT NOT NULL,
			text TEXT NOT NULL,
			valid_count INTEGER NOT NULL,
			matched TEXT NOT NULL,
			PRIMARY KEY (run_id, lang, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`,
		`CREATE INDEX IF NOT EXISTS idx_results_technique ON results(technique);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a report with its per-language results.
func (s *Store) InsertRun(ctx context.Context, report model.RunReport) (id int64, err error) {
	diags := append([]model.Diagnostic(nil), report.Diagnostics...)
	for _, lang := range report.Languages {
		diags = append(diags, lang.Analysis.Diagnostics...)
	}
	diagJSON, err := json.Marshal(diags)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, ciphertext, diagnostics) VALUES (?, ?, ?)`,
		report.StartedAt.Format(time.RFC3339Nano),
		report.Ciphertext,
		string(diagJSON),
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, lang := range report.Languages {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO run_languages (run_id, lang, dictionary, words, fingerprint) VALUES (?, ?, ?, ?, ?)`,
			id, lang.Language, lang.Dictionary, lang.Words, lang.Fingerprint,
		); err != nil {
			return 0, err
		}
		for seq, r := range lang.Analysis.Results {
			var params, matched []byte
			if params, err = json.Marshal(r.Params); err != nil {
				return 0, err
			}
			if matched, err = json.Marshal(r.Matched); err != nil {
				return 0, err
			}
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO results (run_id, lang, seq, technique, params, text, valid_count, matched)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				id, lang.Language, seq, string(r.Technique), string(params), r.Text, r.Count, string(matched),
			); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns the most recent runs first, with their best result.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT r.id, r.started_at, r.ciphertext, r.diagnostics,
		(SELECT COUNT(*) FROM run_languages l WHERE l.run_id = r.id),
		COALESCE(b.lang, ''), COALESCE(b.technique, ''), COALESCE(b.valid_count, 0)
	FROM runs r
	LEFT JOIN results b ON b.rowid = (
		SELECT x.rowid FROM results x
		WHERE x.run_id = r.id
		ORDER BY x.valid_count DESC, x.lang ASC, x.seq ASC
		LIMIT 1
	)
	ORDER BY r.started_at DESC, r.id DESC
	LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunSummary
	for rows.Next() {
		var sum model.RunSummary
		var startedAt, diagJSON, tech string
		if err := rows.Scan(&sum.RunID, &startedAt, &sum.Ciphertext, &diagJSON,
			&sum.Languages, &sum.BestLang, &tech, &sum.BestCount); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		sum.StartedAt = parsed
		sum.BestTech = model.Technique(tech)
		var diags []model.Diagnostic
		if err := json.Unmarshal([]byte(diagJSON), &diags); err != nil {
			return nil, err
		}
		sum.Diagnostics = len(diags)
		runs = append(runs, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// ListResults returns every stored result of a run, ordered by language then technique order.
func (s *Store) ListResults(ctx context.Context, runID int64) ([]model.StoredResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT lang, technique, params, text, valid_count, matched
		FROM results
		WHERE run_id = ?
		ORDER BY lang ASC, seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.StoredResult
	for rows.Next() {
		var r model.StoredResult
		var tech, params, matched string
		if err := rows.Scan(&r.Language, &tech, &params, &r.Text, &r.Count, &matched); err != nil {
			return nil, err
		}
		r.Technique = model.Technique(tech)
		if err := json.Unmarshal([]byte(params), &r.Params); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(matched), &r.Matched); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListDiagnostics returns the diagnostics recorded for a run.
func (s *Store) ListDiagnostics(ctx context.Context, runID int64) ([]model.Diagnostic, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT diagnostics FROM runs WHERE id = ?`, runID).Scan(&raw)
	if err != nil {
		return nil, err
	}
	var diags []model.Diagnostic
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &diags); err != nil {
		return nil, err
	}
	return diags, nil
}

package transcript

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/triage-advisor-server/internal/domain"
)

// SQLiteStore implements domain.TranscriptStore on a local SQLite file.
// The default backend for single-instance deployments.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS transcripts (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id        TEXT UNIQUE NOT NULL,
	timestamp         TEXT NOT NULL,
	patient_name      TEXT,
	age               INTEGER,
	sex               TEXT,
	zip_code          TEXT,
	answering_for     TEXT,
	symptom_text      TEXT,
	pmh_text          TEXT,
	selected_symptoms TEXT,
	pmh               TEXT,
	interview_history TEXT,
	prediction_level  INTEGER,
	prediction_label  TEXT,
	risk_pcts         TEXT,
	specialist_info   TEXT,
	reassurance       TEXT,
	escalation        TEXT,
	triage_summary    TEXT,
	red_flag          TEXT,
	risk_factors      TEXT
);
CREATE INDEX IF NOT EXISTS idx_transcripts_timestamp ON transcripts(timestamp);
`

// NewSQLiteStore opens (and if needed creates) the transcript database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating transcript db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening transcript db: %w", err)
	}
	// WAL keeps readers unblocked while results pages write transcripts.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating transcript schema: %w", err)
	}
	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Save inserts one completed session. Duplicate session ids are ignored so
// a results-page refresh never writes twice.
func (s *SQLiteStore) Save(ctx context.Context, t *domain.Transcript) error {
	args, err := insertArgs(t)
	if err != nil {
		return err
	}
	query := `INSERT OR IGNORE INTO transcripts (
		session_id, timestamp, patient_name, age, sex, zip_code,
		answering_for, symptom_text, pmh_text, selected_symptoms, pmh,
		interview_history, prediction_level, prediction_label, risk_pcts,
		specialist_info, reassurance, escalation, triage_summary, red_flag,
		risk_factors
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("saving transcript %s: %w", t.SessionID, err)
	}
	return nil
}

// Get returns one transcript by row id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*domain.Transcript, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM transcripts WHERE id = ?`, id)
	t, err := scanTranscript(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transcript %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading transcript %d: %w", id, err)
	}
	return t, nil
}

// List returns transcripts newest first.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*domain.Transcript, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+columns+` FROM transcripts ORDER BY timestamp DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing transcripts: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

// Count returns the total number of stored transcripts.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transcripts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting transcripts: %w", err)
	}
	return n, nil
}

// ExportJSON writes every transcript as a JSON array, newest first.
func (s *SQLiteStore) ExportJSON(ctx context.Context, w io.Writer) error {
	all, err := s.listAll(ctx)
	if err != nil {
		return err
	}
	return writeJSON(w, all)
}

// ExportCSV writes every transcript as CSV, newest first.
func (s *SQLiteStore) ExportCSV(ctx context.Context, w io.Writer) error {
	all, err := s.listAll(ctx)
	if err != nil {
		return err
	}
	return writeCSV(w, all)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) listAll(ctx context.Context) ([]*domain.Transcript, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+columns+` FROM transcripts ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("exporting transcripts: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows *sql.Rows) ([]*domain.Transcript, error) {
	var out []*domain.Transcript
	for rows.Next() {
		t, err := scanTranscript(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transcript row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transcript rows: %w", err)
	}
	return out, nil
}

package transcript

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	_ "github.com/lib/pq"

	"github.com/triage-advisor-server/internal/domain"
)

// PostgresStore implements domain.TranscriptStore on PostgreSQL for
// multi-instance deployments. Schema is managed by migrations; the store
// assumes the transcripts table exists.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts one completed session, ignoring duplicate session ids.
func (s *PostgresStore) Save(ctx context.Context, t *domain.Transcript) error {
	args, err := insertArgs(t)
	if err != nil {
		return err
	}
	query := `INSERT INTO transcripts (
		session_id, timestamp, patient_name, age, sex, zip_code,
		answering_for, symptom_text, pmh_text, selected_symptoms, pmh,
		interview_history, prediction_level, prediction_label, risk_pcts,
		specialist_info, reassurance, escalation, triage_summary, red_flag,
		risk_factors
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		$15, $16, $17, $18, $19, $20, $21)
	ON CONFLICT (session_id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("saving transcript %s: %w", t.SessionID, err)
	}
	return nil
}

// Get returns one transcript by row id.
func (s *PostgresStore) Get(ctx context.Context, id int64) (*domain.Transcript, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM transcripts WHERE id = $1`, id)
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
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*domain.Transcript, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+columns+` FROM transcripts ORDER BY timestamp DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing transcripts: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

// Count returns the total number of stored transcripts.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transcripts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting transcripts: %w", err)
	}
	return n, nil
}

// ExportJSON writes every transcript as a JSON array, newest first.
func (s *PostgresStore) ExportJSON(ctx context.Context, w io.Writer) error {
	all, err := s.listAll(ctx)
	if err != nil {
		return err
	}
	return writeJSON(w, all)
}

// ExportCSV writes every transcript as CSV, newest first.
func (s *PostgresStore) ExportCSV(ctx context.Context, w io.Writer) error {
	all, err := s.listAll(ctx)
	if err != nil {
		return err
	}
	return writeCSV(w, all)
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) listAll(ctx context.Context) ([]*domain.Transcript, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+columns+` FROM transcripts ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("exporting transcripts: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

package service

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Job statuses. The owning worker advances a job through exactly three
// checkpoints: queued at submission, processing when picked up, then
// completed or failed.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Schema for the jobs table.
const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	job_id TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	fields TEXT NOT NULL,
	result_json TEXT,
	error_message TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
`

// ErrJobNotFound is returned when a job id is unknown.
var ErrJobNotFound = errors.New("job not found")

// Job is the polling view of one submitted document.
type Job struct {
	ID     string          `json:"job_id"`
	Status string          `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Store persists job status in SQLite. Writes go through the single owning
// worker per job, so no row is ever written concurrently.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the job database at path and applies the
// schema. Use ":memory:" for an ephemeral registry.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open job store: %w", err)
	}
	return NewStore(db)
}

// NewStore wraps an existing database connection and applies the schema.
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply job schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create registers a new job in the queued state.
func (s *Store) Create(jobID string, fields []string) error {
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	now := time.Now().Unix()
	_, err = s.db.Exec(`
		INSERT INTO jobs (job_id, status, fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, jobID, StatusQueued, string(fieldsJSON), now, now)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// MarkProcessing advances a job to the processing checkpoint.
func (s *Store) MarkProcessing(jobID string) error {
	return s.setStatus(jobID, StatusProcessing, nil, "")
}

// Complete stores the result and advances the job to completed.
func (s *Store) Complete(jobID string, result json.RawMessage) error {
	return s.setStatus(jobID, StatusCompleted, result, "")
}

// Fail records the error message and advances the job to failed.
func (s *Store) Fail(jobID, errMsg string) error {
	return s.setStatus(jobID, StatusFailed, nil, errMsg)
}

func (s *Store) setStatus(jobID, status string, result json.RawMessage, errMsg string) error {
	res, err := s.db.Exec(`
		UPDATE jobs SET status = ?, result_json = ?, error_message = ?, updated_at = ?
		WHERE job_id = ?
	`, status, nullableString(result), nullableString([]byte(errMsg)), time.Now().Unix(), jobID)
	if err != nil {
		return fmt.Errorf("update job %s: %w", jobID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrJobNotFound
	}
	return nil
}

// Get returns the polling view of a job.
func (s *Store) Get(jobID string) (*Job, error) {
	var job Job
	var result, errMsg sql.NullString
	err := s.db.QueryRow(`
		SELECT job_id, status, result_json, error_message
		FROM jobs WHERE job_id = ?
	`, jobID).Scan(&job.ID, &job.Status, &result, &errMsg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read job %s: %w", jobID, err)
	}
	if result.Valid {
		job.Result = json.RawMessage(result.String)
	}
	if errMsg.Valid {
		job.Error = errMsg.String
	}
	return &job, nil
}

// Fields returns the target field labels recorded at submission.
func (s *Store) Fields(jobID string) ([]string, error) {
	var fieldsJSON string
	err := s.db.QueryRow(`SELECT fields FROM jobs WHERE job_id = ?`, jobID).Scan(&fieldsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read job fields %s: %w", jobID, err)
	}
	var fields []string
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		return nil, fmt.Errorf("decode job fields %s: %w", jobID, err)
	}
	return fields, nil
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

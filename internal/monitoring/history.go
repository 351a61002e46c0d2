package monitoring

import (
	"context"
	"database/sql"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"github.com/osmike/orbitcron/internal/domain"
	"go.uber.org/zap"
	"strings"
	"time"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS job_runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	job_name    TEXT    NOT NULL,
	expression  TEXT    NOT NULL,
	forced      INTEGER NOT NULL,
	result      TEXT    NOT NULL,
	started_at  INTEGER NOT NULL,
	ended_at    INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	attributes  TEXT    NOT NULL,
	error       TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS job_runs_job_name ON job_runs (job_name, id);
`

// Run is one persisted job run.
type Run struct {
	ID         int64         `json:"id"`
	JobName    string        `json:"job"`
	Expression string        `json:"expression"`
	Forced     bool          `json:"forced"`
	Result     string        `json:"result"`
	StartedAt  time.Time     `json:"started_at"`
	EndedAt    time.Time     `json:"ended_at"`
	Duration   time.Duration `json:"duration_ns"`
	Attributes []string      `json:"attributes"`
	Error      string        `json:"error,omitempty"`
}

// History appends every job run to a SQLite table.
//
// Only the outcome of runs is stored; the job registry itself lives in memory.
type History struct {
	db  *sql.DB
	log *zap.Logger
}

// NewHistory opens (or creates) the SQLite database at path and prepares the schema.
// Use ":memory:" for a throwaway database.
func NewHistory(path string, log *zap.Logger) (*History, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}
	// sqlite serializes writers anyway, and ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &History{db: db, log: log}, nil
}

// SaveMetrics inserts one row for the run described by dto.
// Insert failures are logged and otherwise ignored so they never affect dispatch.
func (h *History) SaveMetrics(dto domain.StateDTO) {
	errText := ""
	if dto.Error.JobError != nil {
		errText = dto.Error.JobError.Error()
	}
	forced := 0
	if dto.Forced {
		forced = 1
	}
	_, err := h.db.Exec(
		`INSERT INTO job_runs (job_name, expression, forced, result, started_at, ended_at, duration_ns, attributes, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dto.JobName,
		dto.Expression,
		forced,
		dto.Result.String(),
		dto.StartAt.UnixNano(),
		dto.EndAt.UnixNano(),
		dto.ExecutionTime,
		strings.Join(dto.Attributes, ","),
		errText,
	)
	if err != nil {
		h.log.Error("insert run history", zap.String("job", dto.JobName), zap.Error(err))
	}
}

// Recent returns up to limit runs of the named job, newest first.
// An empty name returns runs of every job.
func (h *History) Recent(ctx context.Context, name string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, job_name, expression, forced, result, started_at, ended_at, duration_ns, attributes, error
		FROM job_runs`
	args := []any{}
	if name != "" {
		query += ` WHERE job_name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query run history: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                   Run
			forced              int
			started, ended, dur int64
			attributes          string
		)
		if err := rows.Scan(&r.ID, &r.JobName, &r.Expression, &forced, &r.Result, &started, &ended, &dur, &attributes, &r.Error); err != nil {
			return nil, fmt.Errorf("scan run history: %w", err)
		}
		r.Forced = forced == 1
		r.StartedAt = time.Unix(0, started)
		r.EndedAt = time.Unix(0, ended)
		r.Duration = time.Duration(dur)
		if attributes != "" {
			r.Attributes = strings.Split(attributes, ",")
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the database.
func (h *History) Close() error {
	return h.db.Close()
}

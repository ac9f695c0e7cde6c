package ledger

import (
	"context"
	"fmt"
	"time"
)

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Run is one processed sidecar, successful or not.
type Run struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	HeaderPath    string    `json:"header_path"`
	SidecarPath   string    `json:"sidecar_path"`
	Site          string    `json:"site"`
	Confidence    string    `json:"confidence"`
	ToolVersion   string    `json:"tool_version"`
	FieldsAdded   int       `json:"fields_added"`
	FieldsUpdated int       `json:"fields_updated"`
	BackupPath    string    `json:"backup_path"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
}

// Record inserts a run. Duplicate IDs are rejected by the primary key;
// every run gets a fresh UUIDv7, so a conflict means a caller bug.
func (s *Store) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, started_at, header_path, sidecar_path, site, confidence, tool_version,
		 fields_added, fields_updated, backup_path, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.HeaderPath,
		run.SidecarPath,
		run.Site,
		run.Confidence,
		run.ToolVersion,
		run.FieldsAdded,
		run.FieldsUpdated,
		run.BackupPath,
		run.Status,
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Filter narrows List results. Zero values mean no constraint; Limit 0
// means no limit.
type Filter struct {
	Site   string
	Status string
	Limit  int
}

// List returns runs newest first. UUIDv7 IDs are time-ordered, so the ID
// tiebreak keeps same-second runs in insertion order.
func (s *Store) List(ctx context.Context, f Filter) ([]Run, error) {
	query := `
		SELECT id, started_at, header_path, sidecar_path, site, confidence, tool_version,
		       fields_added, fields_updated, backup_path, status, error
		FROM runs
		WHERE (? = '' OR site = ?)
		  AND (? = '' OR status = ?)
		ORDER BY started_at DESC, id DESC
	`
	args := []any{f.Site, f.Site, f.Status, f.Status}
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var startedAt string
		err := rows.Scan(
			&run.ID,
			&startedAt,
			&run.HeaderPath,
			&run.SidecarPath,
			&run.Site,
			&run.Confidence,
			&run.ToolVersion,
			&run.FieldsAdded,
			&run.FieldsUpdated,
			&run.BackupPath,
			&run.Status,
			&run.Error,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing started_at %q: %w", startedAt, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

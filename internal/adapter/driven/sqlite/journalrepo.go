package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ColinKinloch/sadm/internal/domain/model"
	"github.com/ColinKinloch/sadm/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.StatusJournal = (*JournalRepo)(nil)

// JournalRepo is the SQLite implementation of the StatusJournal port interface.
type JournalRepo struct {
	db *DB
}

// NewJournalRepo creates a new JournalRepo backed by the given DB.
func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// Record appends one status event to the journal. CreatedAt defaults to
// the current time when the record carries a zero value.
func (r *JournalRepo) Record(ctx context.Context, rec model.StatusRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	success := 0
	if rec.Success {
		success = 1
	}
	pending := 0
	if rec.Pending {
		pending = 1
	}

	const query = `
		INSERT INTO status_journal (topic, repo, pr_id, builder, headrev, success, pending, url, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		rec.Topic, rec.Repo, rec.PullRequestID, rec.Builder, rec.HeadRev,
		success, pending, rec.URL, rec.Description,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert journal record for %s#%d: %w", rec.Repo, rec.PullRequestID, err)
	}

	return nil
}

// RecentForPullRequest returns the newest records for a PR, most recent first.
func (r *JournalRepo) RecentForPullRequest(ctx context.Context, repo string, prID int, limit int) ([]model.StatusRecord, error) {
	const query = `
		SELECT id, topic, repo, pr_id, builder, headrev, success, pending, url, description, created_at
		FROM status_journal
		WHERE repo = ? AND pr_id = ?
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, repo, prID, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal for %s#%d: %w", repo, prID, err)
	}
	defer rows.Close()

	var records []model.StatusRecord
	for rows.Next() {
		rec, err := scanStatusRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal record: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal records: %w", err)
	}

	return records, nil
}

// Prune deletes records older than the cutoff and returns the number of
// rows removed. RFC 3339 timestamps in UTC compare correctly as strings.
func (r *JournalRepo) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM status_journal WHERE created_at < ?`

	res, err := r.db.Writer.ExecContext(ctx, query, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("prune journal before %s: %w", cutoff.UTC().Format(time.RFC3339), err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count pruned journal rows: %w", err)
	}

	return n, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// parseTime accepts the RFC 3339 strings Record writes plus the bare
// datetime format produced by ad-hoc sqlite inserts.
func parseTime(s string) (time.Time, error) {
	for _, format := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}

func scanStatusRecord(s scanner) (*model.StatusRecord, error) {
	var rec model.StatusRecord
	var success, pending int
	var createdAt string

	err := s.Scan(
		&rec.ID, &rec.Topic, &rec.Repo, &rec.PullRequestID, &rec.Builder,
		&rec.HeadRev, &success, &pending, &rec.URL, &rec.Description, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Success = success != 0
	rec.Pending = pending != 0

	rec.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &rec, nil
}

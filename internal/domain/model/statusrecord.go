package model

import "time"

// StatusRecord is one journaled status event as persisted in the
// status_journal table. The journal is an audit trail; nothing in the
// build pipeline reads it back on the hot path.
type StatusRecord struct {
	ID            int64  // Autoincrement primary key.
	Topic         string // Bus topic the event was dispatched on.
	Repo          string
	PullRequestID int
	Builder       string
	HeadRev       string
	Success       bool
	Pending       bool
	URL           string
	Description   string
	CreatedAt     time.Time
}

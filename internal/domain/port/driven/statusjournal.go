package driven

import (
	"context"
	"time"

	"github.com/ColinKinloch/sadm/internal/domain/model"
)

// StatusJournal defines the driven port for the status audit trail.
type StatusJournal interface {
	// Record appends one status event to the journal.
	Record(ctx context.Context, rec model.StatusRecord) error
	// RecentForPullRequest returns the newest records for a PR, most
	// recent first, capped at limit.
	RecentForPullRequest(ctx context.Context, repo string, prID int, limit int) ([]model.StatusRecord, error)
	// Prune deletes records older than the cutoff and returns how many
	// rows were removed.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

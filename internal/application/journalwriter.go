package application

import (
	"context"
	"log/slog"

	"github.com/ColinKinloch/sadm/internal/domain/model"
	"github.com/ColinKinloch/sadm/internal/domain/port/driven"
)

// JournalWriter consumes status records and persists them to the
// journal. It sits behind its own queue so a slow or broken database
// never backpressures the dispatch path; failed inserts are logged and
// dropped.
type JournalWriter struct {
	journal driven.StatusJournal
	queue   *fifo[model.StatusRecord]
}

// NewJournalWriter creates a new JournalWriter backed by the given journal.
func NewJournalWriter(journal driven.StatusJournal) *JournalWriter {
	return &JournalWriter{
		journal: journal,
		queue:   newFifo[model.StatusRecord](),
	}
}

// Push enqueues a record. Safe to call from any goroutine; never blocks.
func (w *JournalWriter) Push(rec model.StatusRecord) {
	w.queue.push(rec)
}

// Run consumes records until the context is cancelled.
func (w *JournalWriter) Run(ctx context.Context) error {
	for {
		rec, ok := w.queue.pop(ctx)
		if !ok {
			slog.Info("journal writer stopped")
			return nil
		}

		if err := w.journal.Record(ctx, rec); err != nil {
			slog.Error("journal record failed",
				"repo", rec.Repo,
				"pr_number", rec.PullRequestID,
				"builder", rec.Builder,
				"error", err,
			)
		}
	}
}

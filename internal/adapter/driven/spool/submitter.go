package spool

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ColinKinloch/sadm/internal/domain/model"
	"github.com/ColinKinloch/sadm/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.BuildSubmitter = (*Submitter)(nil)

// Submitter implements the driven.BuildSubmitter port by spooling
// encoded build requests into the farm's job directory. The farm polls
// <jobdir>/new; files are staged in <jobdir>/tmp and moved into place
// with a rename, which is atomic on the same filesystem. Uniqueness of
// both names comes from random UUIDs, so concurrent submitters need no
// coordination.
type Submitter struct {
	jobdir string
}

// NewSubmitter prepares a submitter rooted at jobdir, creating the
// tmp and new subdirectories if they are absent.
func NewSubmitter(jobdir string) (*Submitter, error) {
	for _, sub := range []string{"tmp", "new"} {
		if err := os.MkdirAll(filepath.Join(jobdir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("creating job directory %s: %w", filepath.Join(jobdir, sub), err)
		}
	}
	return &Submitter{jobdir: jobdir}, nil
}

// Submit encodes the job and publishes it to the farm. On any failure
// the staged temp file is removed; the farm either sees the complete
// request or nothing.
func (s *Submitter) Submit(job model.BuildJob) error {
	encoded, err := EncodeBuildRequest(job)
	if err != nil {
		return err
	}

	tmpPath := filepath.Join(s.jobdir, "tmp", uuid.NewString())
	if err := writeFileSync(tmpPath, encoded); err != nil {
		return fmt.Errorf("staging build request %s: %w", job.JobID, err)
	}

	finalPath := filepath.Join(s.jobdir, "new", uuid.NewString())
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("publishing build request %s: %w", job.JobID, err)
	}

	slog.Info("build request submitted", "jobid", job.JobID, "path", finalPath)
	return nil
}

// writeFileSync writes data to a new file and syncs it to disk before
// returning. The file is removed again if any step fails.
func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

package spool

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return entries
}

func TestNewSubmitter_CreatesDirectories(t *testing.T) {
	jobdir := filepath.Join(t.TempDir(), "jobdir")

	_, err := NewSubmitter(jobdir)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(jobdir, "tmp"))
	assert.DirExists(t, filepath.Join(jobdir, "new"))
}

func TestSubmit_PublishesEncodedRequest(t *testing.T) {
	jobdir := t.TempDir()
	sub, err := NewSubmitter(jobdir)
	require.NoError(t, err)

	job := testJob()
	require.NoError(t, sub.Submit(job))

	entries := dirEntries(t, filepath.Join(jobdir, "new"))
	require.Len(t, entries, 1)

	got, err := os.ReadFile(filepath.Join(jobdir, "new", entries[0].Name()))
	require.NoError(t, err)
	want, err := EncodeBuildRequest(job)
	require.NoError(t, err)
	assert.Equal(t, want, got, "published file must be byte-identical to the encoded request")

	assert.Empty(t, dirEntries(t, filepath.Join(jobdir, "tmp")), "staged file must be moved, not copied")
}

func TestSubmit_UniqueNames(t *testing.T) {
	jobdir := t.TempDir()
	sub, err := NewSubmitter(jobdir)
	require.NoError(t, err)

	require.NoError(t, sub.Submit(testJob()))
	require.NoError(t, sub.Submit(testJob()))

	entries := dirEntries(t, filepath.Join(jobdir, "new"))
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].Name(), entries[1].Name())
}

func TestSubmit_EncodingErrorLeavesNoFiles(t *testing.T) {
	jobdir := t.TempDir()
	sub, err := NewSubmitter(jobdir)
	require.NoError(t, err)

	job := testJob()
	job.Comment = "Auto build for PR #9876 (héad)."

	require.Error(t, sub.Submit(job))
	assert.Empty(t, dirEntries(t, filepath.Join(jobdir, "new")))
	assert.Empty(t, dirEntries(t, filepath.Join(jobdir, "tmp")))
}

func TestSubmit_RenameFailureCleansUpTemp(t *testing.T) {
	jobdir := t.TempDir()
	sub, err := NewSubmitter(jobdir)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(filepath.Join(jobdir, "new")))

	require.Error(t, sub.Submit(testJob()))
	assert.Empty(t, dirEntries(t, filepath.Join(jobdir, "tmp")))
}

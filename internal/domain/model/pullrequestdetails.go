package model

// MergeableStatus represents GitHub's tri-state mergeability for a PR.
type MergeableStatus string

const (
	MergeableUnknown    MergeableStatus = "unknown" // GitHub has not computed mergeability yet.
	MergeableMergeable  MergeableStatus = "mergeable"
	MergeableConflicted MergeableStatus = "conflicted"
)

// PullRequestDetails carries the per-PR data needed to build it: the
// merge base, the head commit, and whether GitHub considers it mergeable.
// Used as a data transfer struct, not persisted.
type PullRequestDetails struct {
	BaseSHA        string
	HeadSHA        string
	Mergeable      MergeableStatus
	MergeableState string // GitHub's raw mergeable_state, for logging only.
}

// KnownUnmergeable reports whether GitHub has affirmatively decided the
// PR cannot be merged. MergeableUnknown does not count; a build attempt
// proceeds while mergeability is still being computed.
func (d PullRequestDetails) KnownUnmergeable() bool {
	return d.Mergeable == MergeableConflicted
}

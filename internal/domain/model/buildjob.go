package model

import "fmt"

// shortRevLen is the prefix length the farm uses to identify a revision in
// job ids and status properties.
const shortRevLen = 6

// ShortRev returns the short form of a commit hash, the first six
// characters. Hashes shorter than that are returned unchanged.
func ShortRev(rev string) string {
	if len(rev) <= shortRevLen {
		return rev
	}
	return rev[:shortRevLen]
}

// BuildJob is the canonical description of one build to hand to the farm.
type BuildJob struct {
	Repo          string // owner/name
	PullRequestID int
	JobID         string // "<pr>-<shortrev>"; correlates raw results back to the request.
	BaseRev       string
	HeadRev       string
	ShortRev      string
	RequestedBy   string // Display string shown as the build requester.
	BuilderNames  []string
	Comment       string
}

// NewBuildJob derives a BuildJob for the given revision pair. ShortRev and
// JobID are computed here so every job carries the same derivation.
func NewBuildJob(repo string, prID int, baseRev, headRev, requestedBy string, builders []string, comment string) BuildJob {
	short := ShortRev(headRev)
	return BuildJob{
		Repo:          repo,
		PullRequestID: prID,
		JobID:         JobID(prID, headRev),
		BaseRev:       baseRev,
		HeadRev:       headRev,
		ShortRev:      short,
		RequestedBy:   requestedBy,
		BuilderNames:  builders,
		Comment:       comment,
	}
}

// JobID returns the identifier the farm echoes back for a pull request
// build of the given head revision.
func JobID(prID int, headRev string) string {
	return fmt.Sprintf("%d-%s", prID, ShortRev(headRev))
}

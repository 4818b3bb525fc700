package model

// DefaultBuilder is the builder name used for aggregate and pre-build
// statuses that do not belong to any single configured builder.
const DefaultBuilder = "default"

// BuildStatusEvent is the normalized build status published on the event
// bus for downstream renderers (commit statuses, chat announcements).
//
// Success is only authoritative once Pending is false: a pending event
// carries Success=false by convention.
type BuildStatusEvent struct {
	Repo          string // owner/name
	HeadRev       string
	ShortRev      string
	Builder       string // Configured builder name, or DefaultBuilder.
	PullRequestID int
	Success       bool
	Pending       bool
	URL           string // Details link; may be empty.
	Description   string
}

// Type implements Event.
func (BuildStatusEvent) Type() string { return EventTypeBuildStatus }

// PullRequestFifoCIEvent signals that a FifoCI builder finished
// successfully for a head revision, unlocking the graphics-diff workflow
// for that pull request. There is no pending or failure variant.
type PullRequestFifoCIEvent struct {
	Repo          string
	HeadRev       string
	Builder       string
	PullRequestID int
}

// Type implements Event.
func (PullRequestFifoCIEvent) Type() string { return EventTypeFifoCIStatus }

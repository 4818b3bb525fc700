package model

// BuildTrigger is the intent to build one pull request revision. Triggers
// live only in the dispatch queue: one is created per qualifying event,
// consumed exactly once, and never persisted. A trigger lost to a process
// restart is simply never built; the originating event can be replayed.
type BuildTrigger struct {
	RequestedBy   string // Identity the build is performed on behalf of.
	Trusted       bool   // Whether RequestedBy may trigger untrusted-code builds.
	Repo          string // owner/name
	PullRequestID int
}

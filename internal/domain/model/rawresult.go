package model

import "strconv"

// Build result codes reported by the farm.
const (
	ResultSuccess  = 0
	ResultWarnings = 1
)

// RawBuildResult is one callback from the build farm's status hook,
// before any correlation with a pull request has happened.
//
// Properties is list-wrapped on the wire: each value is a two-element
// list of [value, source]. Only the first element is meaningful here.
type RawBuildResult struct {
	Builder    string
	Complete   bool
	Results    int // Result code; meaningful only when Complete.
	URL        string
	Properties map[string][]any
}

// Pending reports whether the build is still running.
func (r RawBuildResult) Pending() bool { return !r.Complete }

// Succeeded reports whether the result code counts as a success for
// status purposes. Warnings count; failures, exceptions, retries and
// cancellations do not.
func (r RawBuildResult) Succeeded() bool {
	return r.Results == ResultSuccess || r.Results == ResultWarnings
}

// BuildProperties is the collapsed, typed view of a result's properties.
type BuildProperties struct {
	HeadRev       string
	Repo          string
	ShortRev      string
	PullRequestID int // Zero when the result does not belong to a pull request.
}

// CollapseProperties unwraps the list-wrapped property values and
// extracts the fields needed to correlate a result with a pull request.
// The second return value is false when headrev, repo or shortrev is
// absent; such results cannot be attributed and should be dropped.
func (r RawBuildResult) CollapseProperties() (BuildProperties, bool) {
	headRev, ok := r.stringProperty("headrev")
	if !ok {
		return BuildProperties{}, false
	}
	repo, ok := r.stringProperty("repo")
	if !ok {
		return BuildProperties{}, false
	}
	shortRev, ok := r.stringProperty("shortrev")
	if !ok {
		return BuildProperties{}, false
	}

	return BuildProperties{
		HeadRev:       headRev,
		Repo:          repo,
		ShortRev:      shortRev,
		PullRequestID: r.intProperty("pr_id"),
	}, true
}

// firstProperty returns the unwrapped scalar for a property key.
func (r RawBuildResult) firstProperty(key string) (any, bool) {
	values, ok := r.Properties[key]
	if !ok || len(values) == 0 {
		return nil, false
	}
	return values[0], true
}

func (r RawBuildResult) stringProperty(key string) (string, bool) {
	value, ok := r.firstProperty(key)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// intProperty tolerates the numeric encodings a JSON decode can produce.
// Missing or unparseable values collapse to zero.
func (r RawBuildResult) intProperty(key string) int {
	value, ok := r.firstProperty(key)
	if !ok {
		return 0
	}
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

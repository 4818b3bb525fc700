package driven

import (
	"context"

	"github.com/ColinKinloch/sadm/internal/domain/model"
)

// PullRequestReader defines the driven port for fetching pull request
// data from GitHub.
type PullRequestReader interface {
	// FetchPullRequest returns the base/head revisions and mergeability
	// of a single pull request. repoFullName is "owner/repo".
	FetchPullRequest(ctx context.Context, repoFullName string, number int) (*model.PullRequestDetails, error)
}

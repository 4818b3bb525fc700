package listener

import (
	"github.com/ColinKinloch/sadm/internal/domain/model"
)

// PullRequestListener triggers a build whenever a pull request on a
// maintained repository is opened or gets new commits pushed.
type PullRequestListener struct {
	dispatcher BuildQueue
	maintained map[string]bool
}

// NewPullRequestListener creates a listener feeding the given dispatcher.
// maintained is the set of repositories this instance builds for.
func NewPullRequestListener(dispatcher BuildQueue, maintained []string) *PullRequestListener {
	return &PullRequestListener{
		dispatcher: dispatcher,
		maintained: repoSet(maintained),
	}
}

func (l *PullRequestListener) Accept(evt model.Event) bool {
	return evt.Type() == model.EventTypePullRequest
}

func (l *PullRequestListener) Push(evt model.Event) {
	pr, ok := evt.(model.PullRequestEvent)
	if !ok {
		return
	}
	if pr.Action != "opened" && pr.Action != "synchronize" {
		return
	}
	if !l.maintained[pr.Repo] {
		return
	}

	l.dispatcher.Push(model.BuildTrigger{
		RequestedBy:   pr.Author,
		Trusted:       pr.AuthorTrusted,
		Repo:          pr.Repo,
		PullRequestID: pr.Number,
	})
}

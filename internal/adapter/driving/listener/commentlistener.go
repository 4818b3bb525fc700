package listener

import (
	"strings"

	"github.com/ColinKinloch/sadm/internal/domain/model"
)

// ManualBuildListener lets trusted users request a build of an
// untrusted contributor's pull request by commenting with the rebuild
// keyword. The keyword match is a case-insensitive substring check.
type ManualBuildListener struct {
	dispatcher BuildQueue
	maintained map[string]bool
	keyword    string
}

// NewManualBuildListener creates a listener for rebuild-keyword comments.
func NewManualBuildListener(dispatcher BuildQueue, maintained []string, keyword string) *ManualBuildListener {
	return &ManualBuildListener{
		dispatcher: dispatcher,
		maintained: repoSet(maintained),
		keyword:    strings.ToLower(keyword),
	}
}

func (l *ManualBuildListener) Accept(evt model.Event) bool {
	return evt.Type() == model.EventTypeIssueComment
}

func (l *ManualBuildListener) Push(evt model.Event) {
	comment, ok := evt.(model.IssueCommentEvent)
	if !ok {
		return
	}
	if !comment.AuthorTrusted {
		return
	}
	if !strings.Contains(strings.ToLower(comment.Body), l.keyword) {
		return
	}
	if !l.maintained[comment.Repo] {
		return
	}
	if comment.Action != "created" {
		return
	}

	l.dispatcher.Push(model.BuildTrigger{
		RequestedBy:   comment.Author,
		Trusted:       comment.AuthorTrusted,
		Repo:          comment.Repo,
		PullRequestID: comment.Number,
	})
}

package listener

import (
	"github.com/ColinKinloch/sadm/internal/domain/model"
)

// JournalListener records every outbound status event in the status
// journal. It is wired as a bus tap rather than a regular listener so
// it also sees the topic the event was published on.
type JournalListener struct {
	writer RecordQueue
}

// NewJournalListener creates a listener feeding the given journal writer.
func NewJournalListener(writer RecordQueue) *JournalListener {
	return &JournalListener{writer: writer}
}

// Tap implements eventbus.TapFunc for the outbound status event types.
// Inbound events pass through unrecorded.
func (l *JournalListener) Tap(topic string, evt model.Event) {
	switch e := evt.(type) {
	case model.BuildStatusEvent:
		l.writer.Push(model.StatusRecord{
			Topic:         topic,
			Repo:          e.Repo,
			PullRequestID: e.PullRequestID,
			Builder:       e.Builder,
			HeadRev:       e.HeadRev,
			Success:       e.Success,
			Pending:       e.Pending,
			URL:           e.URL,
			Description:   e.Description,
		})
	case model.PullRequestFifoCIEvent:
		l.writer.Push(model.StatusRecord{
			Topic:         topic,
			Repo:          e.Repo,
			PullRequestID: e.PullRequestID,
			Builder:       e.Builder,
			HeadRev:       e.HeadRev,
			Success:       true,
			Pending:       false,
		})
	}
}

package listener

import (
	"github.com/ColinKinloch/sadm/internal/domain/model"
)

// BuildbotHookListener forwards raw farm callbacks to the status
// collector. All filtering happens in the collector itself.
type BuildbotHookListener struct {
	collector ResultQueue
}

// NewBuildbotHookListener creates a listener feeding the given collector.
func NewBuildbotHookListener(collector ResultQueue) *BuildbotHookListener {
	return &BuildbotHookListener{collector: collector}
}

func (l *BuildbotHookListener) Accept(evt model.Event) bool {
	return evt.Type() == model.EventTypeBuildbotHook
}

func (l *BuildbotHookListener) Push(evt model.Event) {
	hook, ok := evt.(model.BuildbotHookEvent)
	if !ok {
		return
	}
	l.collector.Push(hook.Result)
}

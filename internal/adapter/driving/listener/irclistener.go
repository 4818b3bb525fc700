package listener

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ColinKinloch/sadm/internal/domain/model"
)

// rebuildPattern matches "rebuild 1234" and "rebuild pr 1234" commands.
var rebuildPattern = regexp.MustCompile(`(?i)\brebuild (pr ?)?(\d+)\b`)

// IRCRebuildListener triggers builds from chat: a channel operator
// addressing the bot directly with a rebuild command. Chat identities
// carry no GitHub trust mapping, so operator status is the privilege
// check and the resulting trigger is always trusted.
type IRCRebuildListener struct {
	dispatcher BuildQueue
	repo       string
}

// NewIRCRebuildListener creates a listener targeting the given repository.
func NewIRCRebuildListener(dispatcher BuildQueue, repo string) *IRCRebuildListener {
	return &IRCRebuildListener{
		dispatcher: dispatcher,
		repo:       repo,
	}
}

func (l *IRCRebuildListener) Accept(evt model.Event) bool {
	return evt.Type() == model.EventTypeIRCMessage
}

func (l *IRCRebuildListener) Push(evt model.Event) {
	msg, ok := evt.(model.IRCMessageEvent)
	if !ok {
		return
	}

	trusted := strings.Contains(msg.Modes, "o")
	if !msg.Direct || !trusted {
		return
	}

	matches := rebuildPattern.FindStringSubmatch(msg.What)
	if matches == nil {
		return
	}
	prID, err := strconv.Atoi(matches[2])
	if err != nil {
		return
	}

	l.dispatcher.Push(model.BuildTrigger{
		RequestedBy:   msg.Who,
		Trusted:       trusted,
		Repo:          l.repo,
		PullRequestID: prID,
	})
}

package model

// Event is anything routed through the event bus. The string tag mirrors
// the type taxonomy of the external event router so listeners can filter
// without reflection.
type Event interface {
	Type() string
}

// Event type tags.
const (
	EventTypePullRequest  = "gh_pull_request"
	EventTypeIssueComment = "gh_issue_comment"
	EventTypeIRCMessage   = "irc_message"
	EventTypeBuildbotHook = "raw_bb_hook"
	EventTypeBuildStatus  = "build_status"
	EventTypeFifoCIStatus = "pr_fifoci_status"
)

// PullRequestEvent announces that a pull request was opened, synchronized,
// closed, or otherwise changed on the source-control host.
type PullRequestEvent struct {
	Action        string // opened, synchronize, closed, ...
	Repo          string // owner/name
	Author        string
	AuthorTrusted bool // Whether the author may trigger builds of their own code.
	Number        int
}

// Type implements Event.
func (PullRequestEvent) Type() string { return EventTypePullRequest }

// IssueCommentEvent announces a comment posted on an issue or pull request.
type IssueCommentEvent struct {
	Action        string // created, edited, deleted.
	Repo          string // owner/name
	Author        string
	AuthorTrusted bool
	Body          string
	Number        int
}

// Type implements Event.
func (IssueCommentEvent) Type() string { return EventTypeIssueComment }

// IRCMessageEvent carries one line of IRC traffic seen by the chat frontend.
type IRCMessageEvent struct {
	Who    string // Sender nick.
	Modes  string // Channel mode characters held by the sender, e.g. "ov".
	Direct bool   // True when the message was addressed to the bot.
	What   string // Message text.
}

// Type implements Event.
func (IRCMessageEvent) Type() string { return EventTypeIRCMessage }

// BuildbotHookEvent wraps one raw result callback received from the build
// farm's status hook.
type BuildbotHookEvent struct {
	Result RawBuildResult
}

// Type implements Event.
func (BuildbotHookEvent) Type() string { return EventTypeBuildbotHook }

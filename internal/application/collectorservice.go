package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ColinKinloch/sadm/internal/domain/model"
	"github.com/ColinKinloch/sadm/internal/domain/port/driven"
)

// CollectorService consumes raw build results from the farm, one at a
// time, and demultiplexes them into normalized status events. It is
// pure classification: no network or filesystem I/O happens here.
type CollectorService struct {
	events         driven.EventSink
	prBuilders     map[string]bool
	fifociBuilders map[string]bool
	queue          *fifo[model.RawBuildResult]
}

// NewCollectorService creates a new CollectorService. A builder name
// configured in both sets is classified as a PR builder.
func NewCollectorService(events driven.EventSink, prBuilders, fifociBuilders []string) *CollectorService {
	return &CollectorService{
		events:         events,
		prBuilders:     builderSet(prBuilders),
		fifociBuilders: builderSet(fifociBuilders),
		queue:          newFifo[model.RawBuildResult](),
	}
}

func builderSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Push enqueues a raw build result. Safe to call from any goroutine;
// never blocks.
func (s *CollectorService) Push(result model.RawBuildResult) {
	s.queue.push(result)
}

// Run consumes results until the context is cancelled.
func (s *CollectorService) Run(ctx context.Context) error {
	for {
		result, ok := s.queue.pop(ctx)
		if !ok {
			slog.Info("status collector stopped")
			return nil
		}
		s.process(result)
	}
}

func (s *CollectorService) process(result model.RawBuildResult) {
	props, ok := result.CollapseProperties()
	if !ok {
		// Results from unrelated builders routinely lack the PR
		// properties; unattributable noise, not an error.
		return
	}

	pending := result.Pending()
	success := result.Succeeded()

	switch {
	case s.prBuilders[result.Builder]:
		var description string
		switch {
		case pending:
			description = fmt.Sprintf("Auto build in progress on builder %s", result.Builder)
		case success:
			description = fmt.Sprintf("Build succeeded on builder %s", result.Builder)
		default:
			description = fmt.Sprintf("Build failed on builder %s", result.Builder)
		}

		s.events.Dispatch(TopicBuildbot, model.BuildStatusEvent{
			Repo:          props.Repo,
			HeadRev:       props.HeadRev,
			ShortRev:      props.ShortRev,
			Builder:       result.Builder,
			PullRequestID: props.PullRequestID,
			Success:       success,
			Pending:       pending,
			URL:           result.URL,
			Description:   description,
		})

	case props.PullRequestID != 0 && s.fifociBuilders[result.Builder] && success:
		s.events.Dispatch(TopicBuildbot, model.PullRequestFifoCIEvent{
			Repo:          props.Repo,
			HeadRev:       props.HeadRev,
			Builder:       result.Builder,
			PullRequestID: props.PullRequestID,
		})
	}
}

package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ColinKinloch/sadm/internal/domain/model"
	"github.com/ColinKinloch/sadm/internal/domain/port/driven"
)

// Bus topics this pipeline publishes status events on.
const (
	TopicPRBuilder = "prbuilder"
	TopicBuildbot  = "buildbot"
)

// DispatchService consumes build triggers one at a time: it applies the
// trust and mergeability policy, emits progress status events, and hands
// accepted jobs to the build farm. Triggers are processed strictly in
// arrival order with no internal parallelism, so the status events for a
// given pull request appear in a deterministic order.
type DispatchService struct {
	prReader     driven.PullRequestReader
	submitter    driven.BuildSubmitter
	events       driven.EventSink
	prBuilders   []string
	buildbotURL  string
	fetchTimeout time.Duration
	queue        *fifo[model.BuildTrigger]
}

// NewDispatchService creates a new DispatchService with all required
// dependencies. prBuilders holds the configured PR builder names in the
// order pending placeholders should be emitted; buildbotURL is the farm
// base URL attached to those placeholders.
func NewDispatchService(
	prReader driven.PullRequestReader,
	submitter driven.BuildSubmitter,
	events driven.EventSink,
	prBuilders []string,
	buildbotURL string,
	fetchTimeout time.Duration,
) *DispatchService {
	return &DispatchService{
		prReader:     prReader,
		submitter:    submitter,
		events:       events,
		prBuilders:   prBuilders,
		buildbotURL:  buildbotURL,
		fetchTimeout: fetchTimeout,
		queue:        newFifo[model.BuildTrigger](),
	}
}

// Push enqueues a build trigger. Safe to call from any goroutine; never
// blocks.
func (s *DispatchService) Push(trigger model.BuildTrigger) {
	s.queue.push(trigger)
}

// Run consumes triggers until the context is cancelled. A failure while
// processing one trigger is logged and the loop moves on; the trigger is
// abandoned, not retried.
func (s *DispatchService) Run(ctx context.Context) error {
	for {
		trigger, ok := s.queue.pop(ctx)
		if !ok {
			slog.Info("dispatch worker stopped")
			return nil
		}

		if err := s.process(ctx, trigger); err != nil {
			slog.Error("build dispatch failed",
				"repo", trigger.Repo,
				"pr_number", trigger.PullRequestID,
				"requested_by", trigger.RequestedBy,
				"error", err,
			)
		}
	}
}

func (s *DispatchService) process(ctx context.Context, trigger model.BuildTrigger) error {
	// Mergeability is only exposed on the single-PR endpoint, so every
	// trigger costs one fetch.
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	details, err := s.prReader.FetchPullRequest(fetchCtx, trigger.Repo, trigger.PullRequestID)
	if err != nil {
		return err
	}

	slog.Info("pull request mergeability",
		"repo", trigger.Repo,
		"pr_number", trigger.PullRequestID,
		"mergeable", string(details.Mergeable),
		"state", details.MergeableState,
	)

	headRev := details.HeadSHA
	shortRev := model.ShortRev(headRev)

	if !trigger.Trusted {
		s.events.Dispatch(TopicPRBuilder, model.BuildStatusEvent{
			Repo:          trigger.Repo,
			HeadRev:       headRev,
			ShortRev:      shortRev,
			Builder:       model.DefaultBuilder,
			PullRequestID: trigger.PullRequestID,
			Success:       false,
			Pending:       false,
			Description:   fmt.Sprintf("PR not built because %s is not auto-trusted.", trigger.RequestedBy),
		})
		return nil
	}

	// Mergeability can be unknown while GitHub computes it; only an
	// explicit conflict rejects the build.
	if details.KnownUnmergeable() {
		s.events.Dispatch(TopicPRBuilder, model.BuildStatusEvent{
			Repo:          trigger.Repo,
			HeadRev:       headRev,
			ShortRev:      shortRev,
			Builder:       model.DefaultBuilder,
			PullRequestID: trigger.PullRequestID,
			Success:       false,
			Pending:       false,
			Description:   "PR cannot be merged, please rebase.",
		})
		return nil
	}

	s.events.Dispatch(TopicPRBuilder, model.BuildStatusEvent{
		Repo:          trigger.Repo,
		HeadRev:       headRev,
		ShortRev:      shortRev,
		Builder:       model.DefaultBuilder,
		PullRequestID: trigger.PullRequestID,
		Success:       true,
		Pending:       false,
		Description:   "Very basic checks passed, handed off to Buildbot.",
	})

	// The aggregate event goes out first, then one placeholder per
	// builder in configured order, so observers see a monotonically
	// expanding status set.
	for _, builder := range s.prBuilders {
		s.events.Dispatch(TopicPRBuilder, model.BuildStatusEvent{
			Repo:          trigger.Repo,
			HeadRev:       headRev,
			ShortRev:      shortRev,
			Builder:       builder,
			PullRequestID: trigger.PullRequestID,
			Success:       false,
			Pending:       true,
			URL:           s.buildbotURL,
			Description:   "Auto build pending",
		})
	}

	job := model.NewBuildJob(
		trigger.Repo,
		trigger.PullRequestID,
		details.BaseSHA,
		headRev,
		fmt.Sprintf("Central (on behalf of: %s)", trigger.RequestedBy),
		s.prBuilders,
		fmt.Sprintf("Auto build for PR #%d (%s).", trigger.PullRequestID, headRev),
	)
	return s.submitter.Submit(job)
}

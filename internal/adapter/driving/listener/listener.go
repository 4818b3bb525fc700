// Package listener contains the bus listeners that drive the pipeline:
// they filter typed events coming off the event bus and feed the worker
// queues. Parsing raw webhook or chat payloads into typed events happens
// upstream, in the frontends that publish onto the bus.
package listener

import (
	"github.com/ColinKinloch/sadm/internal/adapter/driven/eventbus"
	"github.com/ColinKinloch/sadm/internal/domain/model"
)

// Compile-time interface satisfaction checks.
var (
	_ eventbus.Listener = (*PullRequestListener)(nil)
	_ eventbus.Listener = (*ManualBuildListener)(nil)
	_ eventbus.Listener = (*IRCRebuildListener)(nil)
	_ eventbus.Listener = (*BuildbotHookListener)(nil)
)

// BuildQueue accepts build triggers; satisfied by the dispatch worker.
type BuildQueue interface {
	Push(trigger model.BuildTrigger)
}

// ResultQueue accepts raw farm results; satisfied by the status collector.
type ResultQueue interface {
	Push(result model.RawBuildResult)
}

// RecordQueue accepts journal records; satisfied by the journal writer.
type RecordQueue interface {
	Push(rec model.StatusRecord)
}

func repoSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

package driven

import "github.com/ColinKinloch/sadm/internal/domain/model"

// EventSink defines the driven port for publishing events to interested
// listeners. Dispatch must not block on slow consumers; implementations
// are expected to hand events off to per-consumer queues.
type EventSink interface {
	Dispatch(topic string, evt model.Event)
}

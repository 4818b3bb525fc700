// Package eventbus provides the in-process event dispatcher connecting
// event producers (workers, external frontends) to registered listeners.
package eventbus

import (
	"log/slog"
	"sync"

	"github.com/ColinKinloch/sadm/internal/domain/model"
	"github.com/ColinKinloch/sadm/internal/domain/port/driven"
)

var _ driven.EventSink = (*Bus)(nil)

// Listener receives events from the bus. Accept is a cheap filter;
// Push must not block, typically handing the event to an internal queue.
type Listener interface {
	Accept(evt model.Event) bool
	Push(evt model.Event)
}

// TapFunc observes every dispatched event together with its topic,
// before listener fan-out. Taps see events regardless of Accept filters.
type TapFunc func(topic string, evt model.Event)

// Bus fans events out to every registered listener whose Accept returns
// true. Dispatch is safe to call from multiple goroutines; fan-out is
// synchronous, so listeners are expected to queue rather than process
// in place.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
	taps      []TapFunc
}

func New() *Bus {
	return &Bus{}
}

// Register adds a listener. Listeners cannot be removed; the set is
// fixed once the pipeline is wired.
func (b *Bus) Register(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
}

// Tap adds an observer for all dispatched events.
func (b *Bus) Tap(fn TapFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.taps = append(b.taps, fn)
}

// Dispatch publishes an event on the given topic. The topic labels the
// producer; listeners filter on the event itself.
func (b *Bus) Dispatch(topic string, evt model.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	slog.Debug("dispatching event", "topic", topic, "type", evt.Type())

	for _, tap := range b.taps {
		tap(topic, evt)
	}
	for _, l := range b.listeners {
		if l.Accept(evt) {
			l.Push(evt)
		}
	}
}

package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/flo-mobility/admin-console/internal/events"
)

const sinkTimeout = 10 * time.Second

// Sink consumes console events off the request path.
type Sink interface {
	Name() string
	Handle(ctx context.Context, event events.Event) error
}

// EventWorker fans queued events out to the configured sinks.
type EventWorker struct {
	queue  chan events.Event
	sinks  []Sink
	logger *zap.Logger
	wg     sync.WaitGroup

	// mu keeps sends and the queue close from racing.
	mu      sync.RWMutex
	stopped bool
}

// NewEventWorker creates a worker with a bounded queue.
func NewEventWorker(logger *zap.Logger, buffer int, sinks ...Sink) *EventWorker {
	if buffer <= 0 {
		buffer = 256
	}
	return &EventWorker{queue: make(chan events.Event, buffer), sinks: sinks, logger: logger}
}

// StartEventWorker subscribes the worker to every console event and starts
// draining the queue.
func StartEventWorker(dispatcher events.Dispatcher, w *EventWorker) {
	if dispatcher == nil || w == nil || len(w.sinks) == 0 {
		return
	}
	events.SubscribeAll(dispatcher, w.Enqueue)
	w.wg.Add(1)
	go w.run()
}

// Enqueue hands an event to the worker. A full queue, or a stopped worker,
// drops the event.
func (w *EventWorker) Enqueue(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		w.logger.Warn("event worker stopped; dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
		return nil
	}
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("event queue full; dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
	return nil
}

// Stop drains queued events and waits for the worker to exit.
func (w *EventWorker) Stop() {
	if w == nil {
		return
	}
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.queue)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *EventWorker) run() {
	defer w.wg.Done()
	for event := range w.queue {
		for _, sink := range w.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
			if err := sink.Handle(ctx, event); err != nil {
				w.logger.Error("event sink failed",
					zap.String("sink", sink.Name()),
					zap.String("event_id", event.ID),
					zap.String("event_type", string(event.Type)),
					zap.Error(err))
			}
			cancel()
		}
	}
}

package orchestration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lupine-games/werewolf-core/core/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const gameEventQueueCapacity = 256

// eventLoop serializes game event processing: events are ingested from any
// goroutine but handled strictly one at a time, in ingestion order. Handlers
// may ingest follow-up events; those queue behind everything already pending.
type eventLoop struct {
	queue   chan eventQueueItem
	closeCh chan struct{}
	done    chan struct{}

	startOnce sync.Once
	endOnce   sync.Once

	started atomic.Bool
}

func newEventLoop() *eventLoop {
	return &eventLoop{
		queue:   make(chan eventQueueItem, gameEventQueueCapacity),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (loop *eventLoop) CanIngest() bool {
	if loop == nil {
		return false
	}

	select {
	case <-loop.closeCh:
		return false
	default:
		return true
	}
}

func (loop *eventLoop) StartLoop(baseCtx context.Context, handle func(context.Context, events.Event) error) (started bool) {
	if loop == nil || handle == nil || !loop.CanIngest() {
		return false
	}

	loop.startOnce.Do(func() {
		if !loop.CanIngest() {
			return
		}

		started = true
		loop.started.Store(true)
		go func() {
			defer close(loop.done)

			for {
				select {
				case <-loop.closeCh:
					return
				case queuedEvent := <-loop.queue:
					if !loop.CanIngest() {
						return
					}
					loop.processQueuedEvent(baseCtx, queuedEvent, handle)
				}
			}
		}()
	})

	return started
}

func (loop *eventLoop) Stop() {
	if loop == nil {
		return
	}

	loop.endOnce.Do(func() { close(loop.closeCh) })
}

func (loop *eventLoop) AwaitDone() {
	if loop == nil {
		return
	}

	if loop.started.Load() {
		<-loop.done
	}
}

type eventQueueItem struct {
	event    events.Event
	queuedAt time.Time
}

func (loop *eventLoop) Ingest(event events.Event) bool {
	if loop == nil || !loop.CanIngest() {
		return false
	}

	queueItem := eventQueueItem{event: event, queuedAt: time.Now()}
	select {
	case <-loop.closeCh:
		return false
	case loop.queue <- queueItem:
		return true
	}
}

func (loop *eventLoop) processQueuedEvent(
	baseContext context.Context,
	queuedEvent eventQueueItem,
	handle func(context.Context, events.Event) error,
) {
	if loop == nil || handle == nil {
		return
	}

	eventCtx, eventCancel := context.WithCancel(baseContext)
	defer eventCancel()

	go func() {
		select {
		case <-loop.closeCh:
			eventCancel()
		case <-eventCtx.Done():
		}
	}()

	ctx, span := tracer.Start(eventCtx, "process game event")
	defer span.End()

	queuedTime := time.Since(queuedEvent.queuedAt).Seconds()
	span.SetAttributes(
		attribute.String("game_event.kind", queuedEvent.event.Kind().String()),
		attribute.Float64("game_event.queued_time", queuedTime),
	)
	span.AddEvent("taken out of queue", trace.WithAttributes(attribute.Float64("game_event.queued_time", queuedTime)))

	if err := handle(ctx, queuedEvent.event); err != nil {
		err := fmt.Errorf("failed to handle game event: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

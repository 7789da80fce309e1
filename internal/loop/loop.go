package loop

import (
	"context"
	"fmt"
	"log/slog"

	"upvote-bot/internal/bus"
	"upvote-bot/internal/metrics"
	"upvote-bot/internal/threads"
)

// Source is one end of the gateway event stream: a channel of decoded events
// and a best-effort close handshake.
type Source interface {
	Events() <-chan bus.GatewayEvent
	Close(ctx context.Context) error
}

// ThreadHandler processes a single thread-create event.
type ThreadHandler interface {
	HandleThreadCreate(event bus.ThreadCreated) error
}

// Loop consumes gateway events one at a time until it observes a cancellation
// or a fatal transport error, then closes the source exactly once.
type Loop struct {
	source  Source
	handler ThreadHandler
	logger  *slog.Logger
}

func New(source Source, handler ThreadHandler, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}

	return &Loop{
		source:  source,
		handler: handler,
		logger:  logger,
	}
}

// Run blocks until ctx is canceled or the source reports a fatal transport
// error. Each iteration races the next event against cancellation; neither
// has priority. Per-event failures are reduced to a single log line and the
// loop moves on.
func (l *Loop) Run(ctx context.Context) {
	defer l.closeSource()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-l.source.Events():
			switch payload := event.(type) {
			case bus.ThreadCreated:
				metrics.GatewayEventsTotal.WithLabelValues("thread_create").Inc()
				metrics.ThreadsHandledTotal.Inc()
				if err := l.handler.HandleThreadCreate(payload); err != nil {
					kind := threads.Kind(err)
					metrics.HandlerErrorsTotal.WithLabelValues(kind).Inc()
					l.logger.Error(
						"thread handling failed",
						slog.Any("err", err),
						slog.String("kind", kind),
						slog.String("thread_id", payload.ThreadID.String()),
					)
				}
			case bus.TransportError:
				metrics.GatewayEventsTotal.WithLabelValues("transport_error").Inc()
				l.logger.Error(
					"error receiving event",
					slog.Any("err", payload.Err),
					slog.Bool("fatal", payload.Fatal),
				)
				if payload.Fatal {
					return
				}
			default:
				l.logger.Warn("unknown gateway event", slog.String("type", fmt.Sprintf("%T", event)))
			}
		}
	}
}

func (l *Loop) closeSource() {
	if err := l.source.Close(context.Background()); err != nil {
		l.logger.Warn("gateway close failed", slog.Any("err", err))
	}
}

package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/grandvia/hotel-system/internal/api/metrics"
	"github.com/grandvia/hotel-system/internal/core/domain"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Repository is the persistence side of the audit trail.
type Repository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// Dispatcher is the fire-and-forget audit sink. Record hands the event to a
// buffered channel and returns immediately; worker goroutines persist in the
// background. A full buffer or a failed write is logged and counted, never
// propagated: audit must not abort or slow the operation that emitted it.
type Dispatcher struct {
	events  chan *domain.AuditEvent
	repo    Repository
	workers int
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers background writers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo Repository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{
		events:  make(chan *domain.AuditEvent, channelBuffer),
		repo:    repo,
		workers: numWorkers,
		log:     log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.runWorker(ctx, i)
	}
}

// Record accepts an event without blocking. Events arriving while the buffer
// is full are dropped (logged and counted), keeping the caller unaffected.
func (d *Dispatcher) Record(event *domain.AuditEvent) {
	select {
	case d.events <- event:
		metrics.AuditEventsTotal.WithLabelValues(event.Action).Inc()
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().Str("action", event.Action).Msg("audit buffer full, event dropped")
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-d.events:
			if !ok {
				return
			}
			// Writes get their own deadline, detached from any request
			// context: the emitting request may already be finished.
			writeCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err := d.repo.Insert(writeCtx, event)
			cancel()
			if err != nil {
				metrics.AuditDroppedTotal.Inc()
				d.log.Error().Err(err).
					Str("action", event.Action).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}

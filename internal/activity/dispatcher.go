package activity

import (
	"context"

	"go.uber.org/zap"
)

type Writer interface {
	Write(ctx context.Context, rec Record) error
}

// Dispatcher queues records for a single background writer and drops them
// when the queue is full.
type Dispatcher struct {
	writer Writer
	log    *zap.Logger
	queue  chan Record
	done   chan struct{}
}

func NewDispatcher(writer Writer, log *zap.Logger, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 100
	}

	d := &Dispatcher{
		writer: writer,
		log:    log,
		queue:  make(chan Record, buffer),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for rec := range d.queue {
		if err := d.writer.Write(context.Background(), rec); err != nil {
			d.log.Error("activity write failed",
				zap.String("booking_id", rec.BookingID),
				zap.String("action", rec.Action),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Emit(rec Record) {
	select {
	case d.queue <- rec:
	default:
		d.log.Warn("activity queue full, dropping record",
			zap.String("booking_id", rec.BookingID),
			zap.String("action", rec.Action),
		)
	}
}

// Close drains the queue. Emit must not be called afterwards.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

var _ Hook = (*Dispatcher)(nil)

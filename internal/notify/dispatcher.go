package notify

import "go.uber.org/zap"

// Dispatcher queues events and hands them to the sink on a worker
// goroutine, so scheduling paths never block on delivery.
type Dispatcher struct {
	sink   Sink
	logger *zap.Logger
	queue  chan Event
}

func NewDispatcher(sink Sink, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Send(ev); err != nil {
			d.logger.Warn("notification delivery failed",
				zap.String("appointment_id", ev.AppointmentID),
				zap.String("type", ev.Type),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// Queue full: drop rather than block a scheduling request.
		d.logger.Warn("notification queue full, dropping event",
			zap.String("appointment_id", ev.AppointmentID),
		)
	}
}

// Send satisfies Sink so a Dispatcher can be passed wherever a plain sink
// is expected.
func (d *Dispatcher) Send(ev Event) error {
	d.Dispatch(ev)
	return nil
}

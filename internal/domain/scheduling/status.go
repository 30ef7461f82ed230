package scheduling

import "github.com/schedula/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled         Status = "scheduled"
	StatusRescheduled       Status = "rescheduled"
	StatusCancelled         Status = "cancelled"
	StatusPendingReschedule Status = "pending-reschedule"
)

// ActiveStatuses are the statuses that occupy a slot. Cancelled and
// pending-reschedule appointments do not block availability.
var ActiveStatuses = []string{string(StatusScheduled), string(StatusRescheduled)}

// ReasonCancelledByShrink marks appointments a shrink cancelled pending
// redistribution, as opposed to patient-initiated cancellations.
const ReasonCancelledByShrink = "cancelled_by_shrink"

func IsActive(s string) bool {
	return s == string(StatusScheduled) || s == string(StatusRescheduled)
}

// CanCancel reports whether a patient may cancel an appointment in the
// given state.
func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrConflict("invalid_state", "Appointment is already cancelled.")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}

package template

import (
	"fmt"

	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

// checkLeadTime enforces the advance-notice rule for same-day schedule
// changes: a session starting in less than minAdvance minutes of local
// wall-clock time cannot be regenerated or overridden, unless the caller
// holds the bypass flag.
func checkLeadTime(tz, date, sessionStart string, minAdvance int, bypass bool) error {
	if bypass {
		return nil
	}
	if date != timeutil.Today(tz) {
		return nil
	}

	now := timeutil.ToMinutes(timeutil.CurrentTime(tz))
	start := timeutil.ToMinutes(sessionStart)
	if start-now < minAdvance {
		return httperr.ErrConflict(
			"insufficient_lead_time",
			fmt.Sprintf("Today's session can only be changed up to %d minutes before it starts.", minAdvance),
		)
	}
	return nil
}

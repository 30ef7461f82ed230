package scheduling

import (
	"sort"

	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

// Progressive compaction tries these durations in order when a shrunk
// window can no longer hold every appointment at its original length.
// Ten minutes is the hard floor.
var CompactionDurations = []int{25, 20, 15, 10}

const MinCompactedDuration = 10

// Classification partitions a date's appointments after a schedule shrink.
type Classification struct {
	// Active appointments whose [start,end) lies inside the new window,
	// capped at MaxAppointments, earliest first.
	Fits []models.Appointment
	// Active appointments outside the window or beyond capacity.
	Overflow []models.Appointment
	// Appointments already cancelled or left pending by an earlier shrink;
	// they go straight to redistribution.
	DefiniteOverflow []models.Appointment
}

// Active returns every appointment the compaction step must place: the
// fitting and overflowing active ones, in original start-time order.
func (c Classification) Active() []models.Appointment {
	all := append(append([]models.Appointment{}, c.Fits...), c.Overflow...)
	sort.SliceStable(all, func(i, j int) bool {
		return timeutil.ToMinutes(all[i].StartTime) < timeutil.ToMinutes(all[j].StartTime)
	})
	return all
}

// Classify partitions appointments against a new window [start,end) and
// capacity. maxAppointments <= 0 means uncapped.
func Classify(appts []models.Appointment, start, end string, maxAppointments int) Classification {
	startMin := timeutil.ToMinutes(start)
	endMin := timeutil.ToMinutes(end)

	var cls Classification
	seen := map[string]bool{}

	var active []models.Appointment
	for _, a := range appts {
		if IsActive(a.Status) {
			active = append(active, a)
			continue
		}
		if !seen[a.ID] {
			seen[a.ID] = true
			cls.DefiniteOverflow = append(cls.DefiniteOverflow, a)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return timeutil.ToMinutes(active[i].StartTime) < timeutil.ToMinutes(active[j].StartTime)
	})

	var inRange []models.Appointment
	for _, a := range active {
		aStart := timeutil.ToMinutes(a.StartTime)
		aEnd := timeutil.ToMinutes(a.EndTime)
		if aStart >= startMin && aEnd <= endMin {
			inRange = append(inRange, a)
		} else if !seen[a.ID] {
			seen[a.ID] = true
			cls.Overflow = append(cls.Overflow, a)
		}
	}

	// Capacity check keeps the earliest N of the time-fitting set.
	if maxAppointments > 0 && len(inRange) > maxAppointments {
		for _, a := range inRange[maxAppointments:] {
			if !seen[a.ID] {
				seen[a.ID] = true
				cls.Overflow = append(cls.Overflow, a)
			}
		}
		inRange = inRange[:maxAppointments]
	}

	cls.Fits = inRange
	return cls
}

// CompactionPlan is the outcome of the progressive-duration search.
type CompactionPlan struct {
	Duration int  // selected per-appointment duration in minutes
	Fitted   int  // how many appointments get a place in the window
	Uniform  bool // true when every appointment fits at Duration
}

// PlanCompaction decides how n appointments can be re-packed into a window
// of windowMinutes with the given buffer between them. It first tries to
// fit all n at a uniformly reduced duration so no patient is dropped while
// another keeps full length; failing that it maximizes the fitted count,
// preferring the largest workable duration. ok is false when not even one
// appointment fits at the ten-minute floor.
func PlanCompaction(n, windowMinutes, buffer, maxAppointments int) (plan CompactionPlan, ok bool) {
	if n <= 0 {
		return CompactionPlan{}, false
	}

	for _, d := range CompactionDurations {
		need := n*d + (n-1)*buffer
		if need <= windowMinutes && (maxAppointments <= 0 || n <= maxAppointments) {
			return CompactionPlan{Duration: d, Fitted: n, Uniform: true}, true
		}
	}

	best := 0
	bestD := 0
	for _, d := range CompactionDurations {
		fit := windowMinutes / (d + buffer)
		if maxAppointments > 0 && fit > maxAppointments {
			fit = maxAppointments
		}
		if fit > n {
			fit = n
		}
		if fit > best {
			best = fit
			bestD = d
		}
	}

	if best == 0 {
		return CompactionPlan{}, false
	}
	return CompactionPlan{Duration: bestD, Fitted: best}, true
}

// Repack lays out count back-to-back slots of the planned duration from
// the window start, separated by buffer.
func Repack(start string, duration, buffer, count int) []TimeSlot {
	slots := make([]TimeSlot, 0, count)
	cur := timeutil.ToMinutes(start)
	for i := 0; i < count; i++ {
		slots = append(slots, TimeSlot{
			StartTime: timeutil.FromMinutes(cur),
			EndTime:   timeutil.FromMinutes(cur + duration),
		})
		cur += duration + buffer
	}
	return slots
}

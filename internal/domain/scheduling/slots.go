package scheduling

import "github.com/schedula/clinic-scheduler/internal/timeutil"

type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Key identifies a slot within a day, for booked-set membership checks.
func (s TimeSlot) Key() string {
	return s.StartTime + "-" + s.EndTime
}

// GenerateSlots emits the ordered candidate slots of a schedule window.
// Starting at start it emits [current, current+duration) while the slot
// still ends within the window, advancing by duration+buffer. maxCount <= 0
// means uncapped. A duration larger than the window yields no slots.
func GenerateSlots(start, end string, duration, buffer, maxCount int) []TimeSlot {
	slots := []TimeSlot{}
	if duration <= 0 {
		return slots
	}

	current := timeutil.ToMinutes(start)
	endMin := timeutil.ToMinutes(end)
	if current < 0 || endMin < 0 {
		return slots
	}

	for current+duration <= endMin {
		slots = append(slots, TimeSlot{
			StartTime: timeutil.FromMinutes(current),
			EndTime:   timeutil.FromMinutes(current + duration),
		})
		if maxCount > 0 && len(slots) >= maxCount {
			break
		}
		current += duration + buffer
	}

	return slots
}

// Overlaps reports whether two half-open minute ranges intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

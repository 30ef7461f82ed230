package scheduling

import "github.com/schedula/clinic-scheduler/internal/timeutil"

type Bucket string

const (
	BucketMorning   Bucket = "morning"
	BucketAfternoon Bucket = "afternoon"
	BucketEvening   Bucket = "evening"
)

// BucketConfig holds the time-of-day boundaries used by overflow
// redistribution. The boundaries are configuration, not constants.
type BucketConfig struct {
	MorningStart   string // default 09:00
	AfternoonStart string // default 12:00
	EveningStart   string // default 17:00
	EveningEnd     string // default 20:00
}

func DefaultBucketConfig() BucketConfig {
	return BucketConfig{
		MorningStart:   "09:00",
		AfternoonStart: "12:00",
		EveningStart:   "17:00",
		EveningEnd:     "20:00",
	}
}

// Order returns the buckets in redistribution search order.
func (c BucketConfig) Order() []Bucket {
	return []Bucket{BucketMorning, BucketAfternoon, BucketEvening}
}

// Window returns the [start, end) minute range of a bucket.
func (c BucketConfig) Window(b Bucket) (int, int) {
	switch b {
	case BucketMorning:
		return timeutil.ToMinutes(c.MorningStart), timeutil.ToMinutes(c.AfternoonStart)
	case BucketAfternoon:
		return timeutil.ToMinutes(c.AfternoonStart), timeutil.ToMinutes(c.EveningStart)
	default:
		return timeutil.ToMinutes(c.EveningStart), timeutil.ToMinutes(c.EveningEnd)
	}
}

// BucketFor classifies a wall-clock time into its time-of-day bucket.
func (c BucketConfig) BucketFor(hm string) Bucket {
	m := timeutil.ToMinutes(hm)
	switch {
	case m < timeutil.ToMinutes(c.AfternoonStart):
		return BucketMorning
	case m < timeutil.ToMinutes(c.EveningStart):
		return BucketAfternoon
	default:
		return BucketEvening
	}
}

// SearchTarget is one step of the same-day-first search used by the
// overflow preview: a morning session overflows into the same day's later
// buckets before spilling to the next day.
type SearchTarget struct {
	DayOffset int    `json:"day_offset"` // 0 = same day
	Bucket    Bucket `json:"bucket,omitempty"`
}

// SearchPriority returns the preview search order for a session starting in
// the given bucket.
func (c BucketConfig) SearchPriority(sessionBucket Bucket) []SearchTarget {
	switch sessionBucket {
	case BucketMorning:
		return []SearchTarget{
			{DayOffset: 0, Bucket: BucketAfternoon},
			{DayOffset: 0, Bucket: BucketEvening},
			{DayOffset: 1},
		}
	case BucketAfternoon:
		return []SearchTarget{
			{DayOffset: 0, Bucket: BucketEvening},
			{DayOffset: 1},
		}
	default:
		return []SearchTarget{{DayOffset: 1}}
	}
}

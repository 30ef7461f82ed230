package scheduling

import "testing"

func TestBucketFor(t *testing.T) {
	cfg := DefaultBucketConfig()
	cases := []struct {
		hm   string
		want Bucket
	}{
		{"08:00", BucketMorning},
		{"09:00", BucketMorning},
		{"11:59", BucketMorning},
		{"12:00", BucketAfternoon},
		{"16:59", BucketAfternoon},
		{"17:00", BucketEvening},
		{"19:30", BucketEvening},
	}
	for _, c := range cases {
		if got := cfg.BucketFor(c.hm); got != c.want {
			t.Errorf("BucketFor(%q) = %s, want %s", c.hm, got, c.want)
		}
	}
}

func TestBucketWindow(t *testing.T) {
	cfg := DefaultBucketConfig()
	if s, e := cfg.Window(BucketMorning); s != 540 || e != 720 {
		t.Errorf("morning window = [%d,%d)", s, e)
	}
	if s, e := cfg.Window(BucketAfternoon); s != 720 || e != 1020 {
		t.Errorf("afternoon window = [%d,%d)", s, e)
	}
	if s, e := cfg.Window(BucketEvening); s != 1020 || e != 1200 {
		t.Errorf("evening window = [%d,%d)", s, e)
	}
}

func TestSearchPriority(t *testing.T) {
	cfg := DefaultBucketConfig()

	morning := cfg.SearchPriority(BucketMorning)
	if len(morning) != 3 {
		t.Fatalf("morning priority has %d targets", len(morning))
	}
	if morning[0].Bucket != BucketAfternoon || morning[0].DayOffset != 0 {
		t.Errorf("morning first target = %+v", morning[0])
	}
	if morning[2].DayOffset != 1 {
		t.Errorf("morning last target = %+v", morning[2])
	}

	evening := cfg.SearchPriority(BucketEvening)
	if len(evening) != 1 || evening[0].DayOffset != 1 {
		t.Errorf("evening priority = %+v", evening)
	}
}

func TestStatusHelpers(t *testing.T) {
	if !IsActive("scheduled") || !IsActive("rescheduled") {
		t.Error("scheduled and rescheduled must count as active")
	}
	if IsActive("cancelled") || IsActive("pending-reschedule") {
		t.Error("cancelled and pending-reschedule must not count as active")
	}
	if err := CanCancel(StatusCancelled); err == nil {
		t.Error("cancelling a cancelled appointment should fail")
	}
	if err := CanCancel(StatusRescheduled); err != nil {
		t.Errorf("cancelling a rescheduled appointment should be allowed: %v", err)
	}
}

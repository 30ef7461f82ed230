package scheduling

import (
	"testing"

	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

func TestGenerateSlotsBasicWindow(t *testing.T) {
	slots := GenerateSlots("09:00", "12:00", 30, 0, 0)
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	if slots[0].StartTime != "09:00" || slots[0].EndTime != "09:30" {
		t.Errorf("first slot = %s-%s", slots[0].StartTime, slots[0].EndTime)
	}
	if slots[5].StartTime != "11:30" || slots[5].EndTime != "12:00" {
		t.Errorf("last slot = %s-%s", slots[5].StartTime, slots[5].EndTime)
	}
}

func TestGenerateSlotsWithBuffer(t *testing.T) {
	slots := GenerateSlots("09:00", "10:00", 20, 10, 0)
	// 09:00-09:20, gap, 09:30-09:50; next would end 10:20.
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[1].StartTime != "09:30" {
		t.Errorf("second slot starts %s, want 09:30", slots[1].StartTime)
	}
}

func TestGenerateSlotsProperties(t *testing.T) {
	cases := []struct {
		start, end       string
		duration, buffer int
	}{
		{"09:00", "12:00", 30, 0},
		{"08:15", "17:45", 25, 5},
		{"09:00", "09:50", 20, 10},
		{"00:00", "23:59", 45, 15},
	}
	for _, c := range cases {
		slots := GenerateSlots(c.start, c.end, c.duration, c.buffer, 0)
		endMin := timeutil.ToMinutes(c.end)
		for i, s := range slots {
			sMin := timeutil.ToMinutes(s.StartTime)
			eMin := timeutil.ToMinutes(s.EndTime)
			if eMin-sMin != c.duration {
				t.Errorf("%s-%s/%d: slot %d has length %d", c.start, c.end, c.duration, i, eMin-sMin)
			}
			if eMin > endMin {
				t.Errorf("%s-%s/%d: slot %d ends past window", c.start, c.end, c.duration, i)
			}
			if i > 0 {
				prevEnd := timeutil.ToMinutes(slots[i-1].EndTime)
				if sMin-prevEnd != c.buffer {
					t.Errorf("%s-%s/%d: gap before slot %d is %d, want %d",
						c.start, c.end, c.duration, i, sMin-prevEnd, c.buffer)
				}
			}
		}
	}
}

func TestGenerateSlotsMaxCount(t *testing.T) {
	slots := GenerateSlots("09:00", "12:00", 30, 0, 4)
	if len(slots) != 4 {
		t.Fatalf("expected cap at 4 slots, got %d", len(slots))
	}
}

func TestGenerateSlotsDegenerate(t *testing.T) {
	if got := GenerateSlots("09:00", "09:20", 30, 0, 0); len(got) != 0 {
		t.Errorf("duration larger than window should yield no slots, got %d", len(got))
	}
	if got := GenerateSlots("12:00", "09:00", 30, 0, 0); len(got) != 0 {
		t.Errorf("inverted window should yield no slots, got %d", len(got))
	}
	if got := GenerateSlots("09:00", "12:00", 0, 0, 0); len(got) != 0 {
		t.Errorf("zero duration should yield no slots, got %d", len(got))
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{540, 570, 570, 600, false}, // back to back
		{540, 570, 560, 590, true},
		{540, 600, 550, 560, true}, // containment
		{540, 570, 600, 630, false},
		{540, 570, 540, 570, true}, // identical
	}
	for _, c := range cases {
		if got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
			t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v",
				c.aStart, c.aEnd, c.bStart, c.bEnd, got, c.want)
		}
	}
}

func TestSlotKey(t *testing.T) {
	s := TimeSlot{StartTime: "09:00", EndTime: "09:30"}
	if s.Key() != "09:00-09:30" {
		t.Errorf("Key() = %q", s.Key())
	}
}

package scheduling

import (
	"testing"

	"github.com/schedula/clinic-scheduler/internal/models"
)

func appt(id, start, end, status string) models.Appointment {
	a := models.Appointment{
		Date:      "2026-09-07",
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
	a.ID = id
	return a
}

func TestClassifyPartitions(t *testing.T) {
	appts := []models.Appointment{
		appt("a", "09:00", "09:30", "scheduled"),
		appt("b", "09:30", "10:00", "rescheduled"),
		appt("c", "10:30", "11:00", "scheduled"),
		appt("d", "11:00", "11:30", "cancelled"),
	}

	cls := Classify(appts, "09:00", "10:00", 0)

	if len(cls.Fits) != 2 {
		t.Fatalf("fits = %d, want 2", len(cls.Fits))
	}
	if cls.Fits[0].ID != "a" || cls.Fits[1].ID != "b" {
		t.Errorf("fits order = %s,%s", cls.Fits[0].ID, cls.Fits[1].ID)
	}
	if len(cls.Overflow) != 1 || cls.Overflow[0].ID != "c" {
		t.Errorf("overflow = %+v", cls.Overflow)
	}
	if len(cls.DefiniteOverflow) != 1 || cls.DefiniteOverflow[0].ID != "d" {
		t.Errorf("definite overflow = %+v", cls.DefiniteOverflow)
	}
}

func TestClassifyCapacityKeepsEarliest(t *testing.T) {
	appts := []models.Appointment{
		appt("late", "10:00", "10:30", "scheduled"),
		appt("early", "09:00", "09:30", "scheduled"),
		appt("mid", "09:30", "10:00", "scheduled"),
	}

	cls := Classify(appts, "09:00", "12:00", 2)

	if len(cls.Fits) != 2 {
		t.Fatalf("fits = %d, want 2", len(cls.Fits))
	}
	if cls.Fits[0].ID != "early" || cls.Fits[1].ID != "mid" {
		t.Errorf("capacity cut kept %s,%s, want early,mid", cls.Fits[0].ID, cls.Fits[1].ID)
	}
	if len(cls.Overflow) != 1 || cls.Overflow[0].ID != "late" {
		t.Errorf("overflow = %+v", cls.Overflow)
	}
}

func TestClassifyCountInvariant(t *testing.T) {
	appts := []models.Appointment{
		appt("a", "08:00", "08:30", "scheduled"),
		appt("b", "09:00", "09:30", "scheduled"),
		appt("c", "09:30", "10:00", "scheduled"),
		appt("d", "10:00", "10:30", "scheduled"),
		appt("e", "13:00", "13:30", "pending-reschedule"),
	}
	cls := Classify(appts, "09:00", "10:00", 1)
	total := len(cls.Fits) + len(cls.Overflow) + len(cls.DefiniteOverflow)
	if total != len(appts) {
		t.Fatalf("partition lost appointments: %d of %d", total, len(appts))
	}
}

func TestPlanCompactionUniformFit(t *testing.T) {
	// Five half-hour appointments shrunk to a 90-minute window fit
	// uniformly at 15 minutes: 5*15 = 75 <= 90.
	plan, ok := PlanCompaction(5, 90, 0, 0)
	if !ok {
		t.Fatal("expected a plan")
	}
	if !plan.Uniform {
		t.Error("expected uniform fit")
	}
	if plan.Duration != 15 {
		t.Errorf("duration = %d, want 15", plan.Duration)
	}
	if plan.Fitted != 5 {
		t.Errorf("fitted = %d, want 5", plan.Fitted)
	}
}

func TestPlanCompactionPrefersLargestUniformDuration(t *testing.T) {
	// Three appointments in 90 minutes fit at 25 already.
	plan, ok := PlanCompaction(3, 90, 0, 0)
	if !ok || !plan.Uniform {
		t.Fatalf("plan = %+v, ok = %v", plan, ok)
	}
	if plan.Duration != 25 {
		t.Errorf("duration = %d, want 25", plan.Duration)
	}
}

func TestPlanCompactionPartialFit(t *testing.T) {
	// Five appointments in a 40-minute window: even at the 10-minute
	// floor only four fit; the fifth overflows.
	plan, ok := PlanCompaction(5, 40, 0, 0)
	if !ok {
		t.Fatal("expected a plan")
	}
	if plan.Uniform {
		t.Error("expected partial fit")
	}
	if plan.Duration != 10 {
		t.Errorf("duration = %d, want 10", plan.Duration)
	}
	if plan.Fitted != 4 {
		t.Errorf("fitted = %d, want 4", plan.Fitted)
	}
}

func TestPlanCompactionBufferCounts(t *testing.T) {
	// 4 appointments with 5-minute buffer: 4*15 + 3*5 = 75 <= 80.
	plan, ok := PlanCompaction(4, 80, 5, 0)
	if !ok || !plan.Uniform || plan.Duration != 15 {
		t.Fatalf("plan = %+v, ok = %v", plan, ok)
	}
	// Below 55 minutes even the 10-minute floor cannot hold all four
	// (4*10 + 3*5 = 55); only three fit at 50/(10+5).
	plan, ok = PlanCompaction(4, 50, 5, 0)
	if !ok || plan.Uniform {
		t.Fatalf("plan = %+v, ok = %v", plan, ok)
	}
	if plan.Duration != 10 || plan.Fitted != 3 {
		t.Errorf("plan = %+v, want duration 10 fitting 3", plan)
	}
}

func TestPlanCompactionCapacityLimit(t *testing.T) {
	plan, ok := PlanCompaction(6, 600, 0, 3)
	if !ok {
		t.Fatal("expected a plan")
	}
	if plan.Uniform {
		t.Error("capacity cap should force a partial plan")
	}
	if plan.Fitted != 3 {
		t.Errorf("fitted = %d, want 3", plan.Fitted)
	}
}

func TestPlanCompactionNothingFits(t *testing.T) {
	if _, ok := PlanCompaction(1, 5, 0, 0); ok {
		t.Error("window below the floor should produce no plan")
	}
	if _, ok := PlanCompaction(0, 90, 0, 0); ok {
		t.Error("zero appointments should produce no plan")
	}
}

func TestRepackLayout(t *testing.T) {
	slots := Repack("09:00", 15, 5, 3)
	want := []TimeSlot{
		{StartTime: "09:00", EndTime: "09:15"},
		{StartTime: "09:20", EndTime: "09:35"},
		{StartTime: "09:40", EndTime: "09:55"},
	}
	if len(slots) != len(want) {
		t.Fatalf("len = %d, want %d", len(slots), len(want))
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d = %+v, want %+v", i, slots[i], want[i])
		}
	}
}

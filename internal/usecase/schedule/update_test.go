package schedule

import (
	"context"
	"testing"
	"time"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestUpdateTriggersShrinkOnReducedWindow(t *testing.T) {
	env := newShrinkEnv()
	env.doctor.UserID = "user-doc"

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	for i, s := range []string{"09:00", "09:30", "10:00", "10:30", "11:00"} {
		env.addAppointment("2026-09-07", s, addMin(s, 30), base.Add(time.Duration(i)*time.Minute))
	}
	sched := env.repo.AddSchedule(&models.DaySchedule{
		DoctorID:     env.doctor.ID,
		Date:         "2026-09-07",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
	})

	update := NewUpdate(env.repo, env.shrink)
	out, err := update.Execute(context.Background(), UpdateInput{
		CallerUserID:   "user-doc",
		ScheduleID:     sched.ID,
		EndTime:        strp("10:30"),
		AdjustExisting: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Schedule.EndTime != "10:30" {
		t.Errorf("end time = %s", out.Schedule.EndTime)
	}
	if out.Shrink == nil {
		t.Fatal("expected a shrink summary")
	}
	if out.Shrink.Method != MethodUniformFit || out.Shrink.Duration != 15 {
		t.Errorf("shrink = %+v", out.Shrink)
	}

	saved := env.repo.Schedules[sched.ID]
	if saved.EndTime != "10:30" {
		t.Errorf("persisted end time = %s", saved.EndTime)
	}
}

func TestUpdateWithoutAdjustLeavesAppointments(t *testing.T) {
	env := newShrinkEnv()
	env.doctor.UserID = "user-doc"

	ap := env.addAppointment("2026-09-07", "11:00", "11:30", time.Now())
	sched := env.repo.AddSchedule(&models.DaySchedule{
		DoctorID:     env.doctor.ID,
		Date:         "2026-09-07",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
	})

	out, err := NewUpdate(env.repo, env.shrink).Execute(context.Background(), UpdateInput{
		CallerUserID: "user-doc",
		ScheduleID:   sched.ID,
		EndTime:      strp("10:00"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Shrink != nil {
		t.Error("shrink ran without being asked")
	}
	if got := env.repo.Appointments[ap.ID]; got.StartTime != "11:00" {
		t.Errorf("appointment moved to %s", got.StartTime)
	}
}

func TestUpdateGrowingWindowSkipsShrink(t *testing.T) {
	env := newShrinkEnv()
	env.doctor.UserID = "user-doc"

	sched := env.repo.AddSchedule(&models.DaySchedule{
		DoctorID:     env.doctor.ID,
		Date:         "2026-09-07",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
	})

	out, err := NewUpdate(env.repo, env.shrink).Execute(context.Background(), UpdateInput{
		CallerUserID:   "user-doc",
		ScheduleID:     sched.ID,
		EndTime:        strp("14:00"),
		AdjustExisting: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Shrink != nil {
		t.Error("an extended window must not trigger a shrink")
	}
}

func TestUpdateOwnershipAndValidation(t *testing.T) {
	env := newShrinkEnv()
	env.doctor.UserID = "user-doc"
	sched := env.repo.AddSchedule(&models.DaySchedule{
		DoctorID:     env.doctor.ID,
		Date:         "2026-09-07",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
	})

	update := NewUpdate(env.repo, env.shrink)

	if _, err := update.Execute(context.Background(), UpdateInput{
		CallerUserID: "user-intruder",
		ScheduleID:   sched.ID,
		EndTime:      strp("10:00"),
	}); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Errorf("foreign update returned %v", err)
	}

	if _, err := update.Execute(context.Background(), UpdateInput{
		CallerUserID: "user-doc",
		ScheduleID:   sched.ID,
		EndTime:      strp("08:00"),
	}); !httperr.IsBusiness(err, "invalid_window") {
		t.Errorf("inverted window returned %v", err)
	}
}

func TestOverflowPreviewReportsWithoutMutating(t *testing.T) {
	env := newShrinkEnv()
	env.doctor.UserID = "user-doc"
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	inside := env.addAppointment("2026-09-07", "09:00", "09:30", base)
	outside := env.addAppointment("2026-09-07", "11:00", "11:30", base.Add(time.Minute))
	leftover := env.addAppointment("2026-09-07", "10:00", "10:30", base.Add(2*time.Minute))
	leftover.Status = "cancelled"
	leftover.CancellationReason = domain.ReasonCancelledByShrink

	sched := env.repo.AddSchedule(&models.DaySchedule{
		DoctorID:     env.doctor.ID,
		Date:         "2026-09-07",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
	})

	preview := NewOverflowPreview(env.repo, domain.DefaultBucketConfig())
	out, err := preview.Execute(context.Background(), OverflowPreviewInput{
		CallerUserID: "user-doc",
		ScheduleID:   sched.ID,
		EndTime:      "10:00",
	})
	if err != nil {
		t.Fatal(err)
	}

	if out.FitCount != 1 {
		t.Errorf("fit count = %d, want 1", out.FitCount)
	}
	reasons := map[string]string{}
	for _, item := range out.Overflow {
		reasons[item.Appointment.ID] = item.Reason
	}
	if reasons[outside.ID] != OverflowOutsideTimeRange {
		t.Errorf("outside reason = %s", reasons[outside.ID])
	}
	if reasons[leftover.ID] != OverflowCancelledByShrink {
		t.Errorf("leftover reason = %s", reasons[leftover.ID])
	}

	if out.SessionBucket != domain.BucketMorning {
		t.Errorf("session bucket = %s", out.SessionBucket)
	}
	if len(out.SearchPriority) != 3 {
		t.Errorf("search priority = %+v", out.SearchPriority)
	}

	// Preview must not have touched anything.
	if got := env.repo.Appointments[inside.ID]; got.Status != "scheduled" {
		t.Errorf("preview mutated appointment: %+v", got)
	}
	if got := env.repo.Appointments[outside.ID]; got.StartTime != "11:00" || got.Status != "scheduled" {
		t.Errorf("preview mutated appointment: %+v", got)
	}
}

func TestOverflowPreviewCapacityReason(t *testing.T) {
	env := newShrinkEnv()
	env.doctor.UserID = "user-doc"
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	env.addAppointment("2026-09-07", "09:00", "09:30", base)
	over := env.addAppointment("2026-09-07", "09:30", "10:00", base.Add(time.Minute))

	sched := env.repo.AddSchedule(&models.DaySchedule{
		DoctorID:     env.doctor.ID,
		Date:         "2026-09-07",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
	})

	out, err := NewOverflowPreview(env.repo, domain.DefaultBucketConfig()).Execute(
		context.Background(), OverflowPreviewInput{
			CallerUserID:    "user-doc",
			ScheduleID:      sched.ID,
			MaxAppointments: intp(1),
		})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Overflow) != 1 || out.Overflow[0].Appointment.ID != over.ID {
		t.Fatalf("overflow = %+v", out.Overflow)
	}
	if out.Overflow[0].Reason != OverflowExceedsCapacity {
		t.Errorf("reason = %s", out.Overflow[0].Reason)
	}
}

func TestFillRateRecommendations(t *testing.T) {
	env := newShrinkEnv()
	env.doctor.UserID = "user-doc"
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	// Six slots, one booked: 17% filled.
	env.repo.AddSchedule(&models.DaySchedule{
		DoctorID:     env.doctor.ID,
		Date:         "2026-09-07",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
	})
	env.addAppointment("2026-09-07", "09:00", "09:30", base)

	out, err := NewFillRate(env.repo).Execute(context.Background(), FillRateInput{
		CallerUserID: "user-doc",
		DoctorID:     env.doctor.ID,
		FromDate:     "2026-09-07",
		ToDate:       "2026-09-07",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Capacity != 6 || out.Booked != 1 {
		t.Errorf("capacity = %d, booked = %d", out.Capacity, out.Booked)
	}
	if out.Recommendation != RecommendationReduce {
		t.Errorf("recommendation = %s", out.Recommendation)
	}

	// Fill the rest: 100% filled.
	for i, s := range []string{"09:30", "10:00", "10:30", "11:00", "11:30"} {
		env.addAppointment("2026-09-07", s, addMin(s, 30), base.Add(time.Duration(i+1)*time.Minute))
	}
	out, err = NewFillRate(env.repo).Execute(context.Background(), FillRateInput{
		CallerUserID: "user-doc",
		DoctorID:     env.doctor.ID,
		FromDate:     "2026-09-07",
		ToDate:       "2026-09-07",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Recommendation != RecommendationExpand {
		t.Errorf("recommendation = %s", out.Recommendation)
	}
}

func TestFillRateOwnership(t *testing.T) {
	env := newShrinkEnv()
	env.doctor.UserID = "user-doc"

	_, err := NewFillRate(env.repo).Execute(context.Background(), FillRateInput{
		CallerUserID: "user-curious",
		DoctorID:     env.doctor.ID,
		FromDate:     "2026-09-07",
		ToDate:       "2026-09-08",
	})
	if !httperr.IsKind(err, httperr.KindForbidden) {
		t.Errorf("foreign fill-rate returned %v", err)
	}
}

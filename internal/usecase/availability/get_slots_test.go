package availability

import (
	"context"
	"testing"
	"time"

	"github.com/schedula/clinic-scheduler/internal/domain/scheduling/schedulingtest"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
)

func TestResolveManualOverrideWins(t *testing.T) {
	repo := schedulingtest.NewRepo()
	doctor := repo.AddDoctor(&models.Doctor{Name: "Dr. Vega"})

	tpl := repo.AddTemplate(&models.RecurringTemplate{
		DoctorID: doctor.ID,
		IsActive: true,
	})
	generated := repo.AddSchedule(&models.DaySchedule{
		DoctorID:            doctor.ID,
		Date:                "2026-09-07",
		StartTime:           "09:00",
		EndTime:             "12:00",
		SlotDuration:        30,
		RecurringTemplateID: &tpl.ID,
	})
	generated.CreatedAt = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	manual := repo.AddSchedule(&models.DaySchedule{
		DoctorID:     doctor.ID,
		Date:         "2026-09-07",
		StartTime:    "14:00",
		EndTime:      "16:00",
		SlotDuration: 30,
	})
	// Older than the generated row; the manual one must still win.
	manual.CreatedAt = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	res, err := ResolveSchedule(context.Background(), repo, doctor.ID, "2026-09-07")
	if err != nil {
		t.Fatal(err)
	}
	if res.Type != ResolvedElastic {
		t.Fatalf("type = %s", res.Type)
	}
	if res.Schedule.ID != manual.ID {
		t.Errorf("resolved %s, want the manual row %s", res.Schedule.ID, manual.ID)
	}
}

func TestResolveTemplateWeekdayFallback(t *testing.T) {
	repo := schedulingtest.NewRepo()
	doctor := repo.AddDoctor(&models.Doctor{Name: "Dr. Vega"})

	older := repo.AddTemplate(&models.RecurringTemplate{
		DoctorID:     doctor.ID,
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
		DaysOfWeek:   []int{1},
		IsActive:     true,
	})
	older.CreatedAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	newer := repo.AddTemplate(&models.RecurringTemplate{
		DoctorID:     doctor.ID,
		StartTime:    "13:00",
		EndTime:      "17:00",
		SlotDuration: 30,
		DaysOfWeek:   []int{1},
		IsActive:     true,
	})
	newer.CreatedAt = time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	inactive := repo.AddTemplate(&models.RecurringTemplate{
		DoctorID:   doctor.ID,
		DaysOfWeek: []int{1},
	})
	inactive.CreatedAt = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	// Monday: both active templates apply; the earliest-created wins.
	res, err := ResolveSchedule(context.Background(), repo, doctor.ID, "2026-09-07")
	if err != nil {
		t.Fatal(err)
	}
	if res.Type != ResolvedRecurring || res.Template.ID != older.ID {
		t.Errorf("resolved %+v, want template %s", res, older.ID)
	}

	// Sunday: nobody covers it.
	res, err = ResolveSchedule(context.Background(), repo, doctor.ID, "2026-09-06")
	if err != nil {
		t.Fatal(err)
	}
	if res.Type != ResolvedNone {
		t.Errorf("sunday resolved %s, want none", res.Type)
	}
}

func TestGetAvailableSlotsFiltersBooked(t *testing.T) {
	repo := schedulingtest.NewRepo()
	doctor := repo.AddDoctor(&models.Doctor{Name: "Dr. Vega"})
	patient := repo.AddPatient(&models.Patient{Name: "Ana"})

	repo.AddSchedule(&models.DaySchedule{
		DoctorID:     doctor.ID,
		Date:         "2026-09-07",
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
	})
	repo.AddAppointment(&models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      "2026-09-07",
		StartTime: "10:00",
		EndTime:   "10:30",
	})
	// Cancelled bookings do not block a slot.
	repo.AddAppointment(&models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      "2026-09-07",
		StartTime: "11:00",
		EndTime:   "11:30",
		Status:    "cancelled",
	})

	out, err := NewGetAvailableSlots(repo).Execute(context.Background(), SlotsInput{
		DoctorID: doctor.ID,
		Date:     "2026-09-07",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Slots) != 5 {
		t.Fatalf("free slots = %d, want 5", len(out.Slots))
	}
	for _, s := range out.Slots {
		if s.StartTime == "10:00" {
			t.Error("booked 10:00 slot listed as free")
		}
	}
}

func TestGetAvailableSlotsBucketRestriction(t *testing.T) {
	repo := schedulingtest.NewRepo()
	doctor := repo.AddDoctor(&models.Doctor{Name: "Dr. Vega"})

	repo.AddSchedule(&models.DaySchedule{
		DoctorID:     doctor.ID,
		Date:         "2026-09-07",
		StartTime:    "09:00",
		EndTime:      "14:00",
		SlotDuration: 60,
	})

	// Morning bucket only: 09:00-12:00.
	out, err := NewGetAvailableSlots(repo).Execute(context.Background(), SlotsInput{
		DoctorID:      doctor.ID,
		Date:          "2026-09-07",
		RestrictStart: 540,
		RestrictEnd:   720,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Slots) != 3 {
		t.Fatalf("restricted slots = %d, want 3", len(out.Slots))
	}
	if out.Slots[2].EndTime != "12:00" {
		t.Errorf("last restricted slot ends %s", out.Slots[2].EndTime)
	}
}

func TestGetAvailableSlotsValidation(t *testing.T) {
	repo := schedulingtest.NewRepo()
	uc := NewGetAvailableSlots(repo)

	if _, err := uc.Execute(context.Background(), SlotsInput{
		DoctorID: "whoever", Date: "07/09/2026",
	}); !httperr.IsKind(err, httperr.KindInvalid) {
		t.Errorf("bad date returned %v", err)
	}
	if _, err := uc.Execute(context.Background(), SlotsInput{
		DoctorID: "missing", Date: "2026-09-07",
	}); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Errorf("unknown doctor returned %v", err)
	}
}

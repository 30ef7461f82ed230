package appointment

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

// BookInput selects its booking mode by which identifier is present:
// ElasticScheduleID, RecurringTemplateID or SlotID. The patient is always
// resolved from the authenticated caller, never from the payload.
type BookInput struct {
	CallerUserID string

	ElasticScheduleID   string
	RecurringTemplateID string
	SlotID              string

	// Explicit local booking time. Optional on the elastic path (the first
	// free slot is auto-assigned), required on the recurring path.
	Date      string
	StartTime string
	EndTime   string
}

type Book struct {
	repo   domain.Repository
	locker domain.Locker
}

func NewBook(repo domain.Repository, locker domain.Locker) *Book {
	return &Book{repo: repo, locker: locker}
}

func (uc *Book) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	patient, err := uc.repo.GetPatientByUser(ctx, in.CallerUserID)
	if err != nil {
		return nil, httperr.ErrNotFound("patient_not_found", "Patient profile not found.")
	}

	switch {
	case in.ElasticScheduleID != "":
		return uc.bookElastic(ctx, patient, in)
	case in.RecurringTemplateID != "":
		return uc.bookRecurring(ctx, patient, in)
	case in.SlotID != "":
		return uc.bookTraditional(ctx, patient, in)
	}
	return nil, httperr.ErrInvalid(
		"missing_booking_mode",
		"Provide an elastic schedule, recurring template or slot id.",
	)
}

// bookElastic runs the conflict-check-then-insert sequence inside one
// transaction, serialized per doctor+date so two requests cannot race for
// the same derived slot.
func (uc *Book) bookElastic(
	ctx context.Context,
	patient *models.Patient,
	in BookInput,
) (*models.Appointment, error) {

	schedule, err := uc.repo.GetDaySchedule(ctx, in.ElasticScheduleID)
	if err != nil {
		return nil, httperr.ErrNotFound("schedule_not_found", "Schedule not found.")
	}

	date := schedule.Date
	if in.Date != "" {
		if !timeutil.IsValidDate(in.Date) {
			return nil, httperr.ErrInvalid("invalid_date", "Date must be YYYY-MM-DD.")
		}
		date = in.Date
	}

	var booked *models.Appointment
	lockKey := schedule.DoctorID + ":" + date

	err = uc.locker.WithLock(ctx, lockKey, func(ctx context.Context) error {
		return uc.repo.Transaction(ctx, func(tx domain.Repository) error {
			schedule, err := tx.GetDaySchedule(ctx, in.ElasticScheduleID)
			if err != nil {
				return httperr.ErrNotFound("schedule_not_found", "Schedule not found.")
			}
			if _, err := tx.GetDoctorByID(ctx, schedule.DoctorID); err != nil {
				return httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
			}

			active, err := tx.ListAppointmentsForDate(
				ctx, schedule.DoctorID, date, domain.ActiveStatuses,
			)
			if err != nil {
				return err
			}
			if schedule.MaxAppointments > 0 && len(active) >= schedule.MaxAppointments {
				return httperr.ErrConflict("capacity_reached", "Schedule is fully booked.")
			}

			start, end := in.StartTime, in.EndTime
			if start != "" || end != "" {
				if err := validateExplicitTime(schedule.StartTime, schedule.EndTime, start, end); err != nil {
					return err
				}
				if hasOverlap(active, start, end, "") {
					return httperr.ErrConflict("time_conflict", "Requested time is already booked.")
				}
			} else {
				slot, ok := firstFreeSlot(schedule, active)
				if !ok {
					return httperr.ErrConflict("no_slot_available", "No free slot left on this schedule.")
				}
				start, end = slot.StartTime, slot.EndTime
			}

			booked = &models.Appointment{
				PatientID:     patient.ID,
				DoctorID:      schedule.DoctorID,
				DayScheduleID: &schedule.ID,
				Date:          date,
				StartTime:     start,
				EndTime:       end,
				Status:        string(domain.InitialStatus()),
			}
			return tx.CreateAppointment(ctx, booked)
		})
	})
	if err != nil {
		return nil, err
	}
	return booked, nil
}

func (uc *Book) bookRecurring(
	ctx context.Context,
	patient *models.Patient,
	in BookInput,
) (*models.Appointment, error) {

	template, err := uc.repo.GetTemplate(ctx, in.RecurringTemplateID)
	if err != nil {
		return nil, httperr.ErrNotFound("template_not_found", "Recurring template not found.")
	}

	if !timeutil.IsValidDate(in.Date) {
		return nil, httperr.ErrInvalid("invalid_date", "Date must be YYYY-MM-DD.")
	}
	if !template.AppliesTo(timeutil.Weekday(in.Date)) {
		return nil, httperr.ErrConflict("weekday_not_covered", "Template does not cover that weekday.")
	}
	if err := validateExplicitTime(template.StartTime, template.EndTime, in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	var booked *models.Appointment
	lockKey := template.DoctorID + ":" + in.Date

	err = uc.locker.WithLock(ctx, lockKey, func(ctx context.Context) error {
		return uc.repo.Transaction(ctx, func(tx domain.Repository) error {
			active, err := tx.ListAppointmentsForDate(
				ctx, template.DoctorID, in.Date, domain.ActiveStatuses,
			)
			if err != nil {
				return err
			}
			if hasOverlap(active, in.StartTime, in.EndTime, "") {
				return httperr.ErrConflict("time_conflict", "Requested time is already booked.")
			}

			booked = &models.Appointment{
				PatientID: patient.ID,
				DoctorID:  template.DoctorID,
				Date:      in.Date,
				StartTime: in.StartTime,
				EndTime:   in.EndTime,
				Status:    string(domain.InitialStatus()),
			}
			return tx.CreateAppointment(ctx, booked)
		})
	})
	if err != nil {
		return nil, err
	}
	return booked, nil
}

func (uc *Book) bookTraditional(
	ctx context.Context,
	patient *models.Patient,
	in BookInput,
) (*models.Appointment, error) {

	slot, err := uc.repo.GetSlot(ctx, in.SlotID)
	if err != nil {
		return nil, httperr.ErrNotFound("slot_not_found", "Slot not found.")
	}
	if slot.Mode != models.SlotModeAvailable {
		return nil, httperr.ErrConflict("slot_unavailable", "Slot is not available.")
	}

	booked := &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  slot.DoctorID,
		SlotID:    &slot.ID,
		Status:    string(domain.InitialStatus()),
	}
	if err := uc.repo.CreateAppointment(ctx, booked); err != nil {
		return nil, err
	}
	return booked, nil
}

// validateExplicitTime checks format, ordering and containment of a
// requested [start, end) within a schedule window.
func validateExplicitTime(windowStart, windowEnd, start, end string) error {
	if !timeutil.IsValidTime(start) || !timeutil.IsValidTime(end) {
		return httperr.ErrInvalid("invalid_time", "Times must be HH:MM.")
	}
	s, e := timeutil.ToMinutes(start), timeutil.ToMinutes(end)
	if e <= s {
		return httperr.ErrInvalid("invalid_window", "End time must be after start time.")
	}
	if s < timeutil.ToMinutes(windowStart) || e > timeutil.ToMinutes(windowEnd) {
		return httperr.ErrConflict("outside_schedule", "Requested time is outside the schedule window.")
	}
	return nil
}

// hasOverlap reports whether [start, end) intersects any listed
// appointment, ignoring excludeID.
func hasOverlap(appts []models.Appointment, start, end, excludeID string) bool {
	s, e := timeutil.ToMinutes(start), timeutil.ToMinutes(end)
	for _, a := range appts {
		if a.ID == excludeID {
			continue
		}
		if domain.Overlaps(s, e, timeutil.ToMinutes(a.StartTime), timeutil.ToMinutes(a.EndTime)) {
			return true
		}
	}
	return false
}

func firstFreeSlot(
	schedule *models.DaySchedule,
	active []models.Appointment,
) (domain.TimeSlot, bool) {

	booked := make(map[string]bool, len(active))
	for _, a := range active {
		booked[a.StartTime+"-"+a.EndTime] = true
	}

	for _, slot := range domain.GenerateSlots(
		schedule.StartTime,
		schedule.EndTime,
		schedule.SlotDuration,
		schedule.BufferTime,
		schedule.MaxAppointments,
	) {
		if !booked[slot.Key()] {
			return slot, true
		}
	}
	return domain.TimeSlot{}, false
}

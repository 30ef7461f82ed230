package appointment

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/usecase/availability"
)

type RescheduleInput struct {
	CallerUserID  string
	AppointmentID string

	// SlotID switches the appointment to a fixed slot, whatever mode it
	// was in before.
	SlotID string

	// New explicit local time for an elastic appointment.
	StartTime string
	EndTime   string

	// ListSlots asks for the free slots of the appointment's own schedule
	// instead of mutating anything.
	ListSlots bool
}

// RescheduleOutput carries either the mutated appointment or, for a
// ListSlots request, the available alternatives.
type RescheduleOutput struct {
	Appointment *models.Appointment       `json:"appointment,omitempty"`
	Slots       *availability.SlotsOutput `json:"slots,omitempty"`
}

type Reschedule struct {
	repo     domain.Repository
	getSlots *availability.GetAvailableSlots
}

func NewReschedule(repo domain.Repository) *Reschedule {
	return &Reschedule{
		repo:     repo,
		getSlots: availability.NewGetAvailableSlots(repo),
	}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	in RescheduleInput,
) (RescheduleOutput, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return RescheduleOutput{}, httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
	}
	if ap.Patient.UserID != in.CallerUserID {
		return RescheduleOutput{}, httperr.ErrForbidden("not_owner", "Appointment does not belong to you.")
	}

	if in.SlotID != "" {
		return uc.switchToSlot(ctx, ap, in.SlotID)
	}
	if ap.DayScheduleID != nil {
		return uc.rescheduleElastic(ctx, ap, in)
	}
	return RescheduleOutput{}, httperr.ErrInvalid("missing_slot", "A slot id is required to reschedule this appointment.")
}

func (uc *Reschedule) switchToSlot(
	ctx context.Context,
	ap *models.Appointment,
	slotID string,
) (RescheduleOutput, error) {

	slot, err := uc.repo.GetSlot(ctx, slotID)
	if err != nil {
		return RescheduleOutput{}, httperr.ErrNotFound("slot_not_found", "Slot not found.")
	}
	if slot.Mode != models.SlotModeAvailable {
		return RescheduleOutput{}, httperr.ErrConflict("slot_unavailable", "Slot is not available.")
	}

	// Leaving elastic mode clears its time fields.
	ap.SlotID = &slot.ID
	ap.Slot = nil
	ap.DayScheduleID = nil
	ap.DaySchedule = nil
	ap.Date = ""
	ap.StartTime = ""
	ap.EndTime = ""
	ap.Status = string(domain.StatusRescheduled)

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return RescheduleOutput{}, err
	}
	return RescheduleOutput{Appointment: ap}, nil
}

func (uc *Reschedule) rescheduleElastic(
	ctx context.Context,
	ap *models.Appointment,
	in RescheduleInput,
) (RescheduleOutput, error) {

	if in.ListSlots {
		out, err := uc.getSlots.Execute(ctx, availability.SlotsInput{
			DoctorID:             ap.DoctorID,
			Date:                 ap.Date,
			ExcludeAppointmentID: ap.ID,
		})
		if err != nil {
			return RescheduleOutput{}, err
		}
		return RescheduleOutput{Slots: &out}, nil
	}

	if in.StartTime == "" || in.EndTime == "" {
		return RescheduleOutput{}, httperr.ErrInvalid(
			"missing_time",
			"New start and end times are required.",
		)
	}

	windowStart, windowEnd := "00:00", "23:59"
	if ap.DaySchedule != nil {
		windowStart, windowEnd = ap.DaySchedule.StartTime, ap.DaySchedule.EndTime
	}
	if err := validateExplicitTime(windowStart, windowEnd, in.StartTime, in.EndTime); err != nil {
		return RescheduleOutput{}, err
	}

	active, err := uc.repo.ListAppointmentsForDate(
		ctx, ap.DoctorID, ap.Date, domain.ActiveStatuses,
	)
	if err != nil {
		return RescheduleOutput{}, err
	}
	if hasOverlap(active, in.StartTime, in.EndTime, ap.ID) {
		return RescheduleOutput{}, httperr.ErrConflict("time_conflict", "Requested time is already booked.")
	}

	ap.StartTime = in.StartTime
	ap.EndTime = in.EndTime
	ap.Status = string(domain.StatusRescheduled)

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return RescheduleOutput{}, err
	}
	return RescheduleOutput{Appointment: ap}, nil
}

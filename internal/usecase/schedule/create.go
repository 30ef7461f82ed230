package schedule

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

type CreateInput struct {
	CallerUserID string
	DoctorID     string

	Date      string
	StartTime string
	EndTime   string

	SlotDuration    int
	BufferTime      int
	MaxAppointments int
}

type Create struct {
	repo domain.Repository
}

func NewCreate(repo domain.Repository) *Create {
	return &Create{repo: repo}
}

func (uc *Create) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.DaySchedule, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
	}
	if doctor.UserID != in.CallerUserID {
		return nil, httperr.ErrForbidden("not_owner", "Schedule does not belong to you.")
	}

	if err := validateWindow(in.Date, in.StartTime, in.EndTime, in.SlotDuration, in.BufferTime); err != nil {
		return nil, err
	}

	schedule := &models.DaySchedule{
		DoctorID:        in.DoctorID,
		Date:            in.Date,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		SlotDuration:    in.SlotDuration,
		BufferTime:      in.BufferTime,
		MaxAppointments: in.MaxAppointments,
	}
	if err := uc.repo.SaveDaySchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func validateWindow(date, start, end string, duration, buffer int) error {
	if !timeutil.IsValidDate(date) {
		return httperr.ErrInvalid("invalid_date", "Date must be YYYY-MM-DD.")
	}
	if !timeutil.IsValidTime(start) || !timeutil.IsValidTime(end) {
		return httperr.ErrInvalid("invalid_time", "Times must be HH:MM.")
	}
	if timeutil.ToMinutes(end) <= timeutil.ToMinutes(start) {
		return httperr.ErrInvalid("invalid_window", "End time must be after start time.")
	}
	if duration <= 0 {
		return httperr.ErrInvalid("invalid_duration", "Slot duration must be positive.")
	}
	if buffer < 0 {
		return httperr.ErrInvalid("invalid_buffer", "Buffer time cannot be negative.")
	}
	return nil
}

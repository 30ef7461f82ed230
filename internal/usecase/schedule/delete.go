package schedule

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
)

type Delete struct {
	repo domain.Repository
}

func NewDelete(repo domain.Repository) *Delete {
	return &Delete{repo: repo}
}

func (uc *Delete) Execute(ctx context.Context, callerUserID, scheduleID string) error {
	schedule, err := uc.repo.GetDaySchedule(ctx, scheduleID)
	if err != nil {
		return httperr.ErrNotFound("schedule_not_found", "Schedule not found.")
	}
	if schedule.Doctor.UserID != callerUserID {
		return httperr.ErrForbidden("not_owner", "Schedule does not belong to you.")
	}

	active, err := uc.repo.ListAppointmentsForDate(
		ctx, schedule.DoctorID, schedule.Date, domain.ActiveStatuses,
	)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return httperr.ErrConflict(
			"schedule_has_appointments",
			"Cancel or move the date's appointments before removing the schedule.",
		)
	}
	return uc.repo.DeleteDaySchedule(ctx, schedule)
}

package schedule

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

type UpdateInput struct {
	CallerUserID string
	ScheduleID   string

	StartTime       *string
	EndTime         *string
	SlotDuration    *int
	BufferTime      *int
	MaxAppointments *int

	// AdjustExisting runs the shrink handler over the date's appointments
	// when the update reduces window, duration or capacity.
	AdjustExisting bool
}

type UpdateOutput struct {
	Schedule *models.DaySchedule `json:"schedule"`
	Shrink   *ShrinkSummary      `json:"shrink,omitempty"`
}

type Update struct {
	repo   domain.Repository
	shrink *Shrink
}

func NewUpdate(repo domain.Repository, shrink *Shrink) *Update {
	return &Update{repo: repo, shrink: shrink}
}

func (uc *Update) Execute(
	ctx context.Context,
	in UpdateInput,
) (UpdateOutput, error) {

	schedule, err := uc.repo.GetDaySchedule(ctx, in.ScheduleID)
	if err != nil {
		return UpdateOutput{}, httperr.ErrNotFound("schedule_not_found", "Schedule not found.")
	}
	if schedule.Doctor.UserID != in.CallerUserID {
		return UpdateOutput{}, httperr.ErrForbidden("not_owner", "Schedule does not belong to you.")
	}

	before := *schedule

	if in.StartTime != nil {
		schedule.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		schedule.EndTime = *in.EndTime
	}
	if in.SlotDuration != nil {
		schedule.SlotDuration = *in.SlotDuration
	}
	if in.BufferTime != nil {
		schedule.BufferTime = *in.BufferTime
	}
	if in.MaxAppointments != nil {
		schedule.MaxAppointments = *in.MaxAppointments
	}

	if err := validateWindow(
		schedule.Date,
		schedule.StartTime,
		schedule.EndTime,
		schedule.SlotDuration,
		schedule.BufferTime,
	); err != nil {
		return UpdateOutput{}, err
	}

	if err := uc.repo.SaveDaySchedule(ctx, schedule); err != nil {
		return UpdateOutput{}, err
	}

	out := UpdateOutput{Schedule: schedule}
	if in.AdjustExisting && shrank(&before, schedule) {
		summary, err := uc.shrink.Execute(ctx, schedule)
		if err != nil {
			return UpdateOutput{}, err
		}
		out.Shrink = &summary
	}
	return out, nil
}

// shrank reports whether the update tightened the schedule in any way an
// existing appointment could notice.
func shrank(before, after *models.DaySchedule) bool {
	if timeutil.ToMinutes(after.StartTime) > timeutil.ToMinutes(before.StartTime) {
		return true
	}
	if timeutil.ToMinutes(after.EndTime) < timeutil.ToMinutes(before.EndTime) {
		return true
	}
	if after.SlotDuration < before.SlotDuration {
		return true
	}
	if after.MaxAppointments > 0 &&
		(before.MaxAppointments == 0 || after.MaxAppointments < before.MaxAppointments) {
		return true
	}
	return false
}

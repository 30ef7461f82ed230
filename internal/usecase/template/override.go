package template

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

type OverrideInput struct {
	CallerUserID string
	TemplateID   string
	Date         string

	// Session parameters for the overridden date; zero values fall back to
	// the template's own.
	StartTime       string
	EndTime         string
	SlotDuration    int
	BufferTime      *int
	MaxAppointments *int

	Reason          string
	BypassTimeGuard bool
}

// CreateOverride adjusts a single template-covered date without touching
// the weekly pattern.
type CreateOverride struct {
	repo       domain.Repository
	tz         string
	minAdvance int
}

func NewCreateOverride(repo domain.Repository, tz string, minAdvance int) *CreateOverride {
	return &CreateOverride{repo: repo, tz: tz, minAdvance: minAdvance}
}

func (uc *CreateOverride) Execute(
	ctx context.Context,
	in OverrideInput,
) (*models.DaySchedule, error) {

	template, err := uc.repo.GetTemplate(ctx, in.TemplateID)
	if err != nil {
		return nil, httperr.ErrNotFound("template_not_found", "Recurring template not found.")
	}
	if template.Doctor.UserID != in.CallerUserID {
		return nil, httperr.ErrForbidden("not_owner", "Template does not belong to you.")
	}
	if !template.AllowOverrides {
		return nil, httperr.ErrConflict("overrides_not_allowed", "This template does not allow date overrides.")
	}

	if !timeutil.IsValidDate(in.Date) {
		return nil, httperr.ErrInvalid("invalid_date", "Date must be YYYY-MM-DD.")
	}
	if in.Date < timeutil.Today(uc.tz) {
		return nil, httperr.ErrConflict("past_date", "Past dates cannot be overridden.")
	}
	if !template.AppliesTo(timeutil.Weekday(in.Date)) {
		return nil, httperr.ErrConflict("weekday_not_covered", "Date is not on one of the template's weekdays.")
	}

	start, end := template.StartTime, template.EndTime
	if in.StartTime != "" {
		start = in.StartTime
	}
	if in.EndTime != "" {
		end = in.EndTime
	}
	duration := template.SlotDuration
	if in.SlotDuration > 0 {
		duration = in.SlotDuration
	}
	buffer := template.BufferTime
	if in.BufferTime != nil {
		buffer = *in.BufferTime
	}
	max := template.MaxAppointments
	if in.MaxAppointments != nil {
		max = *in.MaxAppointments
	}

	if !timeutil.IsValidTime(start) || !timeutil.IsValidTime(end) {
		return nil, httperr.ErrInvalid("invalid_time", "Times must be HH:MM.")
	}
	if timeutil.ToMinutes(end) <= timeutil.ToMinutes(start) {
		return nil, httperr.ErrInvalid("invalid_window", "End time must be after start time.")
	}
	if duration <= 0 {
		return nil, httperr.ErrInvalid("invalid_duration", "Slot duration must be positive.")
	}

	// Overriding today is subject to the advance-notice rule against the
	// session currently in effect.
	existing, err := uc.repo.ListDaySchedulesForDate(ctx, template.DoctorID, in.Date)
	if err != nil {
		return nil, err
	}
	guardStart := start
	if row := pickTemplateRow(existing, template.ID); row != nil {
		guardStart = row.StartTime
	}
	if err := checkLeadTime(uc.tz, in.Date, guardStart, uc.minAdvance, in.BypassTimeGuard); err != nil {
		return nil, err
	}
	if hasManualRow(existing) {
		return nil, httperr.ErrConflict("manual_schedule_exists", "The date already has a manually created schedule.")
	}

	row := pickTemplateRow(existing, template.ID)
	if row == nil {
		row = &models.DaySchedule{
			DoctorID:            template.DoctorID,
			Date:                in.Date,
			RecurringTemplateID: &template.ID,
		}
	}
	row.StartTime = start
	row.EndTime = end
	row.SlotDuration = duration
	row.BufferTime = buffer
	row.MaxAppointments = max
	row.IsOverride = true
	row.OverrideReason = in.Reason

	if err := uc.repo.SaveDaySchedule(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

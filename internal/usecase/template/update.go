package template

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

type UpdateInput struct {
	CallerUserID string
	TemplateID   string

	Name      *string
	StartTime *string
	EndTime   *string

	SlotDuration    *int
	BufferTime      *int
	MaxAppointments *int

	DaysOfWeek     []int
	WeeksAhead     *int
	IsActive       *bool
	AllowOverrides *bool
	AutoGenerate   *bool

	// RegenerateFuture drops and re-expands the template's future rows so
	// changed hours take effect from today onward.
	RegenerateFuture bool
	BypassTimeGuard  bool
}

type UpdateOutput struct {
	Template    *models.RecurringTemplate `json:"template"`
	Regenerated *GenerateOutput           `json:"regenerated,omitempty"`
}

type Update struct {
	repo     domain.Repository
	generate *Generate
	tz       string
}

func NewUpdate(repo domain.Repository, generate *Generate, tz string) *Update {
	return &Update{repo: repo, generate: generate, tz: tz}
}

func (uc *Update) Execute(
	ctx context.Context,
	in UpdateInput,
) (UpdateOutput, error) {

	template, err := uc.repo.GetTemplate(ctx, in.TemplateID)
	if err != nil {
		return UpdateOutput{}, httperr.ErrNotFound("template_not_found", "Recurring template not found.")
	}
	if template.Doctor.UserID != in.CallerUserID {
		return UpdateOutput{}, httperr.ErrForbidden("not_owner", "Template does not belong to you.")
	}

	if in.Name != nil {
		template.Name = *in.Name
	}
	if in.StartTime != nil {
		template.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		template.EndTime = *in.EndTime
	}
	if in.SlotDuration != nil {
		template.SlotDuration = *in.SlotDuration
	}
	if in.BufferTime != nil {
		template.BufferTime = *in.BufferTime
	}
	if in.MaxAppointments != nil {
		template.MaxAppointments = *in.MaxAppointments
	}
	if in.DaysOfWeek != nil {
		template.DaysOfWeek = in.DaysOfWeek
	}
	if in.WeeksAhead != nil {
		template.WeeksAhead = *in.WeeksAhead
	}
	if in.IsActive != nil {
		template.IsActive = *in.IsActive
	}
	if in.AllowOverrides != nil {
		template.AllowOverrides = *in.AllowOverrides
	}
	if in.AutoGenerate != nil {
		template.AutoGenerate = *in.AutoGenerate
	}

	if err := validateTemplate(
		template.Name,
		template.StartTime,
		template.EndTime,
		template.SlotDuration,
		template.BufferTime,
		template.DaysOfWeek,
	); err != nil {
		return UpdateOutput{}, err
	}

	if err := uc.repo.SaveTemplate(ctx, template); err != nil {
		return UpdateOutput{}, err
	}

	out := UpdateOutput{Template: template}
	if in.RegenerateFuture {
		today := timeutil.Today(uc.tz)

		// Touching today's session falls under the advance-notice rule.
		if template.AppliesTo(timeutil.Weekday(today)) {
			if err := checkLeadTime(uc.tz, today, template.StartTime, uc.generate.minAdvance, in.BypassTimeGuard); err != nil {
				return UpdateOutput{}, err
			}
		}

		if err := uc.repo.DeleteTemplateSchedulesFrom(ctx, template.DoctorID, template.ID, today); err != nil {
			return UpdateOutput{}, err
		}
		gen, err := uc.generate.expand(ctx, template, today, "", true, in.BypassTimeGuard)
		if err != nil {
			return UpdateOutput{}, err
		}
		out.Regenerated = &gen
	}
	return out, nil
}

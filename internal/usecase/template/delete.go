package template

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

type DeleteInput struct {
	CallerUserID string
	TemplateID   string

	// DeleteFutureSchedules also removes the day schedules the template
	// materialized from today onward.
	DeleteFutureSchedules bool
}

type Delete struct {
	repo domain.Repository
	tz   string
}

func NewDelete(repo domain.Repository, tz string) *Delete {
	return &Delete{repo: repo, tz: tz}
}

func (uc *Delete) Execute(ctx context.Context, in DeleteInput) error {
	template, err := uc.repo.GetTemplate(ctx, in.TemplateID)
	if err != nil {
		return httperr.ErrNotFound("template_not_found", "Recurring template not found.")
	}
	if template.Doctor.UserID != in.CallerUserID {
		return httperr.ErrForbidden("not_owner", "Template does not belong to you.")
	}

	if in.DeleteFutureSchedules {
		today := timeutil.Today(uc.tz)
		if err := uc.repo.DeleteTemplateSchedulesFrom(ctx, template.DoctorID, template.ID, today); err != nil {
			return err
		}
	}
	return uc.repo.DeleteTemplate(ctx, template)
}

package template

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
)

type List struct {
	repo domain.Repository
}

func NewList(repo domain.Repository) *List {
	return &List{repo: repo}
}

func (uc *List) Execute(
	ctx context.Context,
	callerUserID string,
	doctorID string,
) ([]models.RecurringTemplate, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
	}
	if doctor.UserID != callerUserID {
		return nil, httperr.ErrForbidden("not_owner", "You can only view your own templates.")
	}
	return uc.repo.ListTemplates(ctx, doctorID)
}

type Get struct {
	repo domain.Repository
}

func NewGet(repo domain.Repository) *Get {
	return &Get{repo: repo}
}

func (uc *Get) Execute(
	ctx context.Context,
	callerUserID string,
	templateID string,
) (*models.RecurringTemplate, error) {

	template, err := uc.repo.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, httperr.ErrNotFound("template_not_found", "Recurring template not found.")
	}
	if template.Doctor.UserID != callerUserID {
		return nil, httperr.ErrForbidden("not_owner", "Template does not belong to you.")
	}
	return template, nil
}

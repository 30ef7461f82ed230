package appointment

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
)

type CancelInput struct {
	CallerUserID  string
	AppointmentID string
	Reason        string
}

type Cancel struct {
	repo domain.Repository
}

func NewCancel(repo domain.Repository) *Cancel {
	return &Cancel{repo: repo}
}

// Execute marks the appointment cancelled. Records are kept, never deleted.
func (uc *Cancel) Execute(
	ctx context.Context,
	in CancelInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
	}
	if ap.Patient.UserID != in.CallerUserID {
		return nil, httperr.ErrForbidden("not_owner", "Appointment does not belong to you.")
	}
	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	ap.Status = string(domain.StatusCancelled)
	ap.CancellationReason = in.Reason

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}
	return ap, nil
}

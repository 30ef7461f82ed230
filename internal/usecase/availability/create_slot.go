package availability

import (
	"context"
	"time"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
)

type CreateSlotInput struct {
	CallerUserID string
	DoctorID     string
	StartTime    time.Time
	EndTime      time.Time
}

type CreateSlot struct {
	repo domain.Repository
}

func NewCreateSlot(repo domain.Repository) *CreateSlot {
	return &CreateSlot{repo: repo}
}

func (uc *CreateSlot) Execute(
	ctx context.Context,
	in CreateSlotInput,
) (*models.AvailabilitySlot, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
	}
	if doctor.UserID != in.CallerUserID {
		return nil, httperr.ErrForbidden("not_owner", "Slot does not belong to you.")
	}

	if !in.EndTime.After(in.StartTime) {
		return nil, httperr.ErrInvalid("invalid_window", "End time must be after start time.")
	}

	slot := &models.AvailabilitySlot{
		DoctorID:  in.DoctorID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Mode:      models.SlotModeAvailable,
	}
	if err := uc.repo.SaveSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

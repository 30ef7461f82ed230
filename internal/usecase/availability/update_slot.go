package availability

import (
	"context"
	"time"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
)

type UpdateSlotInput struct {
	CallerUserID string
	SlotID       string

	StartTime *time.Time
	EndTime   *time.Time
	Mode      *string
}

type UpdateSlot struct {
	repo domain.Repository
}

func NewUpdateSlot(repo domain.Repository) *UpdateSlot {
	return &UpdateSlot{repo: repo}
}

func (uc *UpdateSlot) Execute(
	ctx context.Context,
	in UpdateSlotInput,
) (*models.AvailabilitySlot, error) {

	slot, err := uc.repo.GetSlot(ctx, in.SlotID)
	if err != nil {
		return nil, httperr.ErrNotFound("slot_not_found", "Slot not found.")
	}
	if slot.Doctor.UserID != in.CallerUserID {
		return nil, httperr.ErrForbidden("not_owner", "Slot does not belong to you.")
	}

	if in.StartTime != nil {
		slot.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		slot.EndTime = *in.EndTime
	}
	if !slot.EndTime.After(slot.StartTime) {
		return nil, httperr.ErrInvalid("invalid_window", "End time must be after start time.")
	}

	if in.Mode != nil {
		switch *in.Mode {
		case models.SlotModeAvailable, models.SlotModeBooked, models.SlotModeUnavailable:
			slot.Mode = *in.Mode
		default:
			return nil, httperr.ErrInvalid("invalid_mode", "Unknown slot mode.")
		}
	}

	if err := uc.repo.SaveSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

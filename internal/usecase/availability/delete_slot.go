package availability

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
)

type DeleteSlot struct {
	repo domain.Repository
}

func NewDeleteSlot(repo domain.Repository) *DeleteSlot {
	return &DeleteSlot{repo: repo}
}

func (uc *DeleteSlot) Execute(ctx context.Context, callerUserID, slotID string) error {
	slot, err := uc.repo.GetSlot(ctx, slotID)
	if err != nil {
		return httperr.ErrNotFound("slot_not_found", "Slot not found.")
	}
	if slot.Doctor.UserID != callerUserID {
		return httperr.ErrForbidden("not_owner", "Slot does not belong to you.")
	}
	if slot.Mode == models.SlotModeBooked {
		return httperr.ErrConflict("slot_booked", "Booked slots cannot be removed.")
	}
	return uc.repo.DeleteSlot(ctx, slot)
}

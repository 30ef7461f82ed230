package availability

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
)

type ListSlots struct {
	repo domain.Repository
}

func NewListSlots(repo domain.Repository) *ListSlots {
	return &ListSlots{repo: repo}
}

// Execute lists a doctor's fixed slots. onlyAvailable keeps just the ones a
// patient could still book.
func (uc *ListSlots) Execute(
	ctx context.Context,
	doctorID string,
	onlyAvailable bool,
) ([]models.AvailabilitySlot, error) {

	if _, err := uc.repo.GetDoctorByID(ctx, doctorID); err != nil {
		return nil, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
	}

	slots, err := uc.repo.ListSlots(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !onlyAvailable {
		return slots, nil
	}

	free := []models.AvailabilitySlot{}
	for _, s := range slots {
		if s.Mode == models.SlotModeAvailable {
			free = append(free, s)
		}
	}
	return free, nil
}

package schedule

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
)

// List returns a doctor's day schedules. Patients see these too when
// picking a day to book.
type List struct {
	repo domain.Repository
}

func NewList(repo domain.Repository) *List {
	return &List{repo: repo}
}

func (uc *List) Execute(
	ctx context.Context,
	doctorID string,
) ([]models.DaySchedule, error) {

	if _, err := uc.repo.GetDoctorByID(ctx, doctorID); err != nil {
		return nil, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
	}
	return uc.repo.ListDaySchedules(ctx, doctorID)
}

type Get struct {
	repo domain.Repository
}

func NewGet(repo domain.Repository) *Get {
	return &Get{repo: repo}
}

func (uc *Get) Execute(
	ctx context.Context,
	id string,
) (*models.DaySchedule, error) {

	schedule, err := uc.repo.GetDaySchedule(ctx, id)
	if err != nil {
		return nil, httperr.ErrNotFound("schedule_not_found", "Schedule not found.")
	}
	return schedule, nil
}

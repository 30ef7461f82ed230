package availability

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

type SlotsInput struct {
	DoctorID string
	Date     string

	// ExcludeAppointmentID removes one appointment from the booked set, so
	// a reschedule can see its own current slot as free.
	ExcludeAppointmentID string

	// Optional [RestrictStart, RestrictEnd) minute window used by overflow
	// redistribution to confine the search to one time bucket. RestrictEnd
	// zero means unrestricted.
	RestrictStart int
	RestrictEnd   int
}

type SlotsOutput struct {
	Resolved
	Slots []domain.TimeSlot `json:"slots"`
}

type GetAvailableSlots struct {
	repo domain.Repository
}

func NewGetAvailableSlots(repo domain.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo}
}

// Execute resolves the governing schedule for doctor+date, generates its
// candidate slots and removes the ones an active appointment already holds.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in SlotsInput,
) (SlotsOutput, error) {

	if !timeutil.IsValidDate(in.Date) {
		return SlotsOutput{}, httperr.ErrInvalid("invalid_date", "Date must be YYYY-MM-DD.")
	}

	if _, err := uc.repo.GetDoctorByID(ctx, in.DoctorID); err != nil {
		return SlotsOutput{}, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
	}

	res, err := ResolveSchedule(ctx, uc.repo, in.DoctorID, in.Date)
	if err != nil {
		return SlotsOutput{}, err
	}
	if res.Type == ResolvedNone {
		return SlotsOutput{Resolved: res, Slots: []domain.TimeSlot{}}, nil
	}

	candidates := domain.GenerateSlots(
		res.StartTime,
		res.EndTime,
		res.SlotDuration,
		res.BufferTime,
		res.MaxAppointments,
	)

	booked, err := uc.bookedSet(ctx, in)
	if err != nil {
		return SlotsOutput{}, err
	}

	free := []domain.TimeSlot{}
	for _, slot := range candidates {
		if booked[slot.Key()] {
			continue
		}
		if in.RestrictEnd > 0 {
			s := timeutil.ToMinutes(slot.StartTime)
			e := timeutil.ToMinutes(slot.EndTime)
			if s < in.RestrictStart || e > in.RestrictEnd {
				continue
			}
		}
		free = append(free, slot)
	}

	return SlotsOutput{Resolved: res, Slots: free}, nil
}

func (uc *GetAvailableSlots) bookedSet(
	ctx context.Context,
	in SlotsInput,
) (map[string]bool, error) {

	appts, err := uc.repo.ListAppointmentsForDate(
		ctx,
		in.DoctorID,
		in.Date,
		domain.ActiveStatuses,
	)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]bool, len(appts))
	for _, a := range appts {
		if a.ID == in.ExcludeAppointmentID {
			continue
		}
		booked[a.StartTime+"-"+a.EndTime] = true
	}
	return booked, nil
}

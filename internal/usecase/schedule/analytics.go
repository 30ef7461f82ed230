package schedule

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
	"github.com/schedula/clinic-scheduler/internal/usecase/availability"
)

const (
	RecommendationReduce   = "consider_reducing_availability"
	RecommendationBalanced = "balanced"
	RecommendationExpand   = "consider_adding_availability"
)

type FillRateInput struct {
	CallerUserID string
	DoctorID     string
	FromDate     string
	ToDate       string
}

type DayFillRate struct {
	Date     string  `json:"date"`
	Capacity int     `json:"capacity"`
	Booked   int     `json:"booked"`
	Rate     float64 `json:"rate"`
}

type FillRateOutput struct {
	Days           []DayFillRate `json:"days"`
	Capacity       int           `json:"capacity"`
	Booked         int           `json:"booked"`
	Rate           float64       `json:"rate"`
	Recommendation string        `json:"recommendation"`
}

// FillRate reports how much of a doctor's offered capacity is actually
// booked over a date range.
type FillRate struct {
	repo domain.Repository
}

func NewFillRate(repo domain.Repository) *FillRate {
	return &FillRate{repo: repo}
}

func (uc *FillRate) Execute(
	ctx context.Context,
	in FillRateInput,
) (FillRateOutput, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return FillRateOutput{}, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
	}
	if doctor.UserID != in.CallerUserID {
		return FillRateOutput{}, httperr.ErrForbidden("not_owner", "You can only view your own statistics.")
	}
	if !timeutil.IsValidDate(in.FromDate) || !timeutil.IsValidDate(in.ToDate) || in.ToDate < in.FromDate {
		return FillRateOutput{}, httperr.ErrInvalid("invalid_range", "A valid from/to date range is required.")
	}

	out := FillRateOutput{Days: []DayFillRate{}}
	for date := in.FromDate; date <= in.ToDate; date = timeutil.AddDays(date, 1) {
		res, err := availability.ResolveSchedule(ctx, uc.repo, in.DoctorID, date)
		if err != nil {
			return FillRateOutput{}, err
		}
		if res.Type == availability.ResolvedNone {
			continue
		}

		capacity := len(domain.GenerateSlots(
			res.StartTime, res.EndTime, res.SlotDuration, res.BufferTime, res.MaxAppointments,
		))
		if capacity == 0 {
			continue
		}

		active, err := uc.repo.ListAppointmentsForDate(ctx, in.DoctorID, date, domain.ActiveStatuses)
		if err != nil {
			return FillRateOutput{}, err
		}

		day := DayFillRate{
			Date:     date,
			Capacity: capacity,
			Booked:   len(active),
			Rate:     float64(len(active)) / float64(capacity),
		}
		out.Days = append(out.Days, day)
		out.Capacity += day.Capacity
		out.Booked += day.Booked
	}

	if out.Capacity > 0 {
		out.Rate = float64(out.Booked) / float64(out.Capacity)
	}
	switch {
	case out.Capacity == 0:
		out.Recommendation = RecommendationBalanced
	case out.Rate < 0.5:
		out.Recommendation = RecommendationReduce
	case out.Rate > 0.8:
		out.Recommendation = RecommendationExpand
	default:
		out.Recommendation = RecommendationBalanced
	}
	return out, nil
}

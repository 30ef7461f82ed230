package schedule

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

const (
	OverflowOutsideTimeRange  = "outside_time_range"
	OverflowExceedsCapacity   = "exceeds_capacity"
	OverflowCancelledByShrink = "cancelled_by_shrink"
)

type OverflowPreviewInput struct {
	CallerUserID string
	ScheduleID   string

	// Proposed new parameters. Empty/zero means keep the current value, so
	// the preview can be asked before any update is committed.
	StartTime       string
	EndTime         string
	MaxAppointments *int
}

type OverflowItem struct {
	Appointment models.Appointment `json:"appointment"`
	Reason      string             `json:"reason"`
}

type OverflowPreviewOutput struct {
	Overflow       []OverflowItem        `json:"overflow"`
	FitCount       int                   `json:"fit_count"`
	SessionBucket  domain.Bucket         `json:"session_bucket"`
	SearchPriority []domain.SearchTarget `json:"search_priority"`
}

// OverflowPreview reports which appointments would overflow under proposed
// schedule parameters, without mutating anything. The search priority is
// the narrower same-day-first variant keyed to the session's own
// time-of-day bucket.
type OverflowPreview struct {
	repo    domain.Repository
	buckets domain.BucketConfig
}

func NewOverflowPreview(repo domain.Repository, buckets domain.BucketConfig) *OverflowPreview {
	return &OverflowPreview{repo: repo, buckets: buckets}
}

func (uc *OverflowPreview) Execute(
	ctx context.Context,
	in OverflowPreviewInput,
) (OverflowPreviewOutput, error) {

	schedule, err := uc.repo.GetDaySchedule(ctx, in.ScheduleID)
	if err != nil {
		return OverflowPreviewOutput{}, httperr.ErrNotFound("schedule_not_found", "Schedule not found.")
	}
	if schedule.Doctor.UserID != in.CallerUserID {
		return OverflowPreviewOutput{}, httperr.ErrForbidden("not_owner", "Schedule does not belong to you.")
	}

	start, end, max := schedule.StartTime, schedule.EndTime, schedule.MaxAppointments
	if in.StartTime != "" {
		if !timeutil.IsValidTime(in.StartTime) {
			return OverflowPreviewOutput{}, httperr.ErrInvalid("invalid_time", "Times must be HH:MM.")
		}
		start = in.StartTime
	}
	if in.EndTime != "" {
		if !timeutil.IsValidTime(in.EndTime) {
			return OverflowPreviewOutput{}, httperr.ErrInvalid("invalid_time", "Times must be HH:MM.")
		}
		end = in.EndTime
	}
	if in.MaxAppointments != nil {
		max = *in.MaxAppointments
	}

	all, err := uc.repo.ListAppointmentsForDate(ctx, schedule.DoctorID, schedule.Date, nil)
	if err != nil {
		return OverflowPreviewOutput{}, err
	}

	// Patient-initiated cancellations are not the preview's business.
	appts := make([]models.Appointment, 0, len(all))
	for _, a := range all {
		if a.Status == string(domain.StatusCancelled) &&
			a.CancellationReason != domain.ReasonCancelledByShrink {
			continue
		}
		appts = append(appts, a)
	}

	cls := domain.Classify(appts, start, end, max)

	items := []OverflowItem{}
	startMin, endMin := timeutil.ToMinutes(start), timeutil.ToMinutes(end)
	for _, a := range cls.Overflow {
		reason := OverflowExceedsCapacity
		s, e := timeutil.ToMinutes(a.StartTime), timeutil.ToMinutes(a.EndTime)
		if s < startMin || e > endMin {
			reason = OverflowOutsideTimeRange
		}
		items = append(items, OverflowItem{Appointment: a, Reason: reason})
	}
	for _, a := range cls.DefiniteOverflow {
		items = append(items, OverflowItem{Appointment: a, Reason: OverflowCancelledByShrink})
	}

	sessionBucket := uc.buckets.BucketFor(start)
	return OverflowPreviewOutput{
		Overflow:       items,
		FitCount:       len(cls.Fits),
		SessionBucket:  sessionBucket,
		SearchPriority: uc.buckets.SearchPriority(sessionBucket),
	}, nil
}

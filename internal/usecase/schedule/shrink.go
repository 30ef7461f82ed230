package schedule

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

const (
	MethodNoOp        = "no_changes_needed"
	MethodUniformFit  = "all_fitted_uniformly"
	MethodPartialFit  = "partial_fit_with_redistribution"
	MethodAllOverflow = "all_overflowed"
)

// AppointmentChange is the before/after record of one appointment touched
// by a shrink.
type AppointmentChange struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`

	OldStart string `json:"old_start"`
	OldEnd   string `json:"old_end"`
	NewStart string `json:"new_start,omitempty"`
	NewEnd   string `json:"new_end,omitempty"`

	Status string `json:"status"`
}

type ShrinkSummary struct {
	Method   string `json:"method"`
	Duration int    `json:"duration,omitempty"` // compacted minutes per appointment

	FittedUniformly int `json:"fitted_uniformly"`
	FittedPartially int `json:"fitted_partially"`
	AutoRescheduled int `json:"auto_rescheduled"`
	PendingManual   int `json:"pending_manual"`

	Changes        []AppointmentChange    `json:"changes"`
	Redistribution *RedistributionSummary `json:"redistribution,omitempty"`
}

// Shrink reconciles a date's existing appointments with a reduced
// schedule. Appointments that fit keep their places when nothing
// overflows; otherwise every active appointment is re-packed at a
// progressively reduced uniform duration, and whatever still cannot fit
// is handed to redistribution. Appointments are never lost, only moved or
// marked for follow-up.
type Shrink struct {
	repo         domain.Repository
	redistribute *Redistribute
	logger       *zap.Logger
}

func NewShrink(repo domain.Repository, redistribute *Redistribute, logger *zap.Logger) *Shrink {
	return &Shrink{repo: repo, redistribute: redistribute, logger: logger}
}

func (uc *Shrink) Execute(
	ctx context.Context,
	schedule *models.DaySchedule,
) (ShrinkSummary, error) {

	appts, err := uc.loadRelevant(ctx, schedule)
	if err != nil {
		return ShrinkSummary{}, err
	}

	cls := domain.Classify(appts, schedule.StartTime, schedule.EndTime, schedule.MaxAppointments)

	// Unchanged window, nothing overflowing: leave every booking alone so
	// re-running the handler is a no-op.
	if len(cls.Overflow) == 0 && len(cls.DefiniteOverflow) == 0 {
		return ShrinkSummary{
			Method:          MethodNoOp,
			FittedUniformly: len(cls.Fits),
			Changes:         []AppointmentChange{},
		}, nil
	}

	active := cls.Active()
	window := timeutil.ToMinutes(schedule.EndTime) - timeutil.ToMinutes(schedule.StartTime)

	plan, ok := domain.PlanCompaction(len(active), window, schedule.BufferTime, schedule.MaxAppointments)

	var summary ShrinkSummary
	var overflow []models.Appointment

	switch {
	case ok && plan.Uniform:
		summary, overflow, err = uc.repackAll(ctx, schedule, active, plan)
	case ok:
		summary, overflow, err = uc.repackPartial(ctx, schedule, active, plan)
	default:
		summary, overflow, err = uc.overflowAll(ctx, active)
	}
	if err != nil {
		return ShrinkSummary{}, err
	}

	overflow = append(overflow, cls.DefiniteOverflow...)
	if len(overflow) > 0 {
		red, err := uc.redistribute.Execute(ctx, overflow, schedule.Date)
		if err != nil {
			return ShrinkSummary{}, err
		}
		summary.Redistribution = &red
		summary.AutoRescheduled = len(red.Rescheduled)
		summary.PendingManual = len(red.Pending)
	}

	uc.logger.Info("schedule shrink reconciled",
		zap.String("schedule_id", schedule.ID),
		zap.String("date", schedule.Date),
		zap.String("method", summary.Method),
		zap.Int("fitted_uniformly", summary.FittedUniformly),
		zap.Int("fitted_partially", summary.FittedPartially),
		zap.Int("auto_rescheduled", summary.AutoRescheduled),
		zap.Int("pending_manual", summary.PendingManual),
	)
	return summary, nil
}

// loadRelevant fetches the date's appointments that a shrink must account
// for: active ones, plus leftovers a previous shrink already pushed out.
// Patient-initiated cancellations stay untouched.
func (uc *Shrink) loadRelevant(
	ctx context.Context,
	schedule *models.DaySchedule,
) ([]models.Appointment, error) {

	all, err := uc.repo.ListAppointmentsForDate(ctx, schedule.DoctorID, schedule.Date, nil)
	if err != nil {
		return nil, err
	}

	relevant := make([]models.Appointment, 0, len(all))
	for _, a := range all {
		switch {
		case domain.IsActive(a.Status):
			relevant = append(relevant, a)
		case a.Status == string(domain.StatusPendingReschedule):
			relevant = append(relevant, a)
		case a.Status == string(domain.StatusCancelled) &&
			a.CancellationReason == domain.ReasonCancelledByShrink:
			relevant = append(relevant, a)
		}
	}
	return relevant, nil
}

// repackAll lays out every active appointment back-to-back at the uniform
// compacted duration. All end up scheduled; nobody keeps full length while
// another patient is dropped.
func (uc *Shrink) repackAll(
	ctx context.Context,
	schedule *models.DaySchedule,
	active []models.Appointment,
	plan domain.CompactionPlan,
) (ShrinkSummary, []models.Appointment, error) {

	slots := domain.Repack(schedule.StartTime, plan.Duration, schedule.BufferTime, len(active))

	changes := make([]AppointmentChange, 0, len(active))
	for i := range active {
		ap := &active[i]
		change := AppointmentChange{
			AppointmentID: ap.ID,
			PatientID:     ap.PatientID,
			OldStart:      ap.StartTime,
			OldEnd:        ap.EndTime,
			NewStart:      slots[i].StartTime,
			NewEnd:        slots[i].EndTime,
			Status:        string(domain.StatusScheduled),
		}

		ap.StartTime = slots[i].StartTime
		ap.EndTime = slots[i].EndTime
		ap.Status = string(domain.StatusScheduled)
		ap.CancellationReason = ""
		if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
			return ShrinkSummary{}, nil, err
		}
		changes = append(changes, change)
	}

	return ShrinkSummary{
		Method:          MethodUniformFit,
		Duration:        plan.Duration,
		FittedUniformly: len(active),
		Changes:         changes,
	}, nil, nil
}

// repackPartial keeps the earliest-booked slice of appointments at the
// best achievable duration and cancels the rest pending redistribution.
func (uc *Shrink) repackPartial(
	ctx context.Context,
	schedule *models.DaySchedule,
	active []models.Appointment,
	plan domain.CompactionPlan,
) (ShrinkSummary, []models.Appointment, error) {

	slots := domain.Repack(schedule.StartTime, plan.Duration, schedule.BufferTime, plan.Fitted)

	changes := make([]AppointmentChange, 0, len(active))
	var overflow []models.Appointment

	for i := range active {
		ap := &active[i]

		if i < plan.Fitted {
			changes = append(changes, AppointmentChange{
				AppointmentID: ap.ID,
				PatientID:     ap.PatientID,
				OldStart:      ap.StartTime,
				OldEnd:        ap.EndTime,
				NewStart:      slots[i].StartTime,
				NewEnd:        slots[i].EndTime,
				Status:        string(domain.StatusScheduled),
			})
			ap.StartTime = slots[i].StartTime
			ap.EndTime = slots[i].EndTime
			ap.Status = string(domain.StatusScheduled)
			ap.CancellationReason = ""
			if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
				return ShrinkSummary{}, nil, err
			}
			continue
		}

		changes = append(changes, AppointmentChange{
			AppointmentID: ap.ID,
			PatientID:     ap.PatientID,
			OldStart:      ap.StartTime,
			OldEnd:        ap.EndTime,
			Status:        string(domain.StatusCancelled),
		})
		ap.Status = string(domain.StatusCancelled)
		ap.CancellationReason = domain.ReasonCancelledByShrink
		if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
			return ShrinkSummary{}, nil, err
		}
		overflow = append(overflow, *ap)
	}

	return ShrinkSummary{
		Method:          MethodPartialFit,
		Duration:        plan.Duration,
		FittedPartially: plan.Fitted,
		Changes:         changes,
	}, overflow, nil
}

// overflowAll handles the degenerate window where not even one ten-minute
// appointment fits.
func (uc *Shrink) overflowAll(
	ctx context.Context,
	active []models.Appointment,
) (ShrinkSummary, []models.Appointment, error) {

	changes := make([]AppointmentChange, 0, len(active))
	var overflow []models.Appointment

	for i := range active {
		ap := &active[i]
		changes = append(changes, AppointmentChange{
			AppointmentID: ap.ID,
			PatientID:     ap.PatientID,
			OldStart:      ap.StartTime,
			OldEnd:        ap.EndTime,
			Status:        string(domain.StatusCancelled),
		})
		ap.Status = string(domain.StatusCancelled)
		ap.CancellationReason = domain.ReasonCancelledByShrink
		if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
			return ShrinkSummary{}, nil, err
		}
		overflow = append(overflow, *ap)
	}

	return ShrinkSummary{
		Method:  MethodAllOverflow,
		Changes: changes,
	}, overflow, nil
}

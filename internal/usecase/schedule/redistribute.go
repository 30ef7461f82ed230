package schedule

import (
	"context"
	"sort"

	"go.uber.org/zap"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/notify"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
	"github.com/schedula/clinic-scheduler/internal/usecase/availability"
)

// RedistributedAppointment records one successful automatic move.
type RedistributedAppointment struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`

	OldDate  string `json:"old_date"`
	OldStart string `json:"old_start"`
	OldEnd   string `json:"old_end"`

	NewDate  string        `json:"new_date"`
	NewStart string        `json:"new_start"`
	NewEnd   string        `json:"new_end"`
	Bucket   domain.Bucket `json:"bucket"`
	Offset   int           `json:"day_offset"`
}

// PendingAppointment records one appointment left for manual follow-up.
type PendingAppointment struct {
	AppointmentID string                   `json:"appointment_id"`
	PatientID     string                   `json:"patient_id"`
	Alternatives  []notify.AlternativeSlot `json:"alternatives"`
}

type RedistributionSummary struct {
	Rescheduled []RedistributedAppointment `json:"rescheduled"`
	Pending     []PendingAppointment       `json:"pending"`
	DaysUsed    int                        `json:"days_used"`
	BucketsUsed int                        `json:"buckets_used"`
}

// Redistribute places overflowing appointments on future days. It walks
// the next `days` dates in bucket order (morning, afternoon, evening) and
// claims the first free slot per appointment, earliest-booked first. An
// appointment with no slot after the full search is parked as
// pending-reschedule with suggested alternatives.
type Redistribute struct {
	repo     domain.Repository
	getSlots *availability.GetAvailableSlots
	sink     notify.Sink
	logger   *zap.Logger

	buckets         domain.BucketConfig
	days            int
	maxAlternatives int
}

func NewRedistribute(
	repo domain.Repository,
	sink notify.Sink,
	logger *zap.Logger,
	buckets domain.BucketConfig,
	days int,
	maxAlternatives int,
) *Redistribute {
	return &Redistribute{
		repo:            repo,
		getSlots:        availability.NewGetAvailableSlots(repo),
		sink:            sink,
		logger:          logger,
		buckets:         buckets,
		days:            days,
		maxAlternatives: maxAlternatives,
	}
}

func (uc *Redistribute) Execute(
	ctx context.Context,
	overflow []models.Appointment,
	fromDate string,
) (RedistributionSummary, error) {

	// FIFO by original booking time.
	sort.SliceStable(overflow, func(i, j int) bool {
		return overflow[i].CreatedAt.Before(overflow[j].CreatedAt)
	})

	// Slots claimed earlier in this run; the persisted booked set is not
	// re-queried mid-batch.
	claimed := map[string]bool{}

	summary := RedistributionSummary{
		Rescheduled: []RedistributedAppointment{},
		Pending:     []PendingAppointment{},
	}
	daysUsed := map[string]bool{}
	bucketsUsed := map[domain.Bucket]bool{}

	for i := range overflow {
		ap := &overflow[i]

		moved, alternatives := uc.place(ctx, ap, fromDate, claimed)
		if moved != nil {
			daysUsed[moved.NewDate] = true
			bucketsUsed[moved.Bucket] = true
			summary.Rescheduled = append(summary.Rescheduled, *moved)
			continue
		}

		ap.Status = string(domain.StatusPendingReschedule)
		if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
			uc.logger.Warn("failed to park appointment for manual reschedule",
				zap.String("appointment_id", ap.ID),
				zap.Error(err),
			)
			continue
		}
		uc.notifyPending(ap, alternatives)
		summary.Pending = append(summary.Pending, PendingAppointment{
			AppointmentID: ap.ID,
			PatientID:     ap.PatientID,
			Alternatives:  alternatives,
		})
	}

	summary.DaysUsed = len(daysUsed)
	summary.BucketsUsed = len(bucketsUsed)
	return summary, nil
}

// place searches date FIFO x bucket order for a free unclaimed slot. It
// returns the move on success, or the alternatives collected along the
// failed search.
func (uc *Redistribute) place(
	ctx context.Context,
	ap *models.Appointment,
	fromDate string,
	claimed map[string]bool,
) (*RedistributedAppointment, []notify.AlternativeSlot) {

	alternatives := []notify.AlternativeSlot{}

	for offset := 1; offset <= uc.days; offset++ {
		date := timeutil.AddDays(fromDate, offset)

		for _, bucket := range uc.buckets.Order() {
			ws, we := uc.buckets.Window(bucket)

			out, err := uc.getSlots.Execute(ctx, availability.SlotsInput{
				DoctorID:             ap.DoctorID,
				Date:                 date,
				ExcludeAppointmentID: ap.ID,
				RestrictStart:        ws,
				RestrictEnd:          we,
			})
			if err != nil {
				// One bad day must not sink the batch.
				uc.logger.Warn("availability lookup failed during redistribution",
					zap.String("doctor_id", ap.DoctorID),
					zap.String("date", date),
					zap.Error(err),
				)
				continue
			}
			if out.Type == availability.ResolvedNone {
				continue
			}

			if len(out.Slots) > 0 && len(alternatives) < uc.maxAlternatives {
				alternatives = append(alternatives, notify.AlternativeSlot{
					Date:       date,
					TimeBucket: string(bucket),
				})
			}

			for _, slot := range out.Slots {
				key := date + ":" + slot.Key()
				if claimed[key] {
					continue
				}
				claimed[key] = true

				moved, err := uc.commit(ctx, ap, out, date, slot.StartTime, slot.EndTime, bucket, offset)
				if err != nil {
					uc.logger.Warn("slot claim failed, trying next candidate",
						zap.String("appointment_id", ap.ID),
						zap.Error(err),
					)
					continue
				}
				return moved, nil
			}
		}
	}

	return nil, alternatives
}

func (uc *Redistribute) commit(
	ctx context.Context,
	ap *models.Appointment,
	out availability.SlotsOutput,
	date, start, end string,
	bucket domain.Bucket,
	offset int,
) (*RedistributedAppointment, error) {

	moved := RedistributedAppointment{
		AppointmentID: ap.ID,
		PatientID:     ap.PatientID,
		OldDate:       ap.Date,
		OldStart:      ap.StartTime,
		OldEnd:        ap.EndTime,
		NewDate:       date,
		NewStart:      start,
		NewEnd:        end,
		Bucket:        bucket,
		Offset:        offset,
	}

	ap.Date = date
	ap.StartTime = start
	ap.EndTime = end
	if out.Schedule != nil {
		id := out.Schedule.ID
		ap.DayScheduleID = &id
		ap.DaySchedule = nil
	}
	ap.Status = string(domain.StatusRescheduled)
	ap.CancellationReason = ""

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.notifyRescheduled(ap, moved)
	return &moved, nil
}

func (uc *Redistribute) notifyRescheduled(ap *models.Appointment, moved RedistributedAppointment) {
	if uc.sink == nil {
		return
	}
	_ = uc.sink.Send(notify.Event{
		AppointmentID: ap.ID,
		PatientID:     ap.PatientID,
		PatientName:   ap.Patient.Name,
		PatientEmail:  ap.Patient.Email,
		PatientPhone:  ap.Patient.PhoneNumber,
		DoctorName:    ap.Doctor.Name,
		OldDate:       moved.OldDate,
		OldTime:       moved.OldStart,
		NewDate:       moved.NewDate,
		NewTime:       moved.NewStart,
		Type:          notify.TypeRescheduled,
	})
}

func (uc *Redistribute) notifyPending(ap *models.Appointment, alternatives []notify.AlternativeSlot) {
	if uc.sink == nil {
		return
	}
	_ = uc.sink.Send(notify.Event{
		AppointmentID: ap.ID,
		PatientID:     ap.PatientID,
		PatientName:   ap.Patient.Name,
		PatientEmail:  ap.Patient.Email,
		PatientPhone:  ap.Patient.PhoneNumber,
		DoctorName:    ap.Doctor.Name,
		OldDate:       ap.Date,
		OldTime:       ap.StartTime,
		Type:          notify.TypePending,
		Alternatives:  alternatives,
	})
}

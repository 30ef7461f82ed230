package availability

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

const (
	ResolvedElastic   = "elastic"
	ResolvedRecurring = "recurring"
	ResolvedNone      = "none"
)

// Resolved is the schedule governing one doctor+date, after applying the
// override-wins tie-break and the template weekday fallback.
type Resolved struct {
	Type     string                    `json:"type"` // elastic | recurring | none
	Schedule *models.DaySchedule       `json:"schedule,omitempty"`
	Template *models.RecurringTemplate `json:"template,omitempty"`

	Date            string `json:"date"`
	StartTime       string `json:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
	SlotDuration    int    `json:"slot_duration,omitempty"`
	BufferTime      int    `json:"buffer_time,omitempty"`
	MaxAppointments int    `json:"max_appointments,omitempty"`
}

// ResolveSchedule picks the schedule definition that governs a date.
// Day-specific rows win over templates; among several rows for one date a
// manual override beats template-generated ones, newest first. With no row
// at all, the earliest-created active template covering the date's weekday
// applies. No schedule is not an error.
func ResolveSchedule(
	ctx context.Context,
	repo domain.Repository,
	doctorID string,
	date string,
) (Resolved, error) {

	rows, err := repo.ListDaySchedulesForDate(ctx, doctorID, date)
	if err != nil {
		return Resolved{}, err
	}

	var picked *models.DaySchedule
	for i := range rows {
		if rows[i].IsManualOverride() {
			picked = &rows[i]
			break
		}
	}
	if picked == nil && len(rows) > 0 {
		picked = &rows[0]
	}

	if picked != nil {
		return Resolved{
			Type:            ResolvedElastic,
			Schedule:        picked,
			Date:            date,
			StartTime:       picked.StartTime,
			EndTime:         picked.EndTime,
			SlotDuration:    picked.SlotDuration,
			BufferTime:      picked.BufferTime,
			MaxAppointments: picked.MaxAppointments,
		}, nil
	}

	weekday := timeutil.Weekday(date)

	templates, err := repo.ListActiveTemplates(ctx, doctorID)
	if err != nil {
		return Resolved{}, err
	}
	for i := range templates {
		t := &templates[i]
		if t.AppliesTo(weekday) {
			return Resolved{
				Type:            ResolvedRecurring,
				Template:        t,
				Date:            date,
				StartTime:       t.StartTime,
				EndTime:         t.EndTime,
				SlotDuration:    t.SlotDuration,
				BufferTime:      t.BufferTime,
				MaxAppointments: t.MaxAppointments,
			}, nil
		}
	}

	return Resolved{Type: ResolvedNone, Date: date}, nil
}

package template

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

type GenerateInput struct {
	CallerUserID string
	TemplateID   string

	// Optional explicit range; default is today through today plus the
	// template's weeks-ahead horizon.
	FromDate string
	ToDate   string

	OverrideExisting bool
	BypassTimeGuard  bool
}

type GenerateOutput struct {
	FromDate  string               `json:"from_date"`
	ToDate    string               `json:"to_date"`
	Generated []models.DaySchedule `json:"generated"`
	Skipped   []string             `json:"skipped"` // dates left untouched
}

// Generate materializes day schedules from a recurring template over a
// date range, one row per covered weekday.
type Generate struct {
	repo       domain.Repository
	tz         string
	minAdvance int
}

func NewGenerate(repo domain.Repository, tz string, minAdvance int) *Generate {
	return &Generate{repo: repo, tz: tz, minAdvance: minAdvance}
}

func (uc *Generate) Execute(
	ctx context.Context,
	in GenerateInput,
) (GenerateOutput, error) {

	template, err := uc.repo.GetTemplate(ctx, in.TemplateID)
	if err != nil {
		return GenerateOutput{}, httperr.ErrNotFound("template_not_found", "Recurring template not found.")
	}
	if template.Doctor.UserID != in.CallerUserID {
		return GenerateOutput{}, httperr.ErrForbidden("not_owner", "Template does not belong to you.")
	}

	if in.FromDate != "" && !timeutil.IsValidDate(in.FromDate) {
		return GenerateOutput{}, httperr.ErrInvalid("invalid_date", "Date must be YYYY-MM-DD.")
	}
	if in.ToDate != "" && !timeutil.IsValidDate(in.ToDate) {
		return GenerateOutput{}, httperr.ErrInvalid("invalid_date", "Date must be YYYY-MM-DD.")
	}

	return uc.expand(ctx, template, in.FromDate, in.ToDate, in.OverrideExisting, in.BypassTimeGuard)
}

// expand walks the range day by day. Dates already holding a schedule are
// skipped unless overriding was requested; manual overrides are never
// overwritten by template expansion.
func (uc *Generate) expand(
	ctx context.Context,
	template *models.RecurringTemplate,
	fromDate, toDate string,
	overrideExisting, bypassGuard bool,
) (GenerateOutput, error) {

	if fromDate == "" {
		fromDate = timeutil.Today(uc.tz)
	}
	if toDate == "" {
		toDate = timeutil.AddDays(fromDate, template.WeeksAhead*7)
	}
	if toDate < fromDate {
		return GenerateOutput{}, httperr.ErrInvalid("invalid_range", "End date precedes start date.")
	}

	out := GenerateOutput{
		FromDate:  fromDate,
		ToDate:    toDate,
		Generated: []models.DaySchedule{},
		Skipped:   []string{},
	}

	for date := fromDate; date <= toDate; date = timeutil.AddDays(date, 1) {
		if !template.AppliesTo(timeutil.Weekday(date)) {
			continue
		}

		existing, err := uc.repo.ListDaySchedulesForDate(ctx, template.DoctorID, date)
		if err != nil {
			return GenerateOutput{}, err
		}

		target := pickTemplateRow(existing, template.ID)
		hasManual := hasManualRow(existing)

		switch {
		case hasManual, len(existing) > 0 && !overrideExisting:
			out.Skipped = append(out.Skipped, date)
			continue
		case target != nil:
			if err := checkLeadTime(uc.tz, date, target.StartTime, uc.minAdvance, bypassGuard); err != nil {
				return GenerateOutput{}, err
			}
			applyTemplate(target, template)
			if err := uc.repo.SaveDaySchedule(ctx, target); err != nil {
				return GenerateOutput{}, err
			}
			out.Generated = append(out.Generated, *target)
		default:
			row := &models.DaySchedule{DoctorID: template.DoctorID, Date: date}
			applyTemplate(row, template)
			if err := uc.repo.SaveDaySchedule(ctx, row); err != nil {
				return GenerateOutput{}, err
			}
			out.Generated = append(out.Generated, *row)
		}
	}

	template.LastGeneratedDate = toDate
	if err := uc.repo.SaveTemplate(ctx, template); err != nil {
		return GenerateOutput{}, err
	}
	return out, nil
}

func applyTemplate(row *models.DaySchedule, t *models.RecurringTemplate) {
	row.StartTime = t.StartTime
	row.EndTime = t.EndTime
	row.SlotDuration = t.SlotDuration
	row.BufferTime = t.BufferTime
	row.MaxAppointments = t.MaxAppointments
	row.RecurringTemplateID = &t.ID
	row.IsOverride = false
	row.OverrideReason = ""
}

func pickTemplateRow(rows []models.DaySchedule, templateID string) *models.DaySchedule {
	for i := range rows {
		if rows[i].RecurringTemplateID != nil && *rows[i].RecurringTemplateID == templateID {
			return &rows[i]
		}
	}
	return nil
}

func hasManualRow(rows []models.DaySchedule) bool {
	for i := range rows {
		if rows[i].IsManualOverride() {
			return true
		}
	}
	return false
}

package template

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

type CreateInput struct {
	CallerUserID string
	DoctorID     string

	Name      string
	StartTime string
	EndTime   string

	SlotDuration    int
	BufferTime      int
	MaxAppointments int

	DaysOfWeek     []int
	WeeksAhead     int
	AllowOverrides bool
	AutoGenerate   bool
}

type CreateOutput struct {
	Template  *models.RecurringTemplate `json:"template"`
	Generated int                       `json:"generated"`
}

type Create struct {
	repo     domain.Repository
	generate *Generate
}

func NewCreate(repo domain.Repository, generate *Generate) *Create {
	return &Create{repo: repo, generate: generate}
}

func (uc *Create) Execute(
	ctx context.Context,
	in CreateInput,
) (CreateOutput, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return CreateOutput{}, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
	}
	if doctor.UserID != in.CallerUserID {
		return CreateOutput{}, httperr.ErrForbidden("not_owner", "Template does not belong to you.")
	}
	if err := validateTemplate(in.Name, in.StartTime, in.EndTime, in.SlotDuration, in.BufferTime, in.DaysOfWeek); err != nil {
		return CreateOutput{}, err
	}

	weeks := in.WeeksAhead
	if weeks <= 0 {
		weeks = 4
	}

	template := &models.RecurringTemplate{
		DoctorID:        in.DoctorID,
		Name:            in.Name,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		SlotDuration:    in.SlotDuration,
		BufferTime:      in.BufferTime,
		MaxAppointments: in.MaxAppointments,
		DaysOfWeek:      in.DaysOfWeek,
		WeeksAhead:      weeks,
		IsActive:        true,
		AllowOverrides:  in.AllowOverrides,
		AutoGenerate:    in.AutoGenerate,
	}
	if err := uc.repo.SaveTemplate(ctx, template); err != nil {
		return CreateOutput{}, err
	}

	out := CreateOutput{Template: template}
	if in.AutoGenerate {
		gen, err := uc.generate.expand(ctx, template, "", "", false, false)
		if err != nil {
			return CreateOutput{}, err
		}
		out.Generated = len(gen.Generated)
	}
	return out, nil
}

func validateTemplate(name, start, end string, duration, buffer int, days []int) error {
	if name == "" {
		return httperr.ErrInvalid("missing_name", "Template name is required.")
	}
	if !timeutil.IsValidTime(start) || !timeutil.IsValidTime(end) {
		return httperr.ErrInvalid("invalid_time", "Times must be HH:MM.")
	}
	if timeutil.ToMinutes(end) <= timeutil.ToMinutes(start) {
		return httperr.ErrInvalid("invalid_window", "End time must be after start time.")
	}
	if duration <= 0 {
		return httperr.ErrInvalid("invalid_duration", "Slot duration must be positive.")
	}
	if buffer < 0 {
		return httperr.ErrInvalid("invalid_buffer", "Buffer time cannot be negative.")
	}
	if len(days) == 0 {
		return httperr.ErrInvalid("missing_weekdays", "At least one weekday is required.")
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return httperr.ErrInvalid("invalid_weekday", "Weekdays must be 0 (Sunday) through 6 (Saturday).")
		}
	}
	return nil
}

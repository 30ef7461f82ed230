package scheduling

import (
	"context"

	"github.com/schedula/clinic-scheduler/internal/models"
)

// Repository is the persistence port shared by the scheduling usecases.
// Implementations are explicit dependencies injected into each usecase.
type Repository interface {
	// -------- Actors --------
	GetDoctorByID(
		ctx context.Context,
		id string,
	) (*models.Doctor, error)

	ListDoctors(
		ctx context.Context,
	) ([]models.Doctor, error)

	GetPatientByID(
		ctx context.Context,
		id string,
	) (*models.Patient, error)

	GetPatientByUser(
		ctx context.Context,
		userID string,
	) (*models.Patient, error)

	// -------- Day schedules --------
	GetDaySchedule(
		ctx context.Context,
		id string,
	) (*models.DaySchedule, error)

	ListDaySchedules(
		ctx context.Context,
		doctorID string,
	) ([]models.DaySchedule, error)

	// ListDaySchedulesForDate returns the rows governing one date,
	// most recently created first.
	ListDaySchedulesForDate(
		ctx context.Context,
		doctorID string,
		date string,
	) ([]models.DaySchedule, error)

	SaveDaySchedule(
		ctx context.Context,
		schedule *models.DaySchedule,
	) error

	DeleteDaySchedule(
		ctx context.Context,
		schedule *models.DaySchedule,
	) error

	// DeleteTemplateSchedulesFrom removes template-derived rows on or
	// after fromDate, ahead of a full regeneration.
	DeleteTemplateSchedulesFrom(
		ctx context.Context,
		doctorID string,
		templateID string,
		fromDate string,
	) error

	// -------- Recurring templates --------
	GetTemplate(
		ctx context.Context,
		id string,
	) (*models.RecurringTemplate, error)

	ListTemplates(
		ctx context.Context,
		doctorID string,
	) ([]models.RecurringTemplate, error)

	// ListActiveTemplates returns a doctor's active templates ordered by
	// creation time ascending; the earliest-created template wins weekday
	// fallback ties.
	ListActiveTemplates(
		ctx context.Context,
		doctorID string,
	) ([]models.RecurringTemplate, error)

	ListAutoGenerateTemplates(
		ctx context.Context,
	) ([]models.RecurringTemplate, error)

	SaveTemplate(
		ctx context.Context,
		template *models.RecurringTemplate,
	) error

	DeleteTemplate(
		ctx context.Context,
		template *models.RecurringTemplate,
	) error

	// -------- Appointments --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// ListAppointmentsForDate returns a doctor's appointments on one date
	// ordered by start time; statuses nil means all statuses.
	ListAppointmentsForDate(
		ctx context.Context,
		doctorID string,
		date string,
		statuses []string,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListPatientAppointments(
		ctx context.Context,
		patientID string,
	) ([]models.Appointment, error)

	ListDoctorAppointments(
		ctx context.Context,
		doctorID string,
	) ([]models.Appointment, error)

	// -------- Traditional slots --------
	GetSlot(
		ctx context.Context,
		id string,
	) (*models.AvailabilitySlot, error)

	ListSlots(
		ctx context.Context,
		doctorID string,
	) ([]models.AvailabilitySlot, error)

	SaveSlot(
		ctx context.Context,
		slot *models.AvailabilitySlot,
	) error

	DeleteSlot(
		ctx context.Context,
		slot *models.AvailabilitySlot,
	) error

	// -------- Notifications --------
	CreateNotification(
		ctx context.Context,
		n *models.Notification,
	) error

	// Transaction runs fn against a transactional view of the repository.
	// The booking path depends on this for its conflict-check-then-insert
	// sequence.
	Transaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}

// Locker serializes a critical section under a shared key. The booking
// engine locks per doctor+date so two requests cannot race for the same
// derived slot.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// NopLocker runs the section without any locking. Used in tests and when
// Redis is not configured.
type NopLocker struct{}

func (NopLocker) WithLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

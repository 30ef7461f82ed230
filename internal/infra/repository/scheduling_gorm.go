package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Actors
// --------------------------------------------------

func (r *SchedulingGormRepository) GetDoctorByID(
	ctx context.Context,
	id string,
) (*models.Doctor, error) {

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&doctor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *SchedulingGormRepository) ListDoctors(
	ctx context.Context,
) ([]models.Doctor, error) {

	var doctors []models.Doctor
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *SchedulingGormRepository) GetPatientByID(
	ctx context.Context,
	id string,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&patient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *SchedulingGormRepository) GetPatientByUser(
	ctx context.Context,
	userID string,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// --------------------------------------------------
// Day schedules
// --------------------------------------------------

func (r *SchedulingGormRepository) GetDaySchedule(
	ctx context.Context,
	id string,
) (*models.DaySchedule, error) {

	var schedule models.DaySchedule
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		First(&schedule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *SchedulingGormRepository) ListDaySchedules(
	ctx context.Context,
	doctorID string,
) ([]models.DaySchedule, error) {

	var schedules []models.DaySchedule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("date ASC, start_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *SchedulingGormRepository) ListDaySchedulesForDate(
	ctx context.Context,
	doctorID string,
	date string,
) ([]models.DaySchedule, error) {

	var schedules []models.DaySchedule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Order("created_at DESC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *SchedulingGormRepository) SaveDaySchedule(
	ctx context.Context,
	schedule *models.DaySchedule,
) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *SchedulingGormRepository) DeleteDaySchedule(
	ctx context.Context,
	schedule *models.DaySchedule,
) error {
	return r.db.WithContext(ctx).Delete(schedule).Error
}

func (r *SchedulingGormRepository) DeleteTemplateSchedulesFrom(
	ctx context.Context,
	doctorID string,
	templateID string,
	fromDate string,
) error {
	return r.db.WithContext(ctx).
		Where(
			"doctor_id = ? AND recurring_template_id = ? AND date >= ?",
			doctorID, templateID, fromDate,
		).
		Delete(&models.DaySchedule{}).Error
}

// --------------------------------------------------
// Recurring templates
// --------------------------------------------------

func (r *SchedulingGormRepository) GetTemplate(
	ctx context.Context,
	id string,
) (*models.RecurringTemplate, error) {

	var template models.RecurringTemplate
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		First(&template, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *SchedulingGormRepository) ListTemplates(
	ctx context.Context,
	doctorID string,
) ([]models.RecurringTemplate, error) {

	var templates []models.RecurringTemplate
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *SchedulingGormRepository) ListActiveTemplates(
	ctx context.Context,
	doctorID string,
) ([]models.RecurringTemplate, error) {

	var templates []models.RecurringTemplate
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND is_active = ?", doctorID, true).
		Order("created_at ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *SchedulingGormRepository) ListAutoGenerateTemplates(
	ctx context.Context,
) ([]models.RecurringTemplate, error) {

	var templates []models.RecurringTemplate
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("is_active = ? AND auto_generate = ?", true, true).
		Order("created_at ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *SchedulingGormRepository) SaveTemplate(
	ctx context.Context,
	template *models.RecurringTemplate,
) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *SchedulingGormRepository) DeleteTemplate(
	ctx context.Context,
	template *models.RecurringTemplate,
) error {
	return r.db.WithContext(ctx).Delete(template).Error
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Patient.User").
		Preload("Doctor").
		Preload("DaySchedule").
		Preload("Slot").
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) ListAppointmentsForDate(
	ctx context.Context,
	doctorID string,
	date string,
	statuses []string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Patient.User").
		Preload("Doctor").
		Where("doctor_id = ? AND date = ?", doctorID, date)

	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulingGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *SchedulingGormRepository) ListPatientAppointments(
	ctx context.Context,
	patientID string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("DaySchedule").
		Preload("Slot").
		Where("patient_id = ?", patientID).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulingGormRepository) ListDoctorAppointments(
	ctx context.Context,
	doctorID string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("DaySchedule").
		Preload("Slot").
		Where("doctor_id = ?", doctorID).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Traditional slots
// --------------------------------------------------

func (r *SchedulingGormRepository) GetSlot(
	ctx context.Context,
	id string,
) (*models.AvailabilitySlot, error) {

	var slot models.AvailabilitySlot
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		First(&slot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SchedulingGormRepository) ListSlots(
	ctx context.Context,
	doctorID string,
) ([]models.AvailabilitySlot, error) {

	var slots []models.AvailabilitySlot
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SchedulingGormRepository) SaveSlot(
	ctx context.Context,
	slot *models.AvailabilitySlot,
) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *SchedulingGormRepository) DeleteSlot(
	ctx context.Context,
	slot *models.AvailabilitySlot,
) error {
	return r.db.WithContext(ctx).Delete(slot).Error
}

// --------------------------------------------------
// Notifications
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *SchedulingGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewSchedulingGormRepository(tx))
	})
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)

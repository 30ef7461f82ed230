// Package schedulingtest provides an in-memory Repository for exercising
// the scheduling usecases without a database.
package schedulingtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/models"
	"github.com/schedula/clinic-scheduler/internal/timeutil"
)

var ErrNotFound = errors.New("record not found")

type Repo struct {
	mu sync.Mutex

	Doctors      map[string]*models.Doctor
	Patients     map[string]*models.Patient
	Schedules    map[string]*models.DaySchedule
	Templates    map[string]*models.RecurringTemplate
	Appointments map[string]*models.Appointment
	Slots        map[string]*models.AvailabilitySlot

	Notifications []models.Notification

	seq int
}

func NewRepo() *Repo {
	return &Repo{
		Doctors:      map[string]*models.Doctor{},
		Patients:     map[string]*models.Patient{},
		Schedules:    map[string]*models.DaySchedule{},
		Templates:    map[string]*models.RecurringTemplate{},
		Appointments: map[string]*models.Appointment{},
		Slots:        map[string]*models.AvailabilitySlot{},
	}
}

func (r *Repo) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s-%04d", prefix, r.seq)
}

// --------------------------------------------------
// Seed helpers
// --------------------------------------------------

func (r *Repo) AddDoctor(d *models.Doctor) *models.Doctor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		d.ID = r.nextID("doc")
	}
	r.Doctors[d.ID] = d
	return d
}

func (r *Repo) AddPatient(p *models.Patient) *models.Patient {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = r.nextID("pat")
	}
	r.Patients[p.ID] = p
	return p
}

func (r *Repo) AddSchedule(s *models.DaySchedule) *models.DaySchedule {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = r.nextID("sch")
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	if d, ok := r.Doctors[s.DoctorID]; ok {
		s.Doctor = *d
	}
	r.Schedules[s.ID] = s
	return s
}

func (r *Repo) AddTemplate(t *models.RecurringTemplate) *models.RecurringTemplate {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = r.nextID("tpl")
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if d, ok := r.Doctors[t.DoctorID]; ok {
		t.Doctor = *d
	}
	r.Templates[t.ID] = t
	return t
}

func (r *Repo) AddAppointment(a *models.Appointment) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = r.nextID("apt")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if a.Status == "" {
		a.Status = string(domain.StatusScheduled)
	}
	if p, ok := r.Patients[a.PatientID]; ok {
		a.Patient = *p
	}
	if d, ok := r.Doctors[a.DoctorID]; ok {
		a.Doctor = *d
	}
	r.Appointments[a.ID] = a
	return a
}

func (r *Repo) AddSlot(s *models.AvailabilitySlot) *models.AvailabilitySlot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = r.nextID("slt")
	}
	if d, ok := r.Doctors[s.DoctorID]; ok {
		s.Doctor = *d
	}
	r.Slots[s.ID] = s
	return s
}

// --------------------------------------------------
// Repository implementation
// --------------------------------------------------

func (r *Repo) GetDoctorByID(_ context.Context, id string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.Doctors[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *Repo) ListDoctors(_ context.Context) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Doctor{}
	for _, d := range r.Doctors {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repo) GetPatientByID(_ context.Context, id string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.Patients[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *Repo) GetPatientByUser(_ context.Context, userID string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.Patients {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Repo) GetDaySchedule(_ context.Context, id string) (*models.DaySchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.Schedules[id]; ok {
		cp := *s
		if d, ok := r.Doctors[s.DoctorID]; ok {
			cp.Doctor = *d
		}
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *Repo) ListDaySchedules(_ context.Context, doctorID string) ([]models.DaySchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.DaySchedule{}
	for _, s := range r.Schedules {
		if s.DoctorID == doctorID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *Repo) ListDaySchedulesForDate(_ context.Context, doctorID, date string) ([]models.DaySchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.DaySchedule{}
	for _, s := range r.Schedules {
		if s.DoctorID == doctorID && s.Date == date {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Repo) SaveDaySchedule(_ context.Context, s *models.DaySchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = r.nextID("sch")
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	cp := *s
	r.Schedules[s.ID] = &cp
	return nil
}

func (r *Repo) DeleteDaySchedule(_ context.Context, s *models.DaySchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Schedules, s.ID)
	return nil
}

func (r *Repo) DeleteTemplateSchedulesFrom(_ context.Context, doctorID, templateID, fromDate string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.Schedules {
		if s.DoctorID == doctorID && s.Date >= fromDate &&
			s.RecurringTemplateID != nil && *s.RecurringTemplateID == templateID {
			delete(r.Schedules, id)
		}
	}
	return nil
}

func (r *Repo) GetTemplate(_ context.Context, id string) (*models.RecurringTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.Templates[id]; ok {
		cp := *t
		if d, ok := r.Doctors[t.DoctorID]; ok {
			cp.Doctor = *d
		}
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *Repo) ListTemplates(_ context.Context, doctorID string) ([]models.RecurringTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.RecurringTemplate{}
	for _, t := range r.Templates {
		if t.DoctorID == doctorID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Repo) ListActiveTemplates(_ context.Context, doctorID string) ([]models.RecurringTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.RecurringTemplate{}
	for _, t := range r.Templates {
		if t.DoctorID == doctorID && t.IsActive {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *Repo) ListAutoGenerateTemplates(_ context.Context) ([]models.RecurringTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.RecurringTemplate{}
	for _, t := range r.Templates {
		if t.IsActive && t.AutoGenerate {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *Repo) SaveTemplate(_ context.Context, t *models.RecurringTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = r.nextID("tpl")
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	cp := *t
	r.Templates[t.ID] = &cp
	return nil
}

func (r *Repo) DeleteTemplate(_ context.Context, t *models.RecurringTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Templates, t.ID)
	return nil
}

func (r *Repo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.Appointments[id]; ok {
		cp := *a
		r.attach(&cp)
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *Repo) attach(a *models.Appointment) {
	if p, ok := r.Patients[a.PatientID]; ok {
		a.Patient = *p
	}
	if d, ok := r.Doctors[a.DoctorID]; ok {
		a.Doctor = *d
	}
	if a.DayScheduleID != nil {
		if s, ok := r.Schedules[*a.DayScheduleID]; ok {
			cp := *s
			a.DaySchedule = &cp
		}
	}
	if a.SlotID != nil {
		if s, ok := r.Slots[*a.SlotID]; ok {
			cp := *s
			a.Slot = &cp
		}
	}
}

func (r *Repo) ListAppointmentsForDate(_ context.Context, doctorID, date string, statuses []string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range r.Appointments {
		if a.DoctorID != doctorID || a.Date != date {
			continue
		}
		if len(statuses) > 0 && !contains(statuses, a.Status) {
			continue
		}
		cp := *a
		r.attach(&cp)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return timeutil.ToMinutes(out[i].StartTime) < timeutil.ToMinutes(out[j].StartTime)
	})
	return out, nil
}

func (r *Repo) CreateAppointment(_ context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = r.nextID("apt")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	cp := *a
	r.Appointments[a.ID] = &cp
	return nil
}

func (r *Repo) SaveAppointment(_ context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.Appointments[a.ID] = &cp
	return nil
}

func (r *Repo) ListPatientAppointments(_ context.Context, patientID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range r.Appointments {
		if a.PatientID == patientID {
			cp := *a
			r.attach(&cp)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *Repo) ListDoctorAppointments(_ context.Context, doctorID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range r.Appointments {
		if a.DoctorID == doctorID {
			cp := *a
			r.attach(&cp)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *Repo) GetSlot(_ context.Context, id string) (*models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.Slots[id]; ok {
		cp := *s
		if d, ok := r.Doctors[s.DoctorID]; ok {
			cp.Doctor = *d
		}
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *Repo) ListSlots(_ context.Context, doctorID string) ([]models.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.AvailabilitySlot{}
	for _, s := range r.Slots {
		if s.DoctorID == doctorID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *Repo) SaveSlot(_ context.Context, s *models.AvailabilitySlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = r.nextID("slt")
	}
	cp := *s
	r.Slots[s.ID] = &cp
	return nil
}

func (r *Repo) DeleteSlot(_ context.Context, s *models.AvailabilitySlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Slots, s.ID)
	return nil
}

func (r *Repo) CreateNotification(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notifications = append(r.Notifications, *n)
	return nil
}

func (r *Repo) Transaction(_ context.Context, fn func(domain.Repository) error) error {
	return fn(r)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var _ domain.Repository = (*Repo)(nil)

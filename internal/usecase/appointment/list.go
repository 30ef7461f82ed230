package appointment

import (
	"context"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/models"
)

// ListPatientAppointments returns the caller's own appointments in every
// status, with related records loaded.
type ListPatientAppointments struct {
	repo domain.Repository
}

func NewListPatientAppointments(repo domain.Repository) *ListPatientAppointments {
	return &ListPatientAppointments{repo: repo}
}

func (uc *ListPatientAppointments) Execute(
	ctx context.Context,
	callerUserID string,
) ([]models.Appointment, error) {

	patient, err := uc.repo.GetPatientByUser(ctx, callerUserID)
	if err != nil {
		return nil, httperr.ErrNotFound("patient_not_found", "Patient profile not found.")
	}
	return uc.repo.ListPatientAppointments(ctx, patient.ID)
}

// ListDoctorAppointments returns a doctor's appointments, gated on the
// caller owning that doctor record.
type ListDoctorAppointments struct {
	repo domain.Repository
}

func NewListDoctorAppointments(repo domain.Repository) *ListDoctorAppointments {
	return &ListDoctorAppointments{repo: repo}
}

func (uc *ListDoctorAppointments) Execute(
	ctx context.Context,
	callerUserID string,
	doctorID string,
) ([]models.Appointment, error) {

	doctor, err := uc.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
	}
	if doctor.UserID != callerUserID {
		return nil, httperr.ErrForbidden("not_owner", "You can only view your own appointments.")
	}
	return uc.repo.ListDoctorAppointments(ctx, doctorID)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/httpresp"
	"github.com/schedula/clinic-scheduler/internal/middleware"
)

// DoctorHandler serves the thin read endpoints patients use to find a
// doctor before booking.
type DoctorHandler struct {
	repo domain.Repository
}

func NewDoctorHandler(repo domain.Repository) *DoctorHandler {
	return &DoctorHandler{repo: repo}
}

func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.repo.ListDoctors(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, doctors)
}

func (h *DoctorHandler) Get(c *gin.Context) {
	doctor, err := h.repo.GetDoctorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, httperr.ErrNotFound("doctor_not_found", "Doctor not found."))
		return
	}
	httpresp.OK(c, doctor)
}

// Me returns the caller's own patient profile.
func (h *DoctorHandler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	patient, err := h.repo.GetPatientByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, httperr.ErrNotFound("patient_not_found", "Patient profile not found."))
		return
	}
	httpresp.OK(c, patient)
}

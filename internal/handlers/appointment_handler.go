package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/httpresp"
	"github.com/schedula/clinic-scheduler/internal/middleware"
	"github.com/schedula/clinic-scheduler/internal/usecase/appointment"
)

type AppointmentHandler struct {
	book        *appointment.Book
	reschedule  *appointment.Reschedule
	cancel      *appointment.Cancel
	listPatient *appointment.ListPatientAppointments
	listDoctor  *appointment.ListDoctorAppointments
}

func NewAppointmentHandler(repo domain.Repository, locker domain.Locker) *AppointmentHandler {
	return &AppointmentHandler{
		book:        appointment.NewBook(repo, locker),
		reschedule:  appointment.NewReschedule(repo),
		cancel:      appointment.NewCancel(repo),
		listPatient: appointment.NewListPatientAppointments(repo),
		listDoctor:  appointment.NewListDoctorAppointments(repo),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	ElasticScheduleID   string `json:"elastic_schedule_id"`
	RecurringTemplateID string `json:"recurring_template_id"`
	SlotID              string `json:"slot_id"`

	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type RescheduleRequest struct {
	SlotID    string `json:"slot_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	ListSlots bool   `json:"list_slots"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), appointment.BookInput{
		CallerUserID:        userID,
		ElasticScheduleID:   req.ElasticScheduleID,
		RecurringTemplateID: req.RecurringTemplateID,
		SlotID:              req.SlotID,
		Date:                req.Date,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	out, err := h.reschedule.Execute(c.Request.Context(), appointment.RescheduleInput{
		CallerUserID:  userID,
		AppointmentID: c.Param("id"),
		SlotID:        req.SlotID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		ListSlots:     req.ListSlots,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancel.Execute(c.Request.Context(), appointment.CancelInput{
		CallerUserID:  userID,
		AppointmentID: c.Param("id"),
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	aps, err := h.listPatient.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, aps)
}

func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	aps, err := h.listDoctor.Execute(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, aps)
}

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/httpresp"
	"github.com/schedula/clinic-scheduler/internal/middleware"
	"github.com/schedula/clinic-scheduler/internal/usecase/availability"
)

type AvailabilityHandler struct {
	getSlots   *availability.GetAvailableSlots
	createSlot *availability.CreateSlot
	listSlots  *availability.ListSlots
	updateSlot *availability.UpdateSlot
	deleteSlot *availability.DeleteSlot
}

func NewAvailabilityHandler(repo domain.Repository) *AvailabilityHandler {
	return &AvailabilityHandler{
		getSlots:   availability.NewGetAvailableSlots(repo),
		createSlot: availability.NewCreateSlot(repo),
		listSlots:  availability.NewListSlots(repo),
		updateSlot: availability.NewUpdateSlot(repo),
		deleteSlot: availability.NewDeleteSlot(repo),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSlotRequest struct {
	DoctorID  string    `json:"doctor_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type UpdateSlotRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Mode      *string    `json:"mode"`
}

// ======================================================
// HANDLERS
// ======================================================

// AvailableSlots returns the free derived slots of an elastic or
// template-governed date.
func (h *AvailabilityHandler) AvailableSlots(c *gin.Context) {
	out, err := h.getSlots.Execute(c.Request.Context(), availability.SlotsInput{
		DoctorID: c.Param("id"),
		Date:     c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AvailabilityHandler) CreateSlot(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	slot, err := h.createSlot.Execute(c.Request.Context(), availability.CreateSlotInput{
		CallerUserID: userID,
		DoctorID:     req.DoctorID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, slot)
}

func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	onlyAvailable := c.Query("available") == "true"

	slots, err := h.listSlots.Execute(c.Request.Context(), c.Param("id"), onlyAvailable)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, slots)
}

func (h *AvailabilityHandler) UpdateSlot(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	slot, err := h.updateSlot.Execute(c.Request.Context(), availability.UpdateSlotInput{
		CallerUserID: userID,
		SlotID:       c.Param("id"),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Mode:         req.Mode,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, slot)
}

func (h *AvailabilityHandler) DeleteSlot(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	if err := h.deleteSlot.Execute(c.Request.Context(), userID, c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}

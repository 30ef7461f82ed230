package handlers

import (
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"

	"github.com/schedula/clinic-scheduler/internal/config"
	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/httpresp"
	"github.com/schedula/clinic-scheduler/internal/middleware"
	"github.com/schedula/clinic-scheduler/internal/notify"
	"github.com/schedula/clinic-scheduler/internal/usecase/schedule"
)

type DayScheduleHandler struct {
	create   *schedule.Create
	list     *schedule.List
	get      *schedule.Get
	update   *schedule.Update
	delete   *schedule.Delete
	shrink   *schedule.Shrink
	preview  *schedule.OverflowPreview
	fillRate *schedule.FillRate
}

func NewDayScheduleHandler(
	repo domain.Repository,
	sink notify.Sink,
	logger *zap.Logger,
	cfg *config.Config,
) *DayScheduleHandler {

	buckets := domain.BucketConfig{
		MorningStart:   cfg.MorningStart,
		AfternoonStart: cfg.AfternoonStart,
		EveningStart:   cfg.EveningStart,
		EveningEnd:     cfg.EveningEnd,
	}
	redistribute := schedule.NewRedistribute(
		repo, sink, logger, buckets, cfg.RedistributeDays, cfg.MaxAlternatives,
	)
	shrink := schedule.NewShrink(repo, redistribute, logger)

	return &DayScheduleHandler{
		create:   schedule.NewCreate(repo),
		list:     schedule.NewList(repo),
		get:      schedule.NewGet(repo),
		update:   schedule.NewUpdate(repo, shrink),
		delete:   schedule.NewDelete(repo),
		shrink:   shrink,
		preview:  schedule.NewOverflowPreview(repo, buckets),
		fillRate: schedule.NewFillRate(repo),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateDayScheduleRequest struct {
	DoctorID        string `json:"doctor_id" binding:"required"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	SlotDuration    int    `json:"slot_duration" binding:"required"`
	BufferTime      int    `json:"buffer_time"`
	MaxAppointments int    `json:"max_appointments"`
}

type UpdateDayScheduleRequest struct {
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	SlotDuration    *int    `json:"slot_duration"`
	BufferTime      *int    `json:"buffer_time"`
	MaxAppointments *int    `json:"max_appointments"`
	AdjustExisting  bool    `json:"adjust_existing"`
}

type OverflowPreviewRequest struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	MaxAppointments *int   `json:"max_appointments"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *DayScheduleHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateDayScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	out, err := h.create.Execute(c.Request.Context(), schedule.CreateInput{
		CallerUserID:    userID,
		DoctorID:        req.DoctorID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		SlotDuration:    req.SlotDuration,
		BufferTime:      req.BufferTime,
		MaxAppointments: req.MaxAppointments,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, out)
}

func (h *DayScheduleHandler) List(c *gin.Context) {
	out, err := h.list.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *DayScheduleHandler) Get(c *gin.Context) {
	out, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *DayScheduleHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req UpdateDayScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	out, err := h.update.Execute(c.Request.Context(), schedule.UpdateInput{
		CallerUserID:    userID,
		ScheduleID:      c.Param("id"),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		SlotDuration:    req.SlotDuration,
		BufferTime:      req.BufferTime,
		MaxAppointments: req.MaxAppointments,
		AdjustExisting:  req.AdjustExisting,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *DayScheduleHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	if err := h.delete.Execute(c.Request.Context(), userID, c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}

// Reconcile re-runs the shrink handler against the schedule as currently
// stored, redistributing anything a previous run left behind.
func (h *DayScheduleHandler) Reconcile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	sched, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if sched.Doctor.UserID != userID {
		httperr.Respond(c, httperr.ErrForbidden("not_owner", "Schedule does not belong to you."))
		return
	}

	summary, err := h.shrink.Execute(c.Request.Context(), sched)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, summary)
}

func (h *DayScheduleHandler) OverflowPreview(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req OverflowPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	out, err := h.preview.Execute(c.Request.Context(), schedule.OverflowPreviewInput{
		CallerUserID:    userID,
		ScheduleID:      c.Param("id"),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxAppointments: req.MaxAppointments,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *DayScheduleHandler) FillRate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	out, err := h.fillRate.Execute(c.Request.Context(), schedule.FillRateInput{
		CallerUserID: userID,
		DoctorID:     c.Param("id"),
		FromDate:     c.Query("from"),
		ToDate:       c.Query("to"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

package handlers

import (
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"

	"github.com/schedula/clinic-scheduler/internal/config"
	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/httperr"
	"github.com/schedula/clinic-scheduler/internal/httpresp"
	"github.com/schedula/clinic-scheduler/internal/middleware"
	"github.com/schedula/clinic-scheduler/internal/usecase/template"
)

type TemplateHandler struct {
	create   *template.Create
	list     *template.List
	get      *template.Get
	update   *template.Update
	delete   *template.Delete
	generate *template.Generate
	override *template.CreateOverride
	autoAll  *template.AutoGenerateAll
}

func NewTemplateHandler(repo domain.Repository, logger *zap.Logger, cfg *config.Config) *TemplateHandler {
	generate := template.NewGenerate(repo, cfg.Timezone, cfg.MinAdvanceMinutes)

	return &TemplateHandler{
		create:   template.NewCreate(repo, generate),
		list:     template.NewList(repo),
		get:      template.NewGet(repo),
		update:   template.NewUpdate(repo, generate, cfg.Timezone),
		delete:   template.NewDelete(repo, cfg.Timezone),
		generate: generate,
		override: template.NewCreateOverride(repo, cfg.Timezone, cfg.MinAdvanceMinutes),
		autoAll:  template.NewAutoGenerateAll(repo, generate, logger),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTemplateRequest struct {
	DoctorID        string `json:"doctor_id" binding:"required"`
	Name            string `json:"name" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	SlotDuration    int    `json:"slot_duration" binding:"required"`
	BufferTime      int    `json:"buffer_time"`
	MaxAppointments int    `json:"max_appointments"`
	DaysOfWeek      []int  `json:"days_of_week" binding:"required"`
	WeeksAhead      int    `json:"weeks_ahead"`
	AllowOverrides  *bool  `json:"allow_overrides"`
	AutoGenerate    *bool  `json:"auto_generate"`
}

type UpdateTemplateRequest struct {
	Name            *string `json:"name"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	SlotDuration    *int    `json:"slot_duration"`
	BufferTime      *int    `json:"buffer_time"`
	MaxAppointments *int    `json:"max_appointments"`
	DaysOfWeek      []int   `json:"days_of_week"`
	WeeksAhead      *int    `json:"weeks_ahead"`
	IsActive        *bool   `json:"is_active"`
	AllowOverrides  *bool   `json:"allow_overrides"`
	AutoGenerate    *bool   `json:"auto_generate"`

	RegenerateFuture bool `json:"regenerate_future"`
	BypassTimeGuard  bool `json:"bypass_time_guard"`
}

type GenerateRequest struct {
	FromDate         string `json:"from_date"`
	ToDate           string `json:"to_date"`
	OverrideExisting bool   `json:"override_existing"`
	BypassTimeGuard  bool   `json:"bypass_time_guard"`
}

type OverrideRequest struct {
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	SlotDuration    int    `json:"slot_duration"`
	BufferTime      *int   `json:"buffer_time"`
	MaxAppointments *int   `json:"max_appointments"`
	Reason          string `json:"reason"`
	BypassTimeGuard bool   `json:"bypass_time_guard"`
}

type DeleteTemplateRequest struct {
	DeleteFutureSchedules bool `json:"delete_future_schedules"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *TemplateHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	allowOverrides, autoGenerate := true, true
	if req.AllowOverrides != nil {
		allowOverrides = *req.AllowOverrides
	}
	if req.AutoGenerate != nil {
		autoGenerate = *req.AutoGenerate
	}

	out, err := h.create.Execute(c.Request.Context(), template.CreateInput{
		CallerUserID:    userID,
		DoctorID:        req.DoctorID,
		Name:            req.Name,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		SlotDuration:    req.SlotDuration,
		BufferTime:      req.BufferTime,
		MaxAppointments: req.MaxAppointments,
		DaysOfWeek:      req.DaysOfWeek,
		WeeksAhead:      req.WeeksAhead,
		AllowOverrides:  allowOverrides,
		AutoGenerate:    autoGenerate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, out)
}

func (h *TemplateHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	out, err := h.list.Execute(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *TemplateHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	out, err := h.get.Execute(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	out, err := h.update.Execute(c.Request.Context(), template.UpdateInput{
		CallerUserID:     userID,
		TemplateID:       c.Param("id"),
		Name:             req.Name,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		SlotDuration:     req.SlotDuration,
		BufferTime:       req.BufferTime,
		MaxAppointments:  req.MaxAppointments,
		DaysOfWeek:       req.DaysOfWeek,
		WeeksAhead:       req.WeeksAhead,
		IsActive:         req.IsActive,
		AllowOverrides:   req.AllowOverrides,
		AutoGenerate:     req.AutoGenerate,
		RegenerateFuture: req.RegenerateFuture,
		BypassTimeGuard:  req.BypassTimeGuard,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req DeleteTemplateRequest
	_ = c.ShouldBindJSON(&req)

	err := h.delete.Execute(c.Request.Context(), template.DeleteInput{
		CallerUserID:          userID,
		TemplateID:            c.Param("id"),
		DeleteFutureSchedules: req.DeleteFutureSchedules,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}

func (h *TemplateHandler) Generate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req GenerateRequest
	_ = c.ShouldBindJSON(&req)

	out, err := h.generate.Execute(c.Request.Context(), template.GenerateInput{
		CallerUserID:     userID,
		TemplateID:       c.Param("id"),
		FromDate:         req.FromDate,
		ToDate:           req.ToDate,
		OverrideExisting: req.OverrideExisting,
		BypassTimeGuard:  req.BypassTimeGuard,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *TemplateHandler) Override(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	out, err := h.override.Execute(c.Request.Context(), template.OverrideInput{
		CallerUserID:    userID,
		TemplateID:      c.Param("id"),
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		SlotDuration:    req.SlotDuration,
		BufferTime:      req.BufferTime,
		MaxAppointments: req.MaxAppointments,
		Reason:          req.Reason,
		BypassTimeGuard: req.BypassTimeGuard,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, out)
}

func (h *TemplateHandler) AutoGenerateAll(c *gin.Context) {
	out, err := h.autoAll.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

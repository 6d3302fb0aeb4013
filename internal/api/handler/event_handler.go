package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/service"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/response"
)

// EventHandler 活动与工作日模块 HTTP 处理器
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// CreateEvent 创建活动
// POST /api/v1/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), operatorID, req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.Created(c, event)
}

// GetEvent 活动详情
// GET /api/v1/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// ListEvents 活动列表（可按客户过滤）
// GET /api/v1/events?client_id=xxx
func (h *EventHandler) ListEvents(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	events, total, err := h.eventSvc.List(c.Request.Context(), c.Query("client_id"), page.GetPage(), page.GetPageSize())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, events, total, page.GetPage(), page.GetPageSize())
}

// UpdateEvent 更新活动
// PUT /api/v1/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), operatorID, c.Param("id"), req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// DeleteEvent 删除活动（软删除）
// DELETE /api/v1/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 工作日 ──

// CreateWorkday 在活动下创建工作日
// POST /api/v1/events/:id/workdays
func (h *EventHandler) CreateWorkday(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWorkdayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	workday, err := h.eventSvc.CreateWorkday(c.Request.Context(), operatorID, c.Param("id"), req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.Created(c, workday)
}

// ListWorkdays 活动的工作日列表
// GET /api/v1/events/:id/workdays
func (h *EventHandler) ListWorkdays(c *gin.Context) {
	workdays, err := h.eventSvc.ListWorkdays(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, workdays)
}

// DeleteWorkday 删除工作日（软删除）
// DELETE /api/v1/workdays/:id
func (h *EventHandler) DeleteWorkday(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.eventSvc.DeleteWorkday(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 23001, "活动不存在")
	case errors.Is(err, service.ErrEventClientMissing):
		response.BadRequest(c, 23002, "所属客户不存在")
	case errors.Is(err, service.ErrWorkdayNotFound):
		response.NotFound(c, 23003, "工作日不存在")
	case errors.Is(err, service.ErrWorkdayDateInvalid):
		response.BadRequest(c, 23004, "工作日日期格式不合法")
	case errors.Is(err, service.ErrWorkdayLocationGone):
		response.BadRequest(c, 23005, "指定的工作地点不存在")
	default:
		response.InternalError(c)
	}
}

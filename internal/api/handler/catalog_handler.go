package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/service"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/response"
)

// CatalogHandler 任务类型与职务目录 HTTP 处理器
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ── 任务类型 ──

// CreateTaskType 创建任务类型
// POST /api/v1/task-types
func (h *CatalogHandler) CreateTaskType(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	taskType, err := h.catalogSvc.CreateTaskType(c.Request.Context(), operatorID, req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.Created(c, taskType)
}

// GetTaskType 任务类型详情
// GET /api/v1/task-types/:id
func (h *CatalogHandler) GetTaskType(c *gin.Context) {
	taskType, err := h.catalogSvc.GetTaskType(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.OK(c, taskType)
}

// ListTaskTypes 任务类型列表
// GET /api/v1/task-types
func (h *CatalogHandler) ListTaskTypes(c *gin.Context) {
	taskTypes, err := h.catalogSvc.ListTaskTypes(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, taskTypes)
}

// UpdateTaskType 更新任务类型
// PUT /api/v1/task-types/:id
func (h *CatalogHandler) UpdateTaskType(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	taskType, err := h.catalogSvc.UpdateTaskType(c.Request.Context(), operatorID, c.Param("id"), req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.OK(c, taskType)
}

// DeleteTaskType 删除任务类型（软删除）
// DELETE /api/v1/task-types/:id
func (h *CatalogHandler) DeleteTaskType(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.catalogSvc.DeleteTaskType(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 职务 ──

// CreateDuty 创建职务
// POST /api/v1/duties
func (h *CatalogHandler) CreateDuty(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	duty, err := h.catalogSvc.CreateDuty(c.Request.Context(), operatorID, req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.Created(c, duty)
}

// GetDuty 职务详情
// GET /api/v1/duties/:id
func (h *CatalogHandler) GetDuty(c *gin.Context) {
	duty, err := h.catalogSvc.GetDuty(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.OK(c, duty)
}

// ListDuties 职务列表
// GET /api/v1/duties
func (h *CatalogHandler) ListDuties(c *gin.Context) {
	duties, err := h.catalogSvc.ListDuties(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, duties)
}

// UpdateDuty 更新职务
// PUT /api/v1/duties/:id
func (h *CatalogHandler) UpdateDuty(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	duty, err := h.catalogSvc.UpdateDuty(c.Request.Context(), operatorID, c.Param("id"), req)
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.OK(c, duty)
}

// DeleteDuty 删除职务（软删除）
// DELETE /api/v1/duties/:id
func (h *CatalogHandler) DeleteDuty(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.catalogSvc.DeleteDuty(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		h.handleCatalogError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CatalogHandler) handleCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskTypeNotFound):
		response.NotFound(c, 24001, "任务类型不存在")
	case errors.Is(err, service.ErrDutyNotFound):
		response.NotFound(c, 24002, "职务不存在")
	default:
		response.InternalError(c)
	}
}

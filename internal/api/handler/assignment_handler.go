package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/service"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/response"
)

// AssignmentHandler 排班任务与实际工时模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// CreateAssignment 在工作日下创建排班任务
// POST /api/v1/workdays/:id/assignments
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignment, err := h.assignmentSvc.Create(c.Request.Context(), operatorID, c.Param("id"), req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, assignment)
}

// GetAssignment 排班任务详情
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	assignment, err := h.assignmentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, assignment)
}

// ListAssignments 工作日的排班任务列表
// GET /api/v1/workdays/:id/assignments
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.assignmentSvc.ListByWorkday(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, assignments)
}

// UpdateAssignment 更新排班任务
// PUT /api/v1/assignments/:id
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignment, err := h.assignmentSvc.Update(c.Request.Context(), operatorID, c.Param("id"), req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, assignment)
}

// DeleteAssignment 删除排班任务（软删除）
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.assignmentSvc.Delete(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 实际工时 ──

// SubmitTimeEntry 提交实际工时（worker 仅能提交本人记录，Service 层鉴权）
// POST /api/v1/assignments/:id/time-entries
func (h *AssignmentHandler) SubmitTimeEntry(c *gin.Context) {
	operator, ok := MustGetOperator(c)
	if !ok {
		return
	}

	var req dto.SubmitTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	entry, err := h.assignmentSvc.SubmitTimeEntry(c.Request.Context(), operator, c.Param("id"), req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, entry)
}

// ListTimeEntries 排班任务的实际工时列表
// GET /api/v1/assignments/:id/time-entries
func (h *AssignmentHandler) ListTimeEntries(c *gin.Context) {
	entries, err := h.assignmentSvc.ListTimeEntries(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, entries)
}

// DeleteTimeEntry 删除实际工时记录
// DELETE /api/v1/time-entries/:id
func (h *AssignmentHandler) DeleteTimeEntry(c *gin.Context) {
	operator, ok := MustGetOperator(c)
	if !ok {
		return
	}

	if err := h.assignmentSvc.DeleteTimeEntry(c.Request.Context(), operator, c.Param("id")); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 25001, "排班任务不存在")
	case errors.Is(err, service.ErrAssignmentWorkday):
		response.BadRequest(c, 25002, "所属工作日不存在")
	case errors.Is(err, service.ErrAssignmentTaskType):
		response.BadRequest(c, 25003, "指定的任务类型不存在")
	case errors.Is(err, service.ErrTimeEntryNotFound):
		response.NotFound(c, 25004, "工时记录不存在")
	case errors.Is(err, service.ErrTimeEntryDuplicate):
		response.BadRequest(c, 25005, "该用户在此排班任务上已有工时记录")
	case errors.Is(err, service.ErrTimeEntryNotOwn):
		response.Forbidden(c, 25006, "只能提交本人的工时记录")
	case errors.Is(err, service.ErrTimeEntryUserAbsent):
		response.BadRequest(c, 25007, "工时归属用户不存在")
	default:
		response.InternalError(c)
	}
}

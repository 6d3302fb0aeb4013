package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/service"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/response"
)

// ReportHandler 工时报表模块 HTTP 处理器
//
// 五种报表共享同一套查询参数（dto.ReportQuery），
// 必填范围参数缺失返回 400，范围实体不存在返回 404，
// 可选范围实体不存在由 Service 层返回空报表（200）
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// ClientReport 按客户报表
// GET /api/v1/reports/cliente?client_id=xxx&start_date=...&end_date=...
func (h *ReportHandler) ClientReport(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, err := h.reportSvc.ClientReport(c.Request.Context(), q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, report)
}

// EventReport 按活动报表
// GET /api/v1/reports/evento?event_id=xxx
func (h *ReportHandler) EventReport(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, err := h.reportSvc.EventReport(c.Request.Context(), q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, report)
}

// DutyReport 按职务报表
// GET /api/v1/reports/mansione?duty_id=xxx
func (h *ReportHandler) DutyReport(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, err := h.reportSvc.DutyReport(c.Request.Context(), q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, report)
}

// CompanyReport 按劳务公司报表
// GET /api/v1/reports/azienda?company_id=xxx（company_id 可选）
func (h *ReportHandler) CompanyReport(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, err := h.reportSvc.CompanyReport(c.Request.Context(), q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, report)
}

// EmployeeReport 按员工报表
// GET /api/v1/reports/dipendente?user_id=xxx（user_id 可选）
func (h *ReportHandler) EmployeeReport(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	report, err := h.reportSvc.EmployeeReport(c.Request.Context(), q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, report)
}

func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportClientIDRequired):
		response.BadRequest(c, 26001, "client_id 不能为空")
	case errors.Is(err, service.ErrReportEventIDRequired):
		response.BadRequest(c, 26002, "event_id 不能为空")
	case errors.Is(err, service.ErrReportDutyIDRequired):
		response.BadRequest(c, 26003, "duty_id 不能为空")
	case errors.Is(err, service.ErrReportDateRangeInvalid):
		response.BadRequest(c, 26004, "日期区间不合法")
	case errors.Is(err, service.ErrReportRangeTooWide):
		response.BadRequest(c, 26005, "日期区间超出允许范围")
	case errors.Is(err, service.ErrReportClientNotFound):
		response.NotFound(c, 26006, "客户不存在")
	case errors.Is(err, service.ErrReportEventNotFound):
		response.NotFound(c, 26007, "活动不存在")
	case errors.Is(err, service.ErrReportDutyNotFound):
		response.NotFound(c, 26008, "职务不存在")
	default:
		response.InternalError(c)
	}
}

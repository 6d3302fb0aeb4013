package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/service"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 报表导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
	reports   *ReportHandler
}

// NewExportHandler 创建 ExportHandler
// 报表层错误复用 ReportHandler 的映射，导出与查询保持同一套响应语义
func NewExportHandler(exportSvc service.ExportService, reports *ReportHandler) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, reports: reports}
}

// ExportReport 导出指定类型的报表为 Excel
// GET /api/v1/export/reports/:type（type = cliente|evento|mansione|azienda|dipendente）
func (h *ExportHandler) ExportReport(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportReport(c.Request.Context(), c.Param("type"), q)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportUnknownType):
		response.BadRequest(c, 27001, "未知的报表类型")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		h.reports.handleReportError(c, err)
	}
}

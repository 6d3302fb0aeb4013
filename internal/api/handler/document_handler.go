package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/service"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/response"
)

// DocumentHandler 文档模板、文档与签名流 HTTP 处理器
type DocumentHandler struct {
	documentSvc service.DocumentService
}

// NewDocumentHandler 创建 DocumentHandler
func NewDocumentHandler(documentSvc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentSvc: documentSvc}
}

// ── 模板 ──

// CreateTemplate 创建文档模板
// POST /api/v1/document-templates
func (h *DocumentHandler) CreateTemplate(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	template, err := h.documentSvc.CreateTemplate(c.Request.Context(), operatorID, req)
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}

	response.Created(c, template)
}

// GetTemplate 模板详情
// GET /api/v1/document-templates/:id
func (h *DocumentHandler) GetTemplate(c *gin.Context) {
	template, err := h.documentSvc.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}

	response.OK(c, template)
}

// ListTemplates 模板列表
// GET /api/v1/document-templates
func (h *DocumentHandler) ListTemplates(c *gin.Context) {
	templates, err := h.documentSvc.ListTemplates(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, templates)
}

// UpdateTemplate 更新模板
// PUT /api/v1/document-templates/:id
func (h *DocumentHandler) UpdateTemplate(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	template, err := h.documentSvc.UpdateTemplate(c.Request.Context(), operatorID, c.Param("id"), req)
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}

	response.OK(c, template)
}

// DeleteTemplate 删除模板（软删除）
// DELETE /api/v1/document-templates/:id
func (h *DocumentHandler) DeleteTemplate(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.documentSvc.DeleteTemplate(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		h.handleDocumentError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 文档 ──

// CreateDocument 从模板创建文档实例
// POST /api/v1/documents
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	document, err := h.documentSvc.CreateDocument(c.Request.Context(), operatorID, req)
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}

	response.Created(c, document)
}

// GetDocument 文档详情（含签名列表）
// GET /api/v1/documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	document, err := h.documentSvc.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}

	response.OK(c, document)
}

// ListDocuments 文档列表
// GET /api/v1/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	documents, total, err := h.documentSvc.ListDocuments(c.Request.Context(), page.GetPage(), page.GetPageSize())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, documents, total, page.GetPage(), page.GetPageSize())
}

// SubmitSignature 提交签名
// POST /api/v1/documents/:id/signatures
// 认证用户代入 user_id；匿名签署（公开签署链接）时 signer_user_id 留空
func (h *DocumentHandler) SubmitSignature(c *gin.Context) {
	var req dto.SubmitSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	signerUserID := c.GetString("user_id")
	document, err := h.documentSvc.SubmitSignature(c.Request.Context(), c.Param("id"), signerUserID, c.ClientIP(), req)
	if err != nil {
		h.handleDocumentError(c, err)
		return
	}

	response.Created(c, document)
}

func (h *DocumentHandler) handleDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound):
		response.NotFound(c, 29001, "文档模板不存在")
	case errors.Is(err, service.ErrDocumentNotFound):
		response.NotFound(c, 29002, "文档不存在")
	case errors.Is(err, service.ErrDocumentAlreadyDone):
		response.BadRequest(c, 29003, "文档已完成签署")
	case errors.Is(err, service.ErrSignatureNameMissing):
		response.BadRequest(c, 29004, "签署人姓名不能为空")
	default:
		response.InternalError(c)
	}
}

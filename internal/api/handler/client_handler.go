package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/service"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/response"
)

// ClientHandler 客户模块 HTTP 处理器
type ClientHandler struct {
	clientSvc service.ClientService
}

// NewClientHandler 创建 ClientHandler
func NewClientHandler(clientSvc service.ClientService) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc}
}

// CreateClient 创建客户
// POST /api/v1/clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	client, err := h.clientSvc.Create(c.Request.Context(), operatorID, req)
	if err != nil {
		h.handleClientError(c, err)
		return
	}

	response.Created(c, client)
}

// GetClient 客户详情
// GET /api/v1/clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clientSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleClientError(c, err)
		return
	}

	response.OK(c, client)
}

// ListClients 客户列表
// GET /api/v1/clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	clients, total, err := h.clientSvc.List(c.Request.Context(), page.GetPage(), page.GetPageSize())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, clients, total, page.GetPage(), page.GetPageSize())
}

// UpdateClient 更新客户
// PUT /api/v1/clients/:id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	client, err := h.clientSvc.Update(c.Request.Context(), operatorID, c.Param("id"), req)
	if err != nil {
		h.handleClientError(c, err)
		return
	}

	response.OK(c, client)
}

// DeleteClient 删除客户（软删除）
// DELETE /api/v1/clients/:id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.clientSvc.Delete(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		h.handleClientError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ClientHandler) handleClientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		response.NotFound(c, 21001, "客户不存在")
	case errors.Is(err, service.ErrClientCodeTaken):
		response.BadRequest(c, 21002, "客户编码已被占用")
	default:
		response.InternalError(c)
	}
}

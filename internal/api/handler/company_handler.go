package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/service"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/response"
)

// CompanyHandler 劳务公司与工作地点模块 HTTP 处理器
type CompanyHandler struct {
	companySvc service.CompanyService
}

// NewCompanyHandler 创建 CompanyHandler
func NewCompanyHandler(companySvc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

// ── 劳务公司 ──

// CreateCompany 创建劳务公司
// POST /api/v1/companies
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	company, err := h.companySvc.CreateCompany(c.Request.Context(), operatorID, req)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.Created(c, company)
}

// GetCompany 劳务公司详情
// GET /api/v1/companies/:id
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companySvc.GetCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, company)
}

// ListCompanies 劳务公司列表
// GET /api/v1/companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companySvc.ListCompanies(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, companies)
}

// UpdateCompany 更新劳务公司
// PUT /api/v1/companies/:id
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	company, err := h.companySvc.UpdateCompany(c.Request.Context(), operatorID, c.Param("id"), req)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, company)
}

// DeleteCompany 删除劳务公司（软删除）
// DELETE /api/v1/companies/:id
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.companySvc.DeleteCompany(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 工作地点 ──

// CreateLocation 创建工作地点
// POST /api/v1/locations
func (h *CompanyHandler) CreateLocation(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	location, err := h.companySvc.CreateLocation(c.Request.Context(), operatorID, req)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.Created(c, location)
}

// GetLocation 工作地点详情
// GET /api/v1/locations/:id
func (h *CompanyHandler) GetLocation(c *gin.Context) {
	location, err := h.companySvc.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, location)
}

// ListLocations 工作地点列表
// GET /api/v1/locations
func (h *CompanyHandler) ListLocations(c *gin.Context) {
	locations, err := h.companySvc.ListLocations(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, locations)
}

// UpdateLocation 更新工作地点
// PUT /api/v1/locations/:id
func (h *CompanyHandler) UpdateLocation(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	location, err := h.companySvc.UpdateLocation(c.Request.Context(), operatorID, c.Param("id"), req)
	if err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, location)
}

// DeleteLocation 删除工作地点（软删除）
// DELETE /api/v1/locations/:id
func (h *CompanyHandler) DeleteLocation(c *gin.Context) {
	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.companySvc.DeleteLocation(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		h.handleCompanyError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CompanyHandler) handleCompanyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		response.NotFound(c, 22001, "劳务公司不存在")
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c, 22002, "工作地点不存在")
	default:
		response.InternalError(c)
	}
}

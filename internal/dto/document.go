package dto

import "encoding/json"

// CreateTemplateRequest 创建文档模板请求，Layout 原样透传存储
type CreateTemplateRequest struct {
	Name   string          `json:"name" binding:"required,max=200"`
	Layout json.RawMessage `json:"layout" binding:"required"`
}

// UpdateTemplateRequest 更新文档模板请求
type UpdateTemplateRequest struct {
	Name   string          `json:"name" binding:"omitempty,max=200"`
	Layout json.RawMessage `json:"layout"`
}

// TemplateResponse 文档模板响应
type TemplateResponse struct {
	TemplateID string          `json:"template_id"`
	Name       string          `json:"name"`
	Layout     json.RawMessage `json:"layout"`
	CreatedAt  string          `json:"created_at"`
}

// CreateDocumentRequest 创建文档请求
type CreateDocumentRequest struct {
	TemplateID             string `json:"template_id" binding:"required,uuid"`
	Title                  string `json:"title" binding:"required,max=200"`
	RequiredSignatureCount int    `json:"required_signature_count" binding:"omitempty,gte=1"`
}

// DocumentResponse 文档响应
type DocumentResponse struct {
	DocumentID             string              `json:"document_id"`
	TemplateID             string              `json:"template_id"`
	Title                  string              `json:"title"`
	Status                 string              `json:"status"`
	RequiredSignatureCount int                 `json:"required_signature_count"`
	SignatureCount         int                 `json:"signature_count"`
	Signatures             []SignatureResponse `json:"signatures,omitempty"`
	CreatedAt              string              `json:"created_at"`
}

// SubmitSignatureRequest 提交签名请求
type SubmitSignatureRequest struct {
	SignerName string `json:"signer_name" binding:"required,max=200"`
}

// SignatureResponse 签名响应（不含 IP 哈希）
type SignatureResponse struct {
	SignatureID  string `json:"signature_id"`
	DocumentID   string `json:"document_id"`
	SignerName   string `json:"signer_name"`
	SignerUserID string `json:"signer_user_id,omitempty"`
	SignedAt     string `json:"signed_at"`
}

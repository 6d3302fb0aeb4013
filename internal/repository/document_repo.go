package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
)

// DocumentTemplateRepository 文档模板数据访问接口
type DocumentTemplateRepository interface {
	Create(ctx context.Context, template *model.DocumentTemplate) error
	GetByID(ctx context.Context, id string) (*model.DocumentTemplate, error)
	List(ctx context.Context) ([]model.DocumentTemplate, error)
	Update(ctx context.Context, template *model.DocumentTemplate) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// DocumentRepository 文档实例数据访问接口
type DocumentRepository interface {
	Create(ctx context.Context, document *model.Document) error
	GetByID(ctx context.Context, id string) (*model.Document, error)
	List(ctx context.Context, offset, limit int) ([]model.Document, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// SignatureRepository 签名记录数据访问接口（追加式）
type SignatureRepository interface {
	Create(ctx context.Context, signature *model.Signature) error
	ListByDocument(ctx context.Context, documentID string) ([]model.Signature, error)
	// CountDistinctSigners 统计文档的去重签署人数量
	// 状态转换以该持久化计数为准，不信任客户端提交的计数
	CountDistinctSigners(ctx context.Context, documentID string) (int64, error)
}

// ── DocumentTemplate Repository 实现 ──

type documentTemplateRepo struct {
	db *gorm.DB
}

// NewDocumentTemplateRepo 创建 DocumentTemplateRepository 实例
func NewDocumentTemplateRepo(db *gorm.DB) DocumentTemplateRepository {
	return &documentTemplateRepo{db: db}
}

func (r *documentTemplateRepo) Create(ctx context.Context, template *model.DocumentTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *documentTemplateRepo) GetByID(ctx context.Context, id string) (*model.DocumentTemplate, error) {
	var template model.DocumentTemplate
	err := r.db.WithContext(ctx).
		Where("template_id = ?", id).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *documentTemplateRepo) List(ctx context.Context) ([]model.DocumentTemplate, error) {
	var templates []model.DocumentTemplate
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&templates).Error
	return templates, err
}

func (r *documentTemplateRepo) Update(ctx context.Context, template *model.DocumentTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *documentTemplateRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.DocumentTemplate{}).
		Where("template_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// ── Document Repository 实现 ──

type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepo 创建 DocumentRepository 实例
func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, document *model.Document) error {
	return r.db.WithContext(ctx).Create(document).Error
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	var document model.Document
	err := r.db.WithContext(ctx).
		Preload("Template").
		Where("document_id = ?", id).
		First(&document).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *documentRepo) List(ctx context.Context, offset, limit int) ([]model.Document, int64, error) {
	var documents []model.Document
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Document{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Template").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&documents).Error; err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

func (r *documentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("document_id = ?", id).
		Update("status", status).Error
}

// ── Signature Repository 实现 ──

type signatureRepo struct {
	db *gorm.DB
}

// NewSignatureRepo 创建 SignatureRepository 实例
func NewSignatureRepo(db *gorm.DB) SignatureRepository {
	return &signatureRepo{db: db}
}

func (r *signatureRepo) Create(ctx context.Context, signature *model.Signature) error {
	return r.db.WithContext(ctx).Create(signature).Error
}

func (r *signatureRepo) ListByDocument(ctx context.Context, documentID string) ([]model.Signature, error) {
	var signatures []model.Signature
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("signed_at ASC").
		Find(&signatures).Error
	return signatures, err
}

func (r *signatureRepo) CountDistinctSigners(ctx context.Context, documentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Signature{}).
		Where("document_id = ?", documentID).
		Distinct("signer_name").
		Count(&count).Error
	return count, err
}

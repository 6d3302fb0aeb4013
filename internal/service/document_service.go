package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
)

// 文档模块错误
var (
	ErrTemplateNotFound     = errors.New("文档模板不存在")
	ErrDocumentNotFound     = errors.New("文档不存在")
	ErrDocumentAlreadyDone  = errors.New("文档已完成签署")
	ErrSignatureNameMissing = errors.New("签署人姓名不能为空")
)

// DocumentService 文档模板、文档实例与签名流
type DocumentService interface {
	CreateTemplate(ctx context.Context, operatorID string, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	GetTemplate(ctx context.Context, id string) (*dto.TemplateResponse, error)
	ListTemplates(ctx context.Context) ([]dto.TemplateResponse, error)
	UpdateTemplate(ctx context.Context, operatorID, id string, req dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	DeleteTemplate(ctx context.Context, operatorID, id string) error

	CreateDocument(ctx context.Context, operatorID string, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error)
	ListDocuments(ctx context.Context, page, pageSize int) ([]dto.DocumentResponse, int64, error)
	SubmitSignature(ctx context.Context, documentID, signerUserID, clientIP string, req dto.SubmitSignatureRequest) (*dto.DocumentResponse, error)
}

type documentService struct {
	repo       *repository.Repository
	logger     *zap.Logger
	ipHashSalt string
}

// NewDocumentService 创建文档服务实例
// ipHashSalt 统一经配置注入，不读环境变量
func NewDocumentService(repo *repository.Repository, logger *zap.Logger, ipHashSalt string) DocumentService {
	return &documentService{repo: repo, logger: logger, ipHashSalt: ipHashSalt}
}

// ── 模板 ──

func (s *documentService) CreateTemplate(ctx context.Context, operatorID string, req dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	template := &model.DocumentTemplate{Name: req.Name, Layout: string(req.Layout)}
	template.CreatedBy = model.Auditor(operatorID)
	if err := s.repo.DocumentTemplate.Create(ctx, template); err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

func (s *documentService) GetTemplate(ctx context.Context, id string) (*dto.TemplateResponse, error) {
	template, err := s.repo.DocumentTemplate.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return toTemplateResponse(template), nil
}

func (s *documentService) ListTemplates(ctx context.Context) ([]dto.TemplateResponse, error) {
	templates, err := s.repo.DocumentTemplate.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TemplateResponse, 0, len(templates))
	for i := range templates {
		out = append(out, *toTemplateResponse(&templates[i]))
	}
	return out, nil
}

func (s *documentService) UpdateTemplate(ctx context.Context, operatorID, id string, req dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	template, err := s.repo.DocumentTemplate.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if req.Name != "" {
		template.Name = req.Name
	}
	if len(req.Layout) > 0 {
		template.Layout = string(req.Layout)
	}
	template.UpdatedBy = model.Auditor(operatorID)
	if err := s.repo.DocumentTemplate.Update(ctx, template); err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

func (s *documentService) DeleteTemplate(ctx context.Context, operatorID, id string) error {
	if _, err := s.repo.DocumentTemplate.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrTemplateNotFound
		}
		return err
	}
	return s.repo.DocumentTemplate.Delete(ctx, id, operatorID)
}

// ── 文档 ──

func (s *documentService) CreateDocument(ctx context.Context, operatorID string, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if _, err := s.repo.DocumentTemplate.GetByID(ctx, req.TemplateID); err != nil {
		if isNotFound(err) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	document := &model.Document{
		TemplateID:             req.TemplateID,
		Title:                  req.Title,
		Status:                 model.DocumentStatusDraft,
		RequiredSignatureCount: req.RequiredSignatureCount,
	}
	if document.RequiredSignatureCount < 1 {
		document.RequiredSignatureCount = 1
	}
	document.CreatedBy = model.Auditor(operatorID)
	if err := s.repo.Document.Create(ctx, document); err != nil {
		return nil, err
	}
	return s.toDocumentResponse(ctx, document)
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	document, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return s.toDocumentResponse(ctx, document)
}

func (s *documentService) ListDocuments(ctx context.Context, page, pageSize int) ([]dto.DocumentResponse, int64, error) {
	documents, total, err := s.repo.Document.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.DocumentResponse, 0, len(documents))
	for i := range documents {
		resp, err := s.toDocumentResponse(ctx, &documents[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *resp)
	}
	return out, total, nil
}

// SubmitSignature 提交签名并在达到要求签署数时把文档置为 SIGNED
//
// 状态转换从持久化记录重新统计去重签署人数量，不信任客户端计数，
// 因此重复提交是幂等的：同名签署人不会把文档推进两次。
// 签署 IP 只保存加盐 SHA-256 摘要，原始地址不落库
func (s *documentService) SubmitSignature(ctx context.Context, documentID, signerUserID, clientIP string, req dto.SubmitSignatureRequest) (*dto.DocumentResponse, error) {
	if req.SignerName == "" {
		return nil, ErrSignatureNameMissing
	}
	document, err := s.repo.Document.GetByID(ctx, documentID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if document.Status == model.DocumentStatusSigned {
		return nil, ErrDocumentAlreadyDone
	}

	signature := &model.Signature{
		DocumentID: documentID,
		SignerName: req.SignerName,
		IPHash:     s.hashIP(clientIP),
		SignedAt:   time.Now(),
	}
	if signerUserID != "" {
		signature.SignerUserID = &signerUserID
	}
	if err := s.repo.Signature.Create(ctx, signature); err != nil {
		return nil, err
	}

	count, err := s.repo.Signature.CountDistinctSigners(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if count >= int64(document.RequiredSignatureCount) {
		if err := s.repo.Document.UpdateStatus(ctx, documentID, model.DocumentStatusSigned); err != nil {
			return nil, err
		}
		document.Status = model.DocumentStatusSigned
		s.logger.Info("文档完成签署",
			zap.String("document_id", documentID),
			zap.Int64("signer_count", count))
	}
	return s.toDocumentResponse(ctx, document)
}

// hashIP 加盐 SHA-256，盐值来自配置
func (s *documentService) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(s.ipHashSalt + ip))
	return hex.EncodeToString(sum[:])
}

func toTemplateResponse(template *model.DocumentTemplate) *dto.TemplateResponse {
	return &dto.TemplateResponse{
		TemplateID: template.TemplateID,
		Name:       template.Name,
		Layout:     json.RawMessage(template.Layout),
		CreatedAt:  template.CreatedAt.Format(time.RFC3339),
	}
}

func (s *documentService) toDocumentResponse(ctx context.Context, document *model.Document) (*dto.DocumentResponse, error) {
	signatures, err := s.repo.Signature.ListByDocument(ctx, document.DocumentID)
	if err != nil {
		return nil, err
	}
	resp := &dto.DocumentResponse{
		DocumentID:             document.DocumentID,
		TemplateID:             document.TemplateID,
		Title:                  document.Title,
		Status:                 document.Status,
		RequiredSignatureCount: document.RequiredSignatureCount,
		SignatureCount:         len(signatures),
		CreatedAt:              document.CreatedAt.Format(time.RFC3339),
	}
	for i := range signatures {
		sig := &signatures[i]
		item := dto.SignatureResponse{
			SignatureID: sig.SignatureID,
			DocumentID:  sig.DocumentID,
			SignerName:  sig.SignerName,
			SignedAt:    sig.SignedAt.Format(time.RFC3339),
		}
		if sig.SignerUserID != nil {
			item.SignerUserID = *sig.SignerUserID
		}
		resp.Signatures = append(resp.Signatures, item)
	}
	return resp, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
)

func newTestDocumentService(repo *repository.Repository) DocumentService {
	return NewDocumentService(repo, zap.NewNop(), "test-salt")
}

func seedDocument(repo *repository.Repository, id string, required int) {
	repo.DocumentTemplate.Create(context.Background(), &model.DocumentTemplate{
		TemplateID: "tpl1",
		Name:       "Foglio presenze",
		Layout:     `{"fields":["data","firma"]}`,
	})
	repo.Document.Create(context.Background(), &model.Document{
		DocumentID:             id,
		TemplateID:             "tpl1",
		Title:                  "Foglio presenze luglio",
		Status:                 model.DocumentStatusDraft,
		RequiredSignatureCount: required,
	})
}

// 两个不同签署人各签一次后文档转为 SIGNED
func TestSubmitSignature_CompletesAtRequiredCount(t *testing.T) {
	repo := newMockRepository()
	seedDocument(repo, "doc1", 2)
	svc := newTestDocumentService(repo)
	ctx := context.Background()

	resp, err := svc.SubmitSignature(ctx, "doc1", "u1", "10.0.0.1", dto.SubmitSignatureRequest{SignerName: "Anna Bianchi"})
	if err != nil {
		t.Fatalf("第一次签名失败: %v", err)
	}
	if resp.Status != model.DocumentStatusDraft {
		t.Fatalf("签名未达标时状态期望 DRAFT，实际 %s", resp.Status)
	}

	resp, err = svc.SubmitSignature(ctx, "doc1", "u2", "10.0.0.2", dto.SubmitSignatureRequest{SignerName: "Luca Verdi"})
	if err != nil {
		t.Fatalf("第二次签名失败: %v", err)
	}
	if resp.Status != model.DocumentStatusSigned {
		t.Fatalf("签名达标后状态期望 SIGNED，实际 %s", resp.Status)
	}
	if resp.SignatureCount != 2 {
		t.Fatalf("签名数期望 2，实际 %d", resp.SignatureCount)
	}
}

// 同名签署人重复提交不推进状态：去重计数从持久化记录重算
func TestSubmitSignature_DuplicateSignerIdempotent(t *testing.T) {
	repo := newMockRepository()
	seedDocument(repo, "doc1", 2)
	svc := newTestDocumentService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		resp, err := svc.SubmitSignature(ctx, "doc1", "u1", "10.0.0.1", dto.SubmitSignatureRequest{SignerName: "Anna Bianchi"})
		if err != nil {
			t.Fatalf("第 %d 次签名失败: %v", i+1, err)
		}
		if resp.Status != model.DocumentStatusDraft {
			t.Fatalf("重复签署人不应完成文档，实际状态 %s", resp.Status)
		}
	}
}

// 已签署完成的文档拒绝追加签名
func TestSubmitSignature_AlreadySigned(t *testing.T) {
	repo := newMockRepository()
	seedDocument(repo, "doc1", 1)
	svc := newTestDocumentService(repo)
	ctx := context.Background()

	if _, err := svc.SubmitSignature(ctx, "doc1", "u1", "10.0.0.1", dto.SubmitSignatureRequest{SignerName: "Anna Bianchi"}); err != nil {
		t.Fatalf("签名失败: %v", err)
	}
	_, err := svc.SubmitSignature(ctx, "doc1", "u2", "10.0.0.2", dto.SubmitSignatureRequest{SignerName: "Luca Verdi"})
	if !errors.Is(err, ErrDocumentAlreadyDone) {
		t.Fatalf("期望 ErrDocumentAlreadyDone，实际 %v", err)
	}
}

// 原始 IP 不落库：存储的是加盐摘要
func TestSubmitSignature_IPNotStoredRaw(t *testing.T) {
	repo := newMockRepository()
	seedDocument(repo, "doc1", 2)
	svc := newTestDocumentService(repo)

	if _, err := svc.SubmitSignature(context.Background(), "doc1", "", "192.168.1.77", dto.SubmitSignatureRequest{SignerName: "Anna Bianchi"}); err != nil {
		t.Fatalf("签名失败: %v", err)
	}
	sigs, _ := repo.Signature.ListByDocument(context.Background(), "doc1")
	if len(sigs) != 1 {
		t.Fatalf("签名记录数期望 1，实际 %d", len(sigs))
	}
	if strings.Contains(sigs[0].IPHash, "192.168.1.77") {
		t.Fatalf("IP 哈希不应包含原始地址: %s", sigs[0].IPHash)
	}
	if len(sigs[0].IPHash) != 64 {
		t.Fatalf("SHA-256 摘要长度期望 64，实际 %d", len(sigs[0].IPHash))
	}
}

// 缺少签署人姓名与不存在的文档
func TestSubmitSignature_Errors(t *testing.T) {
	repo := newMockRepository()
	seedDocument(repo, "doc1", 1)
	svc := newTestDocumentService(repo)
	ctx := context.Background()

	if _, err := svc.SubmitSignature(ctx, "doc1", "", "1.2.3.4", dto.SubmitSignatureRequest{}); !errors.Is(err, ErrSignatureNameMissing) {
		t.Fatalf("期望 ErrSignatureNameMissing，实际 %v", err)
	}
	if _, err := svc.SubmitSignature(ctx, "missing", "", "1.2.3.4", dto.SubmitSignatureRequest{SignerName: "X"}); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("期望 ErrDocumentNotFound，实际 %v", err)
	}
}

// 创建文档时签名数下限为 1
func TestCreateDocument_RequiredCountFloor(t *testing.T) {
	repo := newMockRepository()
	seedDocument(repo, "doc0", 1)
	svc := newTestDocumentService(repo)

	resp, err := svc.CreateDocument(context.Background(), "admin", dto.CreateDocumentRequest{
		TemplateID: "tpl1",
		Title:      "Contratto evento",
	})
	if err != nil {
		t.Fatalf("创建文档失败: %v", err)
	}
	if resp.RequiredSignatureCount != 1 {
		t.Fatalf("要求签名数期望 1，实际 %d", resp.RequiredSignatureCount)
	}
	if resp.Status != model.DocumentStatusDraft {
		t.Fatalf("新建文档状态期望 DRAFT，实际 %s", resp.Status)
	}
}

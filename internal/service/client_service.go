package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
)

// 客户模块错误
var (
	ErrClientNotFound  = errors.New("客户不存在")
	ErrClientCodeTaken = errors.New("客户编码已存在")
)

// ClientService 客户管理
type ClientService interface {
	Create(ctx context.Context, operatorID string, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClientResponse, error)
	List(ctx context.Context, page, pageSize int) ([]dto.ClientResponse, int64, error)
	Update(ctx context.Context, operatorID, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	Delete(ctx context.Context, operatorID, id string) error
}

type clientService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClientService 创建客户服务实例
func NewClientService(repo *repository.Repository, logger *zap.Logger) ClientService {
	return &clientService{repo: repo, logger: logger}
}

func (s *clientService) Create(ctx context.Context, operatorID string, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if _, err := s.repo.Client.GetByCode(ctx, req.Code); err == nil {
		return nil, ErrClientCodeTaken
	} else if !isNotFound(err) {
		return nil, err
	}
	client := &model.Client{
		Code:         req.Code,
		Type:         req.Type,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Phone:        req.Phone,
	}
	client.CreatedBy = model.Auditor(operatorID)
	if err := s.repo.Client.Create(ctx, client); err != nil {
		return nil, err
	}
	s.logger.Info("创建客户", zap.String("client_id", client.ClientID), zap.String("code", client.Code))
	return toClientResponse(client), nil
}

func (s *clientService) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := s.repo.Client.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return toClientResponse(client), nil
}

func (s *clientService) List(ctx context.Context, page, pageSize int) ([]dto.ClientResponse, int64, error) {
	clients, total, err := s.repo.Client.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, *toClientResponse(&clients[i]))
	}
	return out, total, nil
}

func (s *clientService) Update(ctx context.Context, operatorID, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := s.repo.Client.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if req.Type != "" {
		client.Type = req.Type
	}
	if req.FirstName != "" {
		client.FirstName = req.FirstName
	}
	if req.LastName != "" {
		client.LastName = req.LastName
	}
	if req.BusinessName != "" {
		client.BusinessName = req.BusinessName
	}
	if req.Email != "" {
		client.Email = req.Email
	}
	if req.Phone != "" {
		client.Phone = req.Phone
	}
	client.UpdatedBy = model.Auditor(operatorID)
	if err := s.repo.Client.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

func (s *clientService) Delete(ctx context.Context, operatorID, id string) error {
	if _, err := s.repo.Client.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrClientNotFound
		}
		return err
	}
	return s.repo.Client.Delete(ctx, id, operatorID)
}

func toClientResponse(client *model.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ClientID:     client.ClientID,
		Code:         client.Code,
		Type:         client.Type,
		DisplayName:  client.DisplayName(),
		FirstName:    client.FirstName,
		LastName:     client.LastName,
		BusinessName: client.BusinessName,
		Email:        client.Email,
		Phone:        client.Phone,
		CreatedAt:    client.CreatedAt.Format(time.RFC3339),
	}
}

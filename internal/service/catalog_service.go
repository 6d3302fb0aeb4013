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

// 目录模块错误
var (
	ErrTaskTypeNotFound = errors.New("任务类型不存在")
	ErrDutyNotFound     = errors.New("职务不存在")
)

// CatalogService 任务类型与职务目录管理
type CatalogService interface {
	CreateTaskType(ctx context.Context, operatorID string, req dto.CreateTaskTypeRequest) (*dto.TaskTypeResponse, error)
	GetTaskType(ctx context.Context, id string) (*dto.TaskTypeResponse, error)
	ListTaskTypes(ctx context.Context) ([]dto.TaskTypeResponse, error)
	UpdateTaskType(ctx context.Context, operatorID, id string, req dto.UpdateTaskTypeRequest) (*dto.TaskTypeResponse, error)
	DeleteTaskType(ctx context.Context, operatorID, id string) error

	CreateDuty(ctx context.Context, operatorID string, req dto.CreateDutyRequest) (*dto.DutyResponse, error)
	GetDuty(ctx context.Context, id string) (*dto.DutyResponse, error)
	ListDuties(ctx context.Context) ([]dto.DutyResponse, error)
	UpdateDuty(ctx context.Context, operatorID, id string, req dto.UpdateDutyRequest) (*dto.DutyResponse, error)
	DeleteDuty(ctx context.Context, operatorID, id string) error
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService 创建目录服务实例
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

// ── 任务类型 ──

func (s *catalogService) CreateTaskType(ctx context.Context, operatorID string, req dto.CreateTaskTypeRequest) (*dto.TaskTypeResponse, error) {
	taskType := &model.TaskType{
		Name:            req.Name,
		Type:            req.Type,
		IsHourlyService: true,
		ShiftHours:      req.ShiftHours,
	}
	if req.IsHourlyService != nil {
		taskType.IsHourlyService = *req.IsHourlyService
	}
	taskType.CreatedBy = model.Auditor(operatorID)
	if err := s.repo.TaskType.Create(ctx, taskType); err != nil {
		return nil, err
	}
	return toTaskTypeResponse(taskType), nil
}

func (s *catalogService) GetTaskType(ctx context.Context, id string) (*dto.TaskTypeResponse, error) {
	taskType, err := s.repo.TaskType.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTaskTypeNotFound
		}
		return nil, err
	}
	return toTaskTypeResponse(taskType), nil
}

func (s *catalogService) ListTaskTypes(ctx context.Context) ([]dto.TaskTypeResponse, error) {
	taskTypes, err := s.repo.TaskType.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskTypeResponse, 0, len(taskTypes))
	for i := range taskTypes {
		out = append(out, *toTaskTypeResponse(&taskTypes[i]))
	}
	return out, nil
}

func (s *catalogService) UpdateTaskType(ctx context.Context, operatorID, id string, req dto.UpdateTaskTypeRequest) (*dto.TaskTypeResponse, error) {
	taskType, err := s.repo.TaskType.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTaskTypeNotFound
		}
		return nil, err
	}
	if req.Name != "" {
		taskType.Name = req.Name
	}
	if req.Type != "" {
		taskType.Type = req.Type
	}
	if req.IsHourlyService != nil {
		taskType.IsHourlyService = *req.IsHourlyService
	}
	if req.ShiftHours != nil {
		taskType.ShiftHours = req.ShiftHours
	}
	taskType.UpdatedBy = model.Auditor(operatorID)
	if err := s.repo.TaskType.Update(ctx, taskType); err != nil {
		return nil, err
	}
	return toTaskTypeResponse(taskType), nil
}

func (s *catalogService) DeleteTaskType(ctx context.Context, operatorID, id string) error {
	if _, err := s.repo.TaskType.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrTaskTypeNotFound
		}
		return err
	}
	return s.repo.TaskType.Delete(ctx, id, operatorID)
}

// ── 职务 ──

func (s *catalogService) CreateDuty(ctx context.Context, operatorID string, req dto.CreateDutyRequest) (*dto.DutyResponse, error) {
	duty := &model.Duty{Name: req.Name, Code: req.Code}
	duty.CreatedBy = model.Auditor(operatorID)
	if err := s.repo.Duty.Create(ctx, duty); err != nil {
		return nil, err
	}
	return toDutyResponse(duty), nil
}

func (s *catalogService) GetDuty(ctx context.Context, id string) (*dto.DutyResponse, error) {
	duty, err := s.repo.Duty.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDutyNotFound
		}
		return nil, err
	}
	return toDutyResponse(duty), nil
}

func (s *catalogService) ListDuties(ctx context.Context) ([]dto.DutyResponse, error) {
	duties, err := s.repo.Duty.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DutyResponse, 0, len(duties))
	for i := range duties {
		out = append(out, *toDutyResponse(&duties[i]))
	}
	return out, nil
}

func (s *catalogService) UpdateDuty(ctx context.Context, operatorID, id string, req dto.UpdateDutyRequest) (*dto.DutyResponse, error) {
	duty, err := s.repo.Duty.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDutyNotFound
		}
		return nil, err
	}
	if req.Name != "" {
		duty.Name = req.Name
	}
	if req.Code != "" {
		duty.Code = req.Code
	}
	duty.UpdatedBy = model.Auditor(operatorID)
	if err := s.repo.Duty.Update(ctx, duty); err != nil {
		return nil, err
	}
	return toDutyResponse(duty), nil
}

func (s *catalogService) DeleteDuty(ctx context.Context, operatorID, id string) error {
	if _, err := s.repo.Duty.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrDutyNotFound
		}
		return err
	}
	return s.repo.Duty.Delete(ctx, id, operatorID)
}

func toTaskTypeResponse(taskType *model.TaskType) *dto.TaskTypeResponse {
	return &dto.TaskTypeResponse{
		TaskTypeID:      taskType.TaskTypeID,
		Name:            taskType.Name,
		Type:            taskType.Type,
		IsHourlyService: taskType.IsHourlyService,
		ShiftHours:      taskType.ShiftHours,
		CreatedAt:       taskType.CreatedAt.Format(time.RFC3339),
	}
}

func toDutyResponse(duty *model.Duty) *dto.DutyResponse {
	return &dto.DutyResponse{
		DutyID:    duty.DutyID,
		Name:      duty.Name,
		Code:      duty.Code,
		CreatedAt: duty.CreatedAt.Format(time.RFC3339),
	}
}

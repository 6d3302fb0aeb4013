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

// 活动模块错误
var (
	ErrEventNotFound       = errors.New("活动不存在")
	ErrEventClientMissing  = errors.New("客户不存在")
	ErrWorkdayNotFound     = errors.New("工作日不存在")
	ErrWorkdayDateInvalid  = errors.New("工作日日期不合法")
	ErrWorkdayLocationGone = errors.New("工作地点不存在")
)

// EventService 活动与工作日管理
type EventService interface {
	Create(ctx context.Context, operatorID string, req dto.CreateEventRequest) (*dto.EventResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EventResponse, error)
	List(ctx context.Context, clientID string, page, pageSize int) ([]dto.EventResponse, int64, error)
	Update(ctx context.Context, operatorID, id string, req dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, operatorID, id string) error

	CreateWorkday(ctx context.Context, operatorID, eventID string, req dto.CreateWorkdayRequest) (*dto.WorkdayResponse, error)
	ListWorkdays(ctx context.Context, eventID string) ([]dto.WorkdayResponse, error)
	DeleteWorkday(ctx context.Context, operatorID, id string) error
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService 创建活动服务实例
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) Create(ctx context.Context, operatorID string, req dto.CreateEventRequest) (*dto.EventResponse, error) {
	if _, err := s.repo.Client.GetByID(ctx, req.ClientID); err != nil {
		if isNotFound(err) {
			return nil, ErrEventClientMissing
		}
		return nil, err
	}
	event := &model.Event{
		ClientID: req.ClientID,
		Title:    req.Title,
		Status:   req.Status,
	}
	if event.Status == "" {
		event.Status = "planned"
	}
	if req.StartDate != "" {
		d, err := time.Parse("2006-01-02", req.StartDate)
		if err == nil {
			event.StartDate = &d
		}
	}
	if req.EndDate != "" {
		d, err := time.Parse("2006-01-02", req.EndDate)
		if err == nil {
			event.EndDate = &d
		}
	}
	event.CreatedBy = model.Auditor(operatorID)
	if err := s.repo.Event.Create(ctx, event); err != nil {
		return nil, err
	}
	s.logger.Info("创建活动", zap.String("event_id", event.EventID), zap.String("title", event.Title))
	return s.toEventResponse(ctx, event), nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return s.toEventResponse(ctx, event), nil
}

func (s *eventService) List(ctx context.Context, clientID string, page, pageSize int) ([]dto.EventResponse, int64, error) {
	events, total, err := s.repo.Event.List(ctx, clientID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *s.toEventResponse(ctx, &events[i]))
	}
	return out, total, nil
}

func (s *eventService) Update(ctx context.Context, operatorID, id string, req dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Status != "" {
		event.Status = req.Status
	}
	if req.StartDate != "" {
		if d, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			event.StartDate = &d
		}
	}
	if req.EndDate != "" {
		if d, err := time.Parse("2006-01-02", req.EndDate); err == nil {
			event.EndDate = &d
		}
	}
	event.UpdatedBy = model.Auditor(operatorID)
	if err := s.repo.Event.Update(ctx, event); err != nil {
		return nil, err
	}
	return s.toEventResponse(ctx, event), nil
}

func (s *eventService) Delete(ctx context.Context, operatorID, id string) error {
	if _, err := s.repo.Event.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrEventNotFound
		}
		return err
	}
	return s.repo.Event.Delete(ctx, id, operatorID)
}

// ── 工作日 ──

func (s *eventService) CreateWorkday(ctx context.Context, operatorID, eventID string, req dto.CreateWorkdayRequest) (*dto.WorkdayResponse, error) {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrWorkdayDateInvalid
	}
	workday := &model.Workday{EventID: eventID, Date: date}
	if req.LocationID != "" {
		if _, err := s.repo.Location.GetByID(ctx, req.LocationID); err != nil {
			if isNotFound(err) {
				return nil, ErrWorkdayLocationGone
			}
			return nil, err
		}
		workday.LocationID = &req.LocationID
	}
	workday.CreatedBy = model.Auditor(operatorID)
	if err := s.repo.Workday.Create(ctx, workday); err != nil {
		return nil, err
	}
	return toWorkdayResponse(workday), nil
}

func (s *eventService) ListWorkdays(ctx context.Context, eventID string) ([]dto.WorkdayResponse, error) {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	workdays, err := s.repo.Workday.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkdayResponse, 0, len(workdays))
	for i := range workdays {
		out = append(out, *toWorkdayResponse(&workdays[i]))
	}
	return out, nil
}

func (s *eventService) DeleteWorkday(ctx context.Context, operatorID, id string) error {
	if _, err := s.repo.Workday.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrWorkdayNotFound
		}
		return err
	}
	return s.repo.Workday.Delete(ctx, id, operatorID)
}

func (s *eventService) toEventResponse(ctx context.Context, event *model.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		EventID:   event.EventID,
		ClientID:  event.ClientID,
		Title:     event.Title,
		Status:    event.Status,
		CreatedAt: event.CreatedAt.Format(time.RFC3339),
	}
	if event.StartDate != nil {
		resp.StartDate = event.StartDate.Format("2006-01-02")
	}
	if event.EndDate != nil {
		resp.EndDate = event.EndDate.Format("2006-01-02")
	}
	if event.Client != nil {
		resp.ClientName = event.Client.DisplayName()
	} else if client, err := s.repo.Client.GetByID(ctx, event.ClientID); err == nil {
		resp.ClientName = client.DisplayName()
	}
	return resp
}

func toWorkdayResponse(workday *model.Workday) *dto.WorkdayResponse {
	resp := &dto.WorkdayResponse{
		WorkdayID: workday.WorkdayID,
		EventID:   workday.EventID,
		Date:      workday.Date.Format("2006-01-02"),
		CreatedAt: workday.CreatedAt.Format(time.RFC3339),
	}
	if workday.LocationID != nil {
		resp.LocationID = *workday.LocationID
	}
	if workday.Location != nil {
		resp.LocationName = workday.Location.Name
	}
	return resp
}

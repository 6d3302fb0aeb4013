package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
	pkgerrors "github.com/leonardodellacroce/TeatriApuani-sub001/pkg/errors"
)

// 排班模块错误
var (
	ErrAssignmentNotFound  = errors.New("排班任务不存在")
	ErrTimeEntryNotFound   = errors.New("工时记录不存在")
	ErrTimeEntryDuplicate  = errors.New("该用户在此排班任务上已有工时记录")
	ErrTimeEntryNotOwn     = errors.New("只能提交本人的工时记录")
	ErrAssignmentTaskType  = errors.New("任务类型不存在")
	ErrAssignmentWorkday   = errors.New("工作日不存在")
	ErrTimeEntryUserAbsent = errors.New("用户不存在")
)

// AssignmentService 排班任务与实际工时管理
// worker 角色只能提交/修改本人的工时记录，admin/manager 可代录任何人
type AssignmentService interface {
	Create(ctx context.Context, operatorID, workdayID string, req dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error)
	ListByWorkday(ctx context.Context, workdayID string) ([]dto.AssignmentResponse, error)
	Update(ctx context.Context, operatorID, id string, req dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error)
	Delete(ctx context.Context, operatorID, id string) error

	SubmitTimeEntry(ctx context.Context, operator *Operator, assignmentID string, req dto.SubmitTimeEntryRequest) (*dto.TimeEntryResponse, error)
	ListTimeEntries(ctx context.Context, assignmentID string) ([]dto.TimeEntryResponse, error)
	DeleteTimeEntry(ctx context.Context, operator *Operator, id string) error
}

// Operator 当前操作者身份（从 JWT 声明提取）
type Operator struct {
	UserID string
	Role   string
}

// CanActFor 是否允许代表 userID 操作工时记录
func (o *Operator) CanActFor(userID string) bool {
	if o.Role == model.RoleAdmin || o.Role == model.RoleManager {
		return true
	}
	return o.UserID == userID
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建排班服务实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

func (s *assignmentService) Create(ctx context.Context, operatorID, workdayID string, req dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if _, err := s.repo.Workday.GetByID(ctx, workdayID); err != nil {
		if isNotFound(err) {
			return nil, ErrAssignmentWorkday
		}
		return nil, err
	}
	if _, err := s.repo.TaskType.GetByID(ctx, req.TaskTypeID); err != nil {
		if isNotFound(err) {
			return nil, ErrAssignmentTaskType
		}
		return nil, err
	}

	assignment := &model.Assignment{
		WorkdayID:         workdayID,
		TaskTypeID:        req.TaskTypeID,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		HasScheduledBreak: req.HasScheduledBreak,
		Notes:             req.Notes,
	}
	if req.BreakStart != "" {
		assignment.BreakStart = &req.BreakStart
	}
	if req.BreakEnd != "" {
		assignment.BreakEnd = &req.BreakEnd
	}
	assignment.Breaks = marshalList(req.Breaks)
	assignment.AssignedUsers = marshalList(req.AssignedUsers)
	assignment.PersonnelRequests = marshalList(req.PersonnelRequests)
	assignment.CreatedBy = model.Auditor(operatorID)
	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		return nil, err
	}
	s.logger.Info("创建排班任务",
		zap.String("assignment_id", assignment.AssignmentID),
		zap.String("workday_id", workdayID))
	return s.toAssignmentResponse(ctx, assignment), nil
}

func (s *assignmentService) GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return s.toAssignmentResponse(ctx, assignment), nil
}

func (s *assignmentService) ListByWorkday(ctx context.Context, workdayID string) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.Assignment.ListByWorkday(ctx, workdayID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, *s.toAssignmentResponse(ctx, &assignments[i]))
	}
	return out, nil
}

func (s *assignmentService) Update(ctx context.Context, operatorID, id string, req dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	if req.TaskTypeID != "" {
		if _, err := s.repo.TaskType.GetByID(ctx, req.TaskTypeID); err != nil {
			if isNotFound(err) {
				return nil, ErrAssignmentTaskType
			}
			return nil, err
		}
		assignment.TaskTypeID = req.TaskTypeID
		assignment.TaskType = nil
	}
	if req.StartTime != nil {
		assignment.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		assignment.EndTime = *req.EndTime
	}
	if req.HasScheduledBreak != nil {
		assignment.HasScheduledBreak = *req.HasScheduledBreak
	}
	if req.BreakStart != nil {
		assignment.BreakStart = req.BreakStart
	}
	if req.BreakEnd != nil {
		assignment.BreakEnd = req.BreakEnd
	}
	if req.Breaks != nil {
		assignment.Breaks = marshalList(*req.Breaks)
	}
	if req.AssignedUsers != nil {
		assignment.AssignedUsers = marshalList(*req.AssignedUsers)
	}
	if req.PersonnelRequests != nil {
		assignment.PersonnelRequests = marshalList(*req.PersonnelRequests)
	}
	if req.Notes != nil {
		assignment.Notes = *req.Notes
	}
	assignment.UpdatedBy = model.Auditor(operatorID)
	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		return nil, err
	}
	return s.toAssignmentResponse(ctx, assignment), nil
}

func (s *assignmentService) Delete(ctx context.Context, operatorID, id string) error {
	if _, err := s.repo.Assignment.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrAssignmentNotFound
		}
		return err
	}
	return s.repo.Assignment.Delete(ctx, id, operatorID)
}

// ── 实际工时记录 ──

// SubmitTimeEntry 提交实际工时，每用户每排班任务至多一条
// hours_worked 为调用方已扣除休息后的净值，服务端不重算
func (s *assignmentService) SubmitTimeEntry(ctx context.Context, operator *Operator, assignmentID string, req dto.SubmitTimeEntryRequest) (*dto.TimeEntryResponse, error) {
	if !operator.CanActFor(req.UserID) {
		return nil, ErrTimeEntryNotOwn
	}
	if _, err := s.repo.Assignment.GetByID(ctx, assignmentID); err != nil {
		if isNotFound(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if isNotFound(err) {
			return nil, ErrTimeEntryUserAbsent
		}
		return nil, err
	}
	if _, err := s.repo.TimeEntry.GetByAssignmentAndUser(ctx, assignmentID, req.UserID); err == nil {
		return nil, ErrTimeEntryDuplicate
	} else if !isNotFound(err) {
		return nil, err
	}

	entry := &model.TimeEntry{
		AssignmentID: assignmentID,
		UserID:       req.UserID,
		HoursWorked:  req.HoursWorked,
		HasBreak:     req.HasBreak,
		Notes:        req.Notes,
	}
	if req.StartTime != "" {
		entry.StartTime = &req.StartTime
	}
	if req.EndTime != "" {
		entry.EndTime = &req.EndTime
	}
	if req.BreakStart != "" {
		entry.BreakStart = &req.BreakStart
	}
	if req.BreakEnd != "" {
		entry.BreakEnd = &req.BreakEnd
	}
	entry.CreatedBy = model.Auditor(operator.UserID)
	if err := s.repo.TimeEntry.Create(ctx, entry); err != nil {
		// 并发提交时靠唯一约束兜底
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrTimeEntryDuplicate
		}
		return nil, err
	}
	return toTimeEntryResponse(entry), nil
}

func (s *assignmentService) ListTimeEntries(ctx context.Context, assignmentID string) ([]dto.TimeEntryResponse, error) {
	entries, err := s.repo.TimeEntry.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TimeEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, *toTimeEntryResponse(&entries[i]))
	}
	return out, nil
}

func (s *assignmentService) DeleteTimeEntry(ctx context.Context, operator *Operator, id string) error {
	entry, err := s.repo.TimeEntry.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrTimeEntryNotFound
		}
		return err
	}
	if !operator.CanActFor(entry.UserID) {
		return ErrTimeEntryNotOwn
	}
	return s.repo.TimeEntry.Delete(ctx, id, operator.UserID)
}

// marshalList 序列化嵌入 JSON 列表，空列表存空串
func marshalList[T any](items []T) string {
	if len(items) == 0 {
		return ""
	}
	b, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(b)
}

func (s *assignmentService) toAssignmentResponse(ctx context.Context, assignment *model.Assignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		AssignmentID:      assignment.AssignmentID,
		WorkdayID:         assignment.WorkdayID,
		TaskTypeID:        assignment.TaskTypeID,
		StartTime:         assignment.StartTime,
		EndTime:           assignment.EndTime,
		HasScheduledBreak: assignment.HasScheduledBreak,
		Notes:             assignment.Notes,
		AssignedUsers:     []dto.AssignedUserItem{},
		PersonnelRequests: []dto.PersonnelRequestItem{},
		CreatedAt:         assignment.CreatedAt.Format(time.RFC3339),
	}
	if assignment.BreakStart != nil {
		resp.BreakStart = *assignment.BreakStart
	}
	if assignment.BreakEnd != nil {
		resp.BreakEnd = *assignment.BreakEnd
	}
	if assignment.TaskType != nil {
		resp.TaskTypeName = assignment.TaskType.Name
	} else if tt, err := s.repo.TaskType.GetByID(ctx, assignment.TaskTypeID); err == nil {
		resp.TaskTypeName = tt.Name
	}
	// 嵌入 JSON 损坏时响应降级为空列表，与报表层口径一致
	if users, st := parseAssignedUsers(assignment.AssignedUsers); st == parseOK {
		resp.AssignedUsers = users
	}
	if reqs, st := parsePersonnelRequests(assignment.PersonnelRequests); st == parseOK {
		resp.PersonnelRequests = reqs
	}
	if intervals, st := parseBreakList(assignment.Breaks); st == parseOK {
		for _, iv := range intervals {
			resp.Breaks = append(resp.Breaks, dto.BreakIntervalItem{Start: iv.Start, End: iv.End})
		}
	}
	return resp
}

func toTimeEntryResponse(entry *model.TimeEntry) *dto.TimeEntryResponse {
	resp := &dto.TimeEntryResponse{
		TimeEntryID:  entry.TimeEntryID,
		AssignmentID: entry.AssignmentID,
		UserID:       entry.UserID,
		HoursWorked:  entry.HoursWorked,
		HasBreak:     entry.HasBreak,
		Notes:        entry.Notes,
		CreatedAt:    entry.CreatedAt.Format(time.RFC3339),
	}
	if entry.StartTime != nil {
		resp.StartTime = *entry.StartTime
	}
	if entry.EndTime != nil {
		resp.EndTime = *entry.EndTime
	}
	if entry.BreakStart != nil {
		resp.BreakStart = *entry.BreakStart
	}
	if entry.BreakEnd != nil {
		resp.BreakEnd = *entry.BreakEnd
	}
	if entry.User != nil {
		resp.UserName = entry.User.Name
	}
	return resp
}

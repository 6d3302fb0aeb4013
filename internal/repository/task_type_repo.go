package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
)

// TaskTypeRepository 任务类型数据访问接口
type TaskTypeRepository interface {
	Create(ctx context.Context, taskType *model.TaskType) error
	GetByID(ctx context.Context, id string) (*model.TaskType, error)
	List(ctx context.Context) ([]model.TaskType, error)
	Update(ctx context.Context, taskType *model.TaskType) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// DutyRepository 职务数据访问接口
type DutyRepository interface {
	Create(ctx context.Context, duty *model.Duty) error
	GetByID(ctx context.Context, id string) (*model.Duty, error)
	List(ctx context.Context) ([]model.Duty, error)
	Update(ctx context.Context, duty *model.Duty) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// ── TaskType Repository 实现 ──

type taskTypeRepo struct {
	db *gorm.DB
}

// NewTaskTypeRepo 创建 TaskTypeRepository 实例
func NewTaskTypeRepo(db *gorm.DB) TaskTypeRepository {
	return &taskTypeRepo{db: db}
}

func (r *taskTypeRepo) Create(ctx context.Context, taskType *model.TaskType) error {
	return r.db.WithContext(ctx).Create(taskType).Error
}

func (r *taskTypeRepo) GetByID(ctx context.Context, id string) (*model.TaskType, error) {
	var taskType model.TaskType
	err := r.db.WithContext(ctx).
		Where("task_type_id = ?", id).
		First(&taskType).Error
	if err != nil {
		return nil, err
	}
	return &taskType, nil
}

func (r *taskTypeRepo) List(ctx context.Context) ([]model.TaskType, error) {
	var taskTypes []model.TaskType
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&taskTypes).Error
	return taskTypes, err
}

func (r *taskTypeRepo) Update(ctx context.Context, taskType *model.TaskType) error {
	return r.db.WithContext(ctx).Save(taskType).Error
}

func (r *taskTypeRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.TaskType{}).
		Where("task_type_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// ── Duty Repository 实现 ──

type dutyRepo struct {
	db *gorm.DB
}

// NewDutyRepo 创建 DutyRepository 实例
func NewDutyRepo(db *gorm.DB) DutyRepository {
	return &dutyRepo{db: db}
}

func (r *dutyRepo) Create(ctx context.Context, duty *model.Duty) error {
	return r.db.WithContext(ctx).Create(duty).Error
}

func (r *dutyRepo) GetByID(ctx context.Context, id string) (*model.Duty, error) {
	var duty model.Duty
	err := r.db.WithContext(ctx).
		Where("duty_id = ?", id).
		First(&duty).Error
	if err != nil {
		return nil, err
	}
	return &duty, nil
}

func (r *dutyRepo) List(ctx context.Context) ([]model.Duty, error) {
	var duties []model.Duty
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&duties).Error
	return duties, err
}

func (r *dutyRepo) Update(ctx context.Context, duty *model.Duty) error {
	return r.db.WithContext(ctx).Save(duty).Error
}

func (r *dutyRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Duty{}).
		Where("duty_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

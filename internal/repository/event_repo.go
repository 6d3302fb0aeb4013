package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
)

// EventRepository 活动数据访问接口
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, clientID string, offset, limit int) ([]model.Event, int64, error)
	ListIDsByClient(ctx context.Context, clientID string) ([]string, error)
	ListAllIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// WorkdayRepository 工作日数据访问接口
type WorkdayRepository interface {
	Create(ctx context.Context, workday *model.Workday) error
	GetByID(ctx context.Context, id string) (*model.Workday, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Workday, error)
	// ListByEventsAndRange 查询一批活动在日期区间内的工作日（含活动与地点关联）
	ListByEventsAndRange(ctx context.Context, eventIDs []string, start, end time.Time) ([]model.Workday, error)
	Update(ctx context.Context, workday *model.Workday) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// ── Event Repository 实现 ──

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Client").
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) List(ctx context.Context, clientID string, offset, limit int) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Event{})
	if clientID != "" {
		db = db.Where("client_id = ?", clientID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Client").
		Offset(offset).Limit(limit).
		Order("start_date DESC NULLS LAST, title ASC").
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *eventRepo) ListIDsByClient(ctx context.Context, clientID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("client_id = ?", clientID).
		Pluck("event_id", &ids).Error
	return ids, err
}

func (r *eventRepo) ListAllIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Pluck("event_id", &ids).Error
	return ids, err
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("event_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// ── Workday Repository 实现 ──

type workdayRepo struct {
	db *gorm.DB
}

// NewWorkdayRepo 创建 WorkdayRepository 实例
func NewWorkdayRepo(db *gorm.DB) WorkdayRepository {
	return &workdayRepo{db: db}
}

func (r *workdayRepo) Create(ctx context.Context, workday *model.Workday) error {
	return r.db.WithContext(ctx).Create(workday).Error
}

func (r *workdayRepo) GetByID(ctx context.Context, id string) (*model.Workday, error) {
	var workday model.Workday
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Location").
		Where("workday_id = ?", id).
		First(&workday).Error
	if err != nil {
		return nil, err
	}
	return &workday, nil
}

func (r *workdayRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Workday, error) {
	var workdays []model.Workday
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("event_id = ?", eventID).
		Order("date ASC").
		Find(&workdays).Error
	return workdays, err
}

func (r *workdayRepo) ListByEventsAndRange(ctx context.Context, eventIDs []string, start, end time.Time) ([]model.Workday, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	var workdays []model.Workday
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.Client").
		Preload("Location").
		Where("event_id IN ? AND date >= ? AND date <= ?", eventIDs, start, end).
		Order("date ASC").
		Find(&workdays).Error
	return workdays, err
}

func (r *workdayRepo) Update(ctx context.Context, workday *model.Workday) error {
	return r.db.WithContext(ctx).Save(workday).Error
}

func (r *workdayRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Workday{}).
		Where("workday_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

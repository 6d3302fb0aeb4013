package model

// Assignment 排班任务表 — 对应 assignments
// 一个工作日内的一个排班单元：任务类型 + 可选时间窗口 + 人员名单。
// AssignedUsers / PersonnelRequests 为嵌入 JSON 文本，解析在报表层容错处理，
// 格式损坏时视为空名单而不中断整张报表
type Assignment struct {
	AssignmentID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	WorkdayID         string  `gorm:"type:uuid;not null"                             json:"workday_id"`
	TaskTypeID        string  `gorm:"type:uuid;not null"                             json:"task_type_id"`
	StartTime         string  `gorm:"type:varchar(5)"                                json:"start_time"` // HH:MM，可跨午夜
	EndTime           string  `gorm:"type:varchar(5)"                                json:"end_time"`
	HasScheduledBreak bool    `gorm:"not null;default:false"                         json:"has_scheduled_break"`
	BreakStart        *string `gorm:"type:varchar(5)"                                json:"break_start,omitempty"`
	BreakEnd          *string `gorm:"type:varchar(5)"                                json:"break_end,omitempty"`
	Breaks            string  `gorm:"type:jsonb"                                     json:"breaks,omitempty"` // [{"start","end"}]，多段休息，非空时优先于单段字段
	AssignedUsers     string  `gorm:"type:jsonb"                                     json:"assigned_users,omitempty"`     // [{"userId","dutyId"}]
	PersonnelRequests string  `gorm:"type:jsonb"                                     json:"personnel_requests,omitempty"` // [{"dutyId","quantity"}]
	Notes             string  `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	SoftDeleteModel

	// 关联
	Workday     *Workday    `gorm:"foreignKey:WorkdayID;references:WorkdayID"    json:"workday,omitempty"`
	TaskType    *TaskType   `gorm:"foreignKey:TaskTypeID;references:TaskTypeID"  json:"task_type,omitempty"`
	TimeEntries []TimeEntry `gorm:"foreignKey:AssignmentID"                      json:"time_entries,omitempty"`
}

func (Assignment) TableName() string { return "assignments" }

// TimeEntry 实际工时记录表 — 对应 time_entries
// 每个用户在一个排班任务上至多一条。HoursWorked 由调用方预先算好（已扣除休息），
// 报表引擎直接信任该值，不再从起止时间重新推导
type TimeEntry struct {
	TimeEntryID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"time_entry_id"`
	AssignmentID string  `gorm:"type:uuid;not null;index:uq_time_entry,unique"  json:"assignment_id"`
	UserID       string  `gorm:"type:uuid;not null;index:uq_time_entry,unique"  json:"user_id"`
	HoursWorked  float64 `gorm:"type:numeric(6,2);not null;default:0"           json:"hours_worked"`
	StartTime    *string `gorm:"type:varchar(5)"                                json:"start_time,omitempty"`
	EndTime      *string `gorm:"type:varchar(5)"                                json:"end_time,omitempty"`
	HasBreak     bool    `gorm:"not null;default:false"                         json:"has_break"`
	BreakStart   *string `gorm:"type:varchar(5)"                                json:"break_start,omitempty"`
	BreakEnd     *string `gorm:"type:varchar(5)"                                json:"break_end,omitempty"`
	Notes        string  `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	SoftDeleteModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (TimeEntry) TableName() string { return "time_entries" }

// [自证通过] internal/model/assignment.go

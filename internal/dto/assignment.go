package dto

// AssignedUserItem assignedUsers JSON 中的一项
type AssignedUserItem struct {
	UserID string `json:"userId" binding:"required,uuid"`
	DutyID string `json:"dutyId" binding:"required,uuid"`
}

// PersonnelRequestItem personnelRequests JSON 中的一项
type PersonnelRequestItem struct {
	DutyID   string `json:"dutyId" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// BreakIntervalItem 多段休息 JSON 中的一项
type BreakIntervalItem struct {
	Start string `json:"start" binding:"required,datetime=15:04"`
	End   string `json:"end" binding:"required,datetime=15:04"`
}

// CreateAssignmentRequest 创建排班任务请求
type CreateAssignmentRequest struct {
	TaskTypeID        string                 `json:"task_type_id" binding:"required,uuid"`
	StartTime         string                 `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime           string                 `json:"end_time" binding:"omitempty,datetime=15:04"`
	HasScheduledBreak bool                   `json:"has_scheduled_break"`
	BreakStart        string                 `json:"break_start" binding:"omitempty,datetime=15:04"`
	BreakEnd          string                 `json:"break_end" binding:"omitempty,datetime=15:04"`
	Breaks            []BreakIntervalItem    `json:"breaks" binding:"omitempty,dive"`
	AssignedUsers     []AssignedUserItem     `json:"assigned_users" binding:"omitempty,dive"`
	PersonnelRequests []PersonnelRequestItem `json:"personnel_requests" binding:"omitempty,dive"`
	Notes             string                 `json:"notes" binding:"omitempty,max=500"`
}

// UpdateAssignmentRequest 更新排班任务请求
// AssignedUsers / PersonnelRequests 传 nil 表示不修改，传空数组表示清空
type UpdateAssignmentRequest struct {
	TaskTypeID        string                  `json:"task_type_id" binding:"omitempty,uuid"`
	StartTime         *string                 `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime           *string                 `json:"end_time" binding:"omitempty,datetime=15:04"`
	HasScheduledBreak *bool                   `json:"has_scheduled_break"`
	BreakStart        *string                 `json:"break_start" binding:"omitempty,datetime=15:04"`
	BreakEnd          *string                 `json:"break_end" binding:"omitempty,datetime=15:04"`
	Breaks            *[]BreakIntervalItem    `json:"breaks" binding:"omitempty,dive"`
	AssignedUsers     *[]AssignedUserItem     `json:"assigned_users" binding:"omitempty,dive"`
	PersonnelRequests *[]PersonnelRequestItem `json:"personnel_requests" binding:"omitempty,dive"`
	Notes             *string                 `json:"notes" binding:"omitempty,max=500"`
}

// AssignmentResponse 排班任务响应
type AssignmentResponse struct {
	AssignmentID      string                 `json:"assignment_id"`
	WorkdayID         string                 `json:"workday_id"`
	TaskTypeID        string                 `json:"task_type_id"`
	TaskTypeName      string                 `json:"task_type_name,omitempty"`
	StartTime         string                 `json:"start_time,omitempty"`
	EndTime           string                 `json:"end_time,omitempty"`
	HasScheduledBreak bool                   `json:"has_scheduled_break"`
	BreakStart        string                 `json:"break_start,omitempty"`
	BreakEnd          string                 `json:"break_end,omitempty"`
	Breaks            []BreakIntervalItem    `json:"breaks,omitempty"`
	AssignedUsers     []AssignedUserItem     `json:"assigned_users"`
	PersonnelRequests []PersonnelRequestItem `json:"personnel_requests"`
	Notes             string                 `json:"notes,omitempty"`
	CreatedAt         string                 `json:"created_at"`
}

// ── 实际工时记录 ──

// SubmitTimeEntryRequest 提交实际工时请求
// hours_worked 为已扣除休息后的净工时
type SubmitTimeEntryRequest struct {
	UserID      string  `json:"user_id" binding:"required,uuid"`
	HoursWorked float64 `json:"hours_worked" binding:"gte=0"`
	StartTime   string  `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime     string  `json:"end_time" binding:"omitempty,datetime=15:04"`
	HasBreak    bool    `json:"has_break"`
	BreakStart  string  `json:"break_start" binding:"omitempty,datetime=15:04"`
	BreakEnd    string  `json:"break_end" binding:"omitempty,datetime=15:04"`
	Notes       string  `json:"notes" binding:"omitempty,max=500"`
}

// TimeEntryResponse 实际工时响应
type TimeEntryResponse struct {
	TimeEntryID  string  `json:"time_entry_id"`
	AssignmentID string  `json:"assignment_id"`
	UserID       string  `json:"user_id"`
	UserName     string  `json:"user_name,omitempty"`
	HoursWorked  float64 `json:"hours_worked"`
	StartTime    string  `json:"start_time,omitempty"`
	EndTime      string  `json:"end_time,omitempty"`
	HasBreak     bool    `json:"has_break"`
	BreakStart   string  `json:"break_start,omitempty"`
	BreakEnd     string  `json:"break_end,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

package dto

// ── 报表查询参数 ──

// 报表小时口径
const (
	HoursTypeActual    = "actual"    // 实际工时（来自 TimeEntry）
	HoursTypeScheduled = "scheduled" // 计划工时（来自排班窗口）
)

// ReportQuery 五类报表共用的查询参数（gin form 绑定）
// 各报表类型在此之上附加各自的范围 ID
type ReportQuery struct {
	StartDate           string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate             string `form:"end_date" binding:"required,datetime=2006-01-02"`
	HoursType           string `form:"hours_type" binding:"omitempty,oneof=actual scheduled"`
	IncludeBreaksHourly *bool  `form:"include_breaks_hourly"` // 缺省 true
	ShowBreakTimes      bool   `form:"show_break_times"`      // 仅影响展示字段
	IncludeDailyDetails *bool  `form:"include_daily_details"` // 缺省 true（azienda/dipendente 缺省 false）

	ClientID   string `form:"client_id" binding:"omitempty,uuid"`
	EventID    string `form:"event_id" binding:"omitempty,uuid"`
	DutyID     string `form:"duty_id" binding:"omitempty,uuid"`
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
	CompanyID  string `form:"company_id" binding:"omitempty,uuid"`
	UserID     string `form:"user_id" binding:"omitempty,uuid"`
}

// ── 聚合结果公共结构 ──

// DutySummary 按职务汇总行
// 小时制服务累计 Hours；班次制服务累计 Shifts / OvertimeHours，Hours 固定为 0
type DutySummary struct {
	DutyID        string  `json:"duty_id"`
	DutyName      string  `json:"duty_name"`
	DutyCode      string  `json:"duty_code"`
	Hours         float64 `json:"hours"`
	Shifts        int     `json:"shifts"`
	OvertimeHours float64 `json:"overtime_hours"`
}

// ReportTotals 全局合计
type ReportTotals struct {
	Hours         float64 `json:"hours"`
	Shifts        int     `json:"shifts"`
	OvertimeHours float64 `json:"overtime_hours"`
}

// DutyDetail 班次窗口内单个职务的明细
type DutyDetail struct {
	DutyID         string  `json:"duty_id"`
	DutyName       string  `json:"duty_name"`
	DutyCode       string  `json:"duty_code"`
	Hours          float64 `json:"hours"`
	NumberOfPeople int     `json:"number_of_people"`
}

// ShiftWindowDetail 班次时间窗口明细
// 同一工作日同一任务类型下，计划起止时间完全相同的排班任务合并为一个窗口
type ShiftWindowDetail struct {
	StartTime         string       `json:"start_time"`
	EndTime           string       `json:"end_time"`
	HasScheduledBreak bool         `json:"has_scheduled_break"`
	BreakStart        string       `json:"break_start,omitempty"`
	BreakEnd          string       `json:"break_end,omitempty"`
	Duties            []DutyDetail `json:"duties"`
	TotalHours        float64      `json:"total_hours"`
	NumberOfPeople    int          `json:"number_of_people"`
	Shifts            int          `json:"shifts"`
	OvertimeHours     float64      `json:"overtime_hours"`
}

// TaskTypeDetail 某工作日内单个任务类型的明细
type TaskTypeDetail struct {
	TaskTypeID      string              `json:"task_type_id"`
	TaskTypeName    string              `json:"task_type_name"`
	IsHourlyService bool                `json:"is_hourly_service"`
	Windows         []ShiftWindowDetail `json:"windows"`
}

// DailyDetail 日明细：date+location+event 维度一行
type DailyDetail struct {
	Date         string           `json:"date"` // YYYY-MM-DD
	LocationID   string           `json:"location_id,omitempty"`
	LocationName string           `json:"location_name,omitempty"`
	EventID      string           `json:"event_id"`
	EventTitle   string           `json:"event_title"`
	TaskTypes    []TaskTypeDetail `json:"task_types"`
}

// ReportResult 聚合引擎输出：职务汇总 + 日明细 + 合计
type ReportResult struct {
	SummaryByDuty []DutySummary `json:"summary_by_duty"`
	DailyDetails  []DailyDetail `json:"daily_details"`
	Totals        ReportTotals  `json:"totals"`
}

// ── 各报表类型响应 ──

// ClientReportResponse 按客户报表（cliente）
type ClientReportResponse struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	ReportResult
}

// ClientRef 活动报表中出现的客户引用（供前端下钻）
type ClientRef struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
}

// EventReportResponse 按活动报表（evento）
type EventReportResponse struct {
	EventID    string      `json:"event_id"`
	EventTitle string      `json:"event_title"`
	Clients    []ClientRef `json:"clients"`
	ReportResult
}

// TaskTypeTotal 职务报表的日明细行：任务类型直接汇总（职务层已固定，省略职务拆分）
type TaskTypeTotal struct {
	TaskTypeID      string  `json:"task_type_id"`
	TaskTypeName    string  `json:"task_type_name"`
	IsHourlyService bool    `json:"is_hourly_service"`
	Hours           float64 `json:"hours"`
	Shifts          int     `json:"shifts"`
	OvertimeHours   float64 `json:"overtime_hours"`
	NumberOfPeople  int     `json:"number_of_people"`
}

// DutyDailyDetail 职务报表的日明细
type DutyDailyDetail struct {
	Date         string          `json:"date"`
	LocationID   string          `json:"location_id,omitempty"`
	LocationName string          `json:"location_name,omitempty"`
	EventID      string          `json:"event_id"`
	EventTitle   string          `json:"event_title"`
	TaskTypes    []TaskTypeTotal `json:"task_types"`
}

// DutyReportResponse 按职务报表（mansione）
type DutyReportResponse struct {
	DutyID       string            `json:"duty_id"`
	DutyName     string            `json:"duty_name"`
	DutyCode     string            `json:"duty_code"`
	DailyDetails []DutyDailyDetail `json:"daily_details"`
	Totals       ReportTotals      `json:"totals"`
}

// CompanySubReport 单个劳务公司的子报表
type CompanySubReport struct {
	CompanyID     string        `json:"company_id"`
	CompanyName   string        `json:"company_name"`
	SummaryByDuty []DutySummary `json:"summary_by_duty"`
	DailyDetails  []DailyDetail `json:"daily_details,omitempty"`
	Totals        ReportTotals  `json:"totals"`
}

// CompanyReportResponse 按劳务公司报表（azienda）
type CompanyReportResponse struct {
	Companies []CompanySubReport `json:"companies"`
	Totals    ReportTotals       `json:"totals"`
}

// EmployeeEntry 员工报表的按时间顺序明细行
type EmployeeEntry struct {
	Date          string  `json:"date"`
	EventTitle    string  `json:"event_title"`
	Hours         float64 `json:"hours"`
	Shifts        int     `json:"shifts"`
	OvertimeHours float64 `json:"overtime_hours"`
	Notes         string  `json:"notes,omitempty"`
}

// EmployeeSubReport 单个员工的子报表
type EmployeeSubReport struct {
	UserID       string          `json:"user_id"`
	UserName     string          `json:"user_name"`
	CompanyName  string          `json:"company_name,omitempty"`
	Entries      []EmployeeEntry `json:"entries"`
	DailyDetails []DailyDetail   `json:"daily_details,omitempty"`
	Totals       ReportTotals    `json:"totals"`
}

// EmployeeReportResponse 按员工报表（dipendente）
type EmployeeReportResponse struct {
	Employees []EmployeeSubReport `json:"employees"`
	Totals    ReportTotals        `json:"totals"`
}

// [自证通过] internal/dto/report.go

package dto

// ── 劳务公司 ──

// CreateCompanyRequest 创建劳务公司请求
type CreateCompanyRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	VatNumber string `json:"vat_number" binding:"omitempty,max=20"`
}

// UpdateCompanyRequest 更新劳务公司请求
type UpdateCompanyRequest struct {
	Name      string `json:"name" binding:"omitempty,max=200"`
	VatNumber string `json:"vat_number" binding:"omitempty,max=20"`
}

// CompanyResponse 劳务公司响应
type CompanyResponse struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	VatNumber string `json:"vat_number,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ── 工作地点 ──

// CreateLocationRequest 创建工作地点请求
type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"omitempty,max=300"`
}

// UpdateLocationRequest 更新工作地点请求
type UpdateLocationRequest struct {
	Name    string `json:"name" binding:"omitempty,max=200"`
	Address string `json:"address" binding:"omitempty,max=300"`
}

// LocationResponse 工作地点响应
type LocationResponse struct {
	LocationID string `json:"location_id"`
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// ── 任务类型 ──

// CreateTaskTypeRequest 创建任务类型请求
// 班次制（is_hourly_service=false）时 shift_hours 表示名义班次时长
type CreateTaskTypeRequest struct {
	Name            string   `json:"name" binding:"required,max=100"`
	Type            string   `json:"type" binding:"required,oneof=SHIFT ACTIVITY"`
	IsHourlyService *bool    `json:"is_hourly_service"`
	ShiftHours      *float64 `json:"shift_hours" binding:"omitempty,gt=0"`
}

// UpdateTaskTypeRequest 更新任务类型请求
type UpdateTaskTypeRequest struct {
	Name            string   `json:"name" binding:"omitempty,max=100"`
	Type            string   `json:"type" binding:"omitempty,oneof=SHIFT ACTIVITY"`
	IsHourlyService *bool    `json:"is_hourly_service"`
	ShiftHours      *float64 `json:"shift_hours" binding:"omitempty,gt=0"`
}

// TaskTypeResponse 任务类型响应
type TaskTypeResponse struct {
	TaskTypeID      string   `json:"task_type_id"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	IsHourlyService bool     `json:"is_hourly_service"`
	ShiftHours      *float64 `json:"shift_hours,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// ── 职务 ──

// CreateDutyRequest 创建职务请求
type CreateDutyRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Code string `json:"code" binding:"required,max=50"`
}

// UpdateDutyRequest 更新职务请求
type UpdateDutyRequest struct {
	Name string `json:"name" binding:"omitempty,max=100"`
	Code string `json:"code" binding:"omitempty,max=50"`
}

// DutyResponse 职务响应
type DutyResponse struct {
	DutyID    string `json:"duty_id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	CreatedAt string `json:"created_at"`
}

package dto

// CreateEventRequest 创建活动请求
type CreateEventRequest struct {
	ClientID  string `json:"client_id" binding:"required,uuid"`
	Title     string `json:"title" binding:"required,max=200"`
	Status    string `json:"status" binding:"omitempty,oneof=planned confirmed closed cancelled"`
	StartDate string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateEventRequest 更新活动请求
type UpdateEventRequest struct {
	Title     string `json:"title" binding:"omitempty,max=200"`
	Status    string `json:"status" binding:"omitempty,oneof=planned confirmed closed cancelled"`
	StartDate string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// EventResponse 活动响应
type EventResponse struct {
	EventID    string `json:"event_id"`
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name,omitempty"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// CreateWorkdayRequest 创建工作日请求
type CreateWorkdayRequest struct {
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	LocationID string `json:"location_id" binding:"omitempty,uuid"`
}

// WorkdayResponse 工作日响应
type WorkdayResponse struct {
	WorkdayID    string `json:"workday_id"`
	EventID      string `json:"event_id"`
	Date         string `json:"date"`
	LocationID   string `json:"location_id,omitempty"`
	LocationName string `json:"location_name,omitempty"`
	CreatedAt    string `json:"created_at"`
}

package model

import "time"

// Event 活动表 — 对应 events
type Event struct {
	EventID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	ClientID  string     `gorm:"type:uuid;not null"                             json:"client_id"`
	Title     string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Status    string     `gorm:"type:varchar(20);not null;default:'planned'"    json:"status"` // planned | confirmed | closed | cancelled
	StartDate *time.Time `gorm:"type:date"                                      json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	SoftDeleteModel

	// 关联
	Client   *Client   `gorm:"foreignKey:ClientID;references:ClientID" json:"client,omitempty"`
	Workdays []Workday `gorm:"foreignKey:EventID"                      json:"workdays,omitempty"`
}

func (Event) TableName() string { return "events" }

// Workday 工作日表 — 对应 workdays
// 一个活动的一个需排班日历日，可选绑定地点
type Workday struct {
	WorkdayID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"workday_id"`
	EventID    string    `gorm:"type:uuid;not null"                             json:"event_id"`
	LocationID *string   `gorm:"type:uuid"                                      json:"location_id,omitempty"`
	Date       time.Time `gorm:"type:date;not null"                             json:"date"`
	SoftDeleteModel

	// 关联
	Event       *Event       `gorm:"foreignKey:EventID;references:EventID"       json:"event,omitempty"`
	Location    *Location    `gorm:"foreignKey:LocationID;references:LocationID" json:"location,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:WorkdayID"                        json:"assignments,omitempty"`
}

func (Workday) TableName() string { return "workdays" }

// [自证通过] internal/model/event.go

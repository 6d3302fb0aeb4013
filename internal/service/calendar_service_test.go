package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
)

func newTestCalendarService(repo *repository.Repository) CalendarService {
	return NewCalendarService(repo, zap.NewNop())
}

// seedCalendarScope 布景：员工 + 客户/活动/工作日，返回工作日供排班挂载
func seedCalendarScope(t *testing.T, repo *repository.Repository, date string) *model.Workday {
	t.Helper()
	_, _, wd := seedClientScope(t, repo, date)
	if err := repo.User.Create(context.Background(), &model.User{UserID: "u1", Name: "Anna Bianchi", Role: model.RoleWorker}); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return wd
}

func TestEmployeeCalendar_TimedEvent(t *testing.T) {
	repo := newMockRepository()
	wd := seedCalendarScope(t, repo, "2026-07-10")
	tt := &model.TaskType{TaskTypeID: "tt1", Name: "Sorveglianza", Type: model.TaskTypeShift, IsHourlyService: true}
	_ = repo.TaskType.Create(context.Background(), tt)
	_ = repo.Assignment.Create(context.Background(), &model.Assignment{
		AssignmentID:  "a1",
		WorkdayID:     "w1",
		Workday:       wd,
		TaskTypeID:    "tt1",
		TaskType:      tt,
		StartTime:     "09:00",
		EndTime:       "18:00",
		AssignedUsers: `[{"userId":"u1","dutyId":"d1"}]`,
	})

	ics, err := newTestCalendarService(repo).EmployeeCalendar(context.Background(),
		"u1", mustDate(t, "2026-07-01"), mustDate(t, "2026-07-31"))
	if err != nil {
		t.Fatalf("生成日历失败: %v", err)
	}
	if !strings.Contains(ics, "BEGIN:VEVENT") {
		t.Fatal("序列化结果应包含 VEVENT")
	}
	if !strings.Contains(ics, "UID:a1") {
		t.Error("事件 UID 应为排班任务 ID")
	}
	if !strings.Contains(ics, "SUMMARY:Stagione Estiva - Sorveglianza") {
		t.Error("事件标题应为 活动名 - 任务类型")
	}
	if !strings.Contains(ics, "DTSTART:20260710T") {
		t.Error("有时间窗口的任务应输出当日定时 DTSTART")
	}
	if !strings.Contains(ics, "DTEND:20260710T") {
		t.Error("未跨午夜的任务 DTEND 应落在当日")
	}
}

// 跨午夜窗口（22:00-02:00）的 DTEND 顺延到次日
func TestEmployeeCalendar_CrossMidnightRollover(t *testing.T) {
	repo := newMockRepository()
	wd := seedCalendarScope(t, repo, "2026-07-10")
	tt := &model.TaskType{TaskTypeID: "tt1", Name: "Smontaggio", Type: model.TaskTypeShift, IsHourlyService: true}
	_ = repo.TaskType.Create(context.Background(), tt)
	_ = repo.Assignment.Create(context.Background(), &model.Assignment{
		AssignmentID:  "a1",
		WorkdayID:     "w1",
		Workday:       wd,
		TaskTypeID:    "tt1",
		TaskType:      tt,
		StartTime:     "22:00",
		EndTime:       "02:00",
		AssignedUsers: `[{"userId":"u1","dutyId":"d1"}]`,
	})

	ics, err := newTestCalendarService(repo).EmployeeCalendar(context.Background(),
		"u1", mustDate(t, "2026-07-01"), mustDate(t, "2026-07-31"))
	if err != nil {
		t.Fatalf("生成日历失败: %v", err)
	}
	if !strings.Contains(ics, "DTSTART:20260710T") {
		t.Error("跨午夜任务 DTSTART 应落在当日")
	}
	if !strings.Contains(ics, "DTEND:20260711T") {
		t.Error("跨午夜任务 DTEND 应顺延到次日")
	}
}

// 无时间窗口的任务降级为全天事件
func TestEmployeeCalendar_AllDayFallback(t *testing.T) {
	repo := newMockRepository()
	wd := seedCalendarScope(t, repo, "2026-07-10")
	tt := &model.TaskType{TaskTypeID: "tt1", Name: "Disponibilità", Type: model.TaskTypeShift, IsHourlyService: true}
	_ = repo.TaskType.Create(context.Background(), tt)
	_ = repo.Assignment.Create(context.Background(), &model.Assignment{
		AssignmentID:  "a1",
		WorkdayID:     "w1",
		Workday:       wd,
		TaskTypeID:    "tt1",
		TaskType:      tt,
		AssignedUsers: `[{"userId":"u1","dutyId":"d1"}]`,
	})

	ics, err := newTestCalendarService(repo).EmployeeCalendar(context.Background(),
		"u1", mustDate(t, "2026-07-01"), mustDate(t, "2026-07-31"))
	if err != nil {
		t.Fatalf("生成日历失败: %v", err)
	}
	if !strings.Contains(ics, "DTSTART;VALUE=DATE:20260710") {
		t.Error("无时间窗口的任务应输出全天 DTSTART")
	}
	if !strings.Contains(ics, "DTEND;VALUE=DATE:20260711") {
		t.Error("全天事件 DTEND 应为次日")
	}
}

func TestEmployeeCalendar_Errors(t *testing.T) {
	repo := newMockRepository()
	svc := newTestCalendarService(repo)

	if _, err := svc.EmployeeCalendar(context.Background(), "missing", time.Time{}, time.Time{}); !errors.Is(err, ErrCalendarUserNotFound) {
		t.Errorf("期望 ErrCalendarUserNotFound，实际 %v", err)
	}

	_ = repo.User.Create(context.Background(), &model.User{UserID: "u1", Name: "Anna Bianchi", Role: model.RoleWorker})
	if _, err := svc.EmployeeCalendar(context.Background(), "u1",
		mustDate(t, "2026-07-31"), mustDate(t, "2026-07-01")); !errors.Is(err, ErrCalendarRangeInvalid) {
		t.Errorf("期望 ErrCalendarRangeInvalid，实际 %v", err)
	}
}

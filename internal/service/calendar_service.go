package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
)

// ── 日历模块错误 ──

var (
	ErrCalendarUserNotFound = errors.New("用户不存在")
	ErrCalendarRangeInvalid = errors.New("日期区间非法")
)

const (
	romeTimezone = "Europe/Rome"
	// 默认向前后各取的天数（未显式传区间时）
	calendarDefaultBack    = 7
	calendarDefaultForward = 60
)

// CalendarService 员工个人排班日历（iCalendar / RFC 5545 订阅源）
//
// 设计决策：
//   - 每个排班任务输出一个 VEVENT，UID 取 assignmentID，保证客户端刷新时幂等更新
//   - 跨午夜窗口（end ≤ start）的 DTEND 顺延到次日
//   - 无时间窗口的任务输出为全天事件
type CalendarService interface {
	EmployeeCalendar(ctx context.Context, userID string, start, end time.Time) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建日历服务实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) EmployeeCalendar(ctx context.Context, userID string, start, end time.Time) (string, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return "", ErrCalendarUserNotFound
		}
		return "", fmt.Errorf("查询用户失败: %w", err)
	}

	now := time.Now()
	if start.IsZero() {
		start = now.AddDate(0, 0, -calendarDefaultBack)
	}
	if end.IsZero() {
		end = now.AddDate(0, 0, calendarDefaultForward)
	}
	if end.Before(start) {
		return "", ErrCalendarRangeInvalid
	}

	assignments, err := s.repo.Assignment.ListByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return "", fmt.Errorf("查询排班失败: %w", err)
	}

	loc, err := time.LoadLocation(romeTimezone)
	if err != nil {
		loc = time.UTC
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//TeatriApuani//Turni//IT")
	cal.SetXWRCalName(fmt.Sprintf("Turni %s", user.Name))
	cal.SetXWRTimezone(romeTimezone)

	for i := range assignments {
		s.appendAssignmentEvent(cal, &assignments[i], loc, now)
	}

	return cal.Serialize(), nil
}

// appendAssignmentEvent 将单个排班任务转为 VEVENT
func (s *calendarService) appendAssignmentEvent(cal *ics.Calendar, a *model.Assignment, loc *time.Location, now time.Time) {
	if a.Workday == nil {
		return
	}
	date := a.Workday.Date.In(loc)

	evt := cal.AddEvent(a.AssignmentID)
	evt.SetCreatedTime(now)
	evt.SetDtStampTime(now)
	evt.SetModifiedAt(a.UpdatedAt)

	startMin, startOK := parseClockMinutes(a.StartTime)
	endMin, endOK := parseClockMinutes(a.EndTime)
	if startOK && endOK {
		dtStart := time.Date(date.Year(), date.Month(), date.Day(), startMin/60, startMin%60, 0, 0, loc)
		dtEnd := time.Date(date.Year(), date.Month(), date.Day(), endMin/60, endMin%60, 0, 0, loc)
		// 跨午夜（含相等，视为 24 小时窗口）顺延到次日
		if !dtEnd.After(dtStart) {
			dtEnd = dtEnd.AddDate(0, 0, 1)
		}
		evt.SetStartAt(dtStart)
		evt.SetEndAt(dtEnd)
	} else {
		evt.SetAllDayStartAt(time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc))
		evt.SetAllDayEndAt(time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1))
	}

	evt.SetSummary(assignmentSummary(a))
	if a.Workday.Location != nil {
		evt.SetLocation(a.Workday.Location.Name)
	}
	if desc := assignmentDescription(a); desc != "" {
		evt.SetDescription(desc)
	}
}

// assignmentSummary 事件标题：活动名 + 任务类型
func assignmentSummary(a *model.Assignment) string {
	var parts []string
	if a.Workday != nil && a.Workday.Event != nil {
		parts = append(parts, a.Workday.Event.Title)
	}
	if a.TaskType != nil {
		parts = append(parts, a.TaskType.Name)
	}
	if len(parts) == 0 {
		return "Turno"
	}
	return strings.Join(parts, " - ")
}

// assignmentDescription 事件描述：休息时段与备注
func assignmentDescription(a *model.Assignment) string {
	var lines []string
	if a.HasScheduledBreak && a.BreakStart != nil && a.BreakEnd != nil {
		lines = append(lines, fmt.Sprintf("Pausa: %s-%s", *a.BreakStart, *a.BreakEnd))
	}
	if breaks, status := parseBreakList(a.Breaks); status == parseOK {
		for _, b := range breaks {
			lines = append(lines, fmt.Sprintf("Pausa: %s-%s", b.Start, b.End))
		}
	}
	if a.Notes != "" {
		lines = append(lines, a.Notes)
	}
	return strings.Join(lines, "\n")
}

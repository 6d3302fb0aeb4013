package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
)

// ════════════════════════════════════════════
// 排班解析器
// 将报表查询范围 + 日期区间翻译为扁平的 resolvedAssignment 集合，
// 每条已附带工作日/活动/地点上下文、任务类型口径和人员-职务映射
// ════════════════════════════════════════════

// ── 嵌入 JSON 的显式三态解析 ──
// 解析结果区分 OK / 空 / 损坏，损坏降级为空名单但状态可见可测

type parseStatus int

const (
	parseOK parseStatus = iota
	parseEmpty
	parseMalformed
)

// parseAssignedUsers 解析 assignedUsers JSON 文本
func parseAssignedUsers(raw string) ([]dto.AssignedUserItem, parseStatus) {
	if strings.TrimSpace(raw) == "" {
		return nil, parseEmpty
	}
	var items []dto.AssignedUserItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, parseMalformed
	}
	if len(items) == 0 {
		return nil, parseEmpty
	}
	return items, parseOK
}

// parsePersonnelRequests 解析 personnelRequests JSON 文本
func parsePersonnelRequests(raw string) ([]dto.PersonnelRequestItem, parseStatus) {
	if strings.TrimSpace(raw) == "" {
		return nil, parseEmpty
	}
	var items []dto.PersonnelRequestItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, parseMalformed
	}
	if len(items) == 0 {
		return nil, parseEmpty
	}
	return items, parseOK
}

// parseBreakList 解析多段休息 JSON 文本
func parseBreakList(raw string) ([]BreakInterval, parseStatus) {
	if strings.TrimSpace(raw) == "" {
		return nil, parseEmpty
	}
	var items []BreakInterval
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, parseMalformed
	}
	if len(items) == 0 {
		return nil, parseEmpty
	}
	return items, parseOK
}

// ── 请求级名称缓存 ──
// 职务/任务类型名称在一次报表计算内按 ID 只查一次，避免 N+1；
// 缓存随请求创建随请求丢弃，不存在跨请求失效问题

type nameCache struct {
	repo      *repository.Repository
	duties    map[string]*model.Duty
	taskTypes map[string]*model.TaskType
}

func newNameCache(repo *repository.Repository) *nameCache {
	return &nameCache{
		repo:      repo,
		duties:    make(map[string]*model.Duty),
		taskTypes: make(map[string]*model.TaskType),
	}
}

// duty 按 ID 取职务，未找到缓存 nil 不重复查询
func (c *nameCache) duty(ctx context.Context, id string) *model.Duty {
	if d, ok := c.duties[id]; ok {
		return d
	}
	d, err := c.repo.Duty.GetByID(ctx, id)
	if err != nil {
		d = nil
	}
	c.duties[id] = d
	return d
}

// dutyName 职务显示名，未找到回退到 ID
func (c *nameCache) dutyName(ctx context.Context, id string) (name, code string) {
	if d := c.duty(ctx, id); d != nil {
		return d.Name, d.Code
	}
	return id, ""
}

// ── 解析结果 ──

// resolvedAssignment 报表口径下的一条排班任务
type resolvedAssignment struct {
	assignmentID string
	date         string // YYYY-MM-DD
	locationID   string
	locationName string
	eventID      string
	eventTitle   string
	clientID     string
	clientName   string

	taskTypeID   string
	taskTypeName string
	isHourly     bool
	shiftHours   *float64

	startTime         string
	endTime           string
	hasScheduledBreak bool
	breakStart        *string
	breakEnd          *string
	breakHours        float64 // 多段列表优先，否则单段字段

	userDuties   map[string]string // userId → dutyId
	userOrder    []string          // 保持 assignedUsers 出现顺序
	fallbackDuty string            // personnelRequests 首项职务（回退归属）
	requestedQty int               // personnelRequests 数量合计（计划口径无名单时的人数）
	entries      []model.TimeEntry

	// 排班时的满编人数（名单人数，缺名单时为需求数量合计）。
	// 计划口径均分以此为分母，范围过滤收窄名单后口径不变
	plannedHeadcount int
}

// dutyFor 解析某用户的职务：名单优先，缺席回退到 personnelRequests 首项
func (ra *resolvedAssignment) dutyFor(userID string) string {
	if d, ok := ra.userDuties[userID]; ok {
		return d
	}
	return ra.fallbackDuty
}

// filterByDuty 仅保留归属于指定职务的人员与工时记录
// 整条任务无人命中时返回 false
func (ra resolvedAssignment) filterByDuty(dutyID string) (resolvedAssignment, bool) {
	userDuties := make(map[string]string)
	var order []string
	for _, uid := range ra.userOrder {
		if ra.userDuties[uid] == dutyID {
			userDuties[uid] = dutyID
			order = append(order, uid)
		}
	}
	var entries []model.TimeEntry
	for _, e := range ra.entries {
		if ra.dutyFor(e.UserID) == dutyID {
			entries = append(entries, e)
		}
	}
	fallback := ""
	qty := 0
	if ra.fallbackDuty == dutyID {
		fallback = dutyID
		qty = ra.requestedQty
	}
	if len(order) == 0 && len(entries) == 0 && fallback == "" {
		return ra, false
	}
	ra.userDuties = userDuties
	ra.userOrder = order
	ra.entries = entries
	ra.fallbackDuty = fallback
	ra.requestedQty = qty
	return ra, true
}

// filterByUsers 仅保留指定用户集合的人员与工时记录
// 无名单的计划口径任务无法归属到具体用户，一并剔除
func (ra resolvedAssignment) filterByUsers(allowed map[string]bool) (resolvedAssignment, bool) {
	userDuties := make(map[string]string)
	var order []string
	for _, uid := range ra.userOrder {
		if allowed[uid] {
			userDuties[uid] = ra.userDuties[uid]
			order = append(order, uid)
		}
	}
	var entries []model.TimeEntry
	for _, e := range ra.entries {
		if allowed[e.UserID] {
			entries = append(entries, e)
		}
	}
	if len(order) == 0 && len(entries) == 0 {
		return ra, false
	}
	ra.userDuties = userDuties
	ra.userOrder = order
	ra.entries = entries
	ra.requestedQty = 0
	return ra, true
}

// resolveAssignments 取给定活动集合在日期区间内的全部可报表排班任务
// 仅保留 SHIFT 类型任务；可选地点过滤在此处生效
func resolveAssignments(
	ctx context.Context,
	repo *repository.Repository,
	eventIDs []string,
	start, end time.Time,
	locationID string,
) ([]resolvedAssignment, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	workdays, err := repo.Workday.ListByEventsAndRange(ctx, eventIDs, start, end)
	if err != nil {
		return nil, err
	}
	byWorkday := make(map[string]*model.Workday, len(workdays))
	workdayIDs := make([]string, 0, len(workdays))
	for i := range workdays {
		wd := &workdays[i]
		if locationID != "" && (wd.LocationID == nil || *wd.LocationID != locationID) {
			continue
		}
		byWorkday[wd.WorkdayID] = wd
		workdayIDs = append(workdayIDs, wd.WorkdayID)
	}
	if len(workdayIDs) == 0 {
		return nil, nil
	}
	assignments, err := repo.Assignment.ListByWorkdays(ctx, workdayIDs)
	if err != nil {
		return nil, err
	}

	resolved := make([]resolvedAssignment, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		wd, ok := byWorkday[a.WorkdayID]
		if !ok || a.TaskType == nil || a.TaskType.Type != model.TaskTypeShift {
			continue // ACTIVITY 类型不进入工时报表
		}

		ra := resolvedAssignment{
			assignmentID:      a.AssignmentID,
			date:              wd.Date.Format("2006-01-02"),
			eventID:           wd.EventID,
			taskTypeID:        a.TaskTypeID,
			taskTypeName:      a.TaskType.Name,
			isHourly:          a.TaskType.IsHourlyService,
			shiftHours:        a.TaskType.ShiftHours,
			startTime:         a.StartTime,
			endTime:           a.EndTime,
			hasScheduledBreak: a.HasScheduledBreak,
			breakStart:        a.BreakStart,
			breakEnd:          a.BreakEnd,
			userDuties:        make(map[string]string),
			entries:           a.TimeEntries,
		}
		if wd.Event != nil {
			ra.eventTitle = wd.Event.Title
			ra.clientID = wd.Event.ClientID
			if wd.Event.Client != nil {
				ra.clientName = wd.Event.Client.DisplayName()
			}
		}
		if wd.LocationID != nil {
			ra.locationID = *wd.LocationID
		}
		if wd.Location != nil {
			ra.locationName = wd.Location.Name
		}

		// 休息时长：多段列表非空时优先，损坏降级到单段字段
		if intervals, st := parseBreakList(a.Breaks); st == parseOK {
			ra.breakHours = BreakListHours(intervals)
		} else {
			ra.breakHours = BreakHours(a.HasScheduledBreak, a.BreakStart, a.BreakEnd)
		}

		// 人员名单：损坏视为空，回退到 personnelRequests
		if users, st := parseAssignedUsers(a.AssignedUsers); st == parseOK {
			for _, u := range users {
				if _, dup := ra.userDuties[u.UserID]; dup {
					continue
				}
				ra.userDuties[u.UserID] = u.DutyID
				ra.userOrder = append(ra.userOrder, u.UserID)
			}
		}
		if reqs, st := parsePersonnelRequests(a.PersonnelRequests); st == parseOK {
			ra.fallbackDuty = reqs[0].DutyID
			for _, r := range reqs {
				ra.requestedQty += r.Quantity
			}
		}
		ra.plannedHeadcount = len(ra.userOrder)
		if ra.plannedHeadcount == 0 {
			ra.plannedHeadcount = ra.requestedQty
		}

		resolved = append(resolved, ra)
	}
	return resolved, nil
}

// isNotFound 判断仓储错误是否为记录不存在
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

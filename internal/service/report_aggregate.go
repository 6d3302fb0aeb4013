package service

import (
	"context"
	"sort"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
)

// ════════════════════════════════════════════
// 聚合引擎
// 一次遍历同时构建两套结构：
//   (a) 按职务扁平汇总（小时制累计小时，班次制累计班次+加班）
//   (b) 日明细树 date+location+event → taskType → 时间窗口
// 五类报表共用同一引擎，仅范围解析与最终响应形态不同
// ════════════════════════════════════════════

// personContrib 单人对一条排班任务的工时贡献
type personContrib struct {
	userID string // 计划口径按需求回退时为空
	dutyID string
	hours  float64
	notes  string
}

// contributions 把一条排班任务展开为逐人贡献
//
// 实际口径：逐条 TimeEntry 取 hoursWorked（存量为扣除休息后的净值），
// 小时制且 includeBreaksHourly 时把该记录自己的休息时长加回。
// 计划口径：窗口总时长按排班时的满编人数均分，范围过滤只收窄输出
// 的人员，不改变均分分母；小时制且不含休息时先扣除排班休息；
// 名单缺席时按 personnelRequests 数量虚拟等额人头。
func contributions(ra *resolvedAssignment, hoursType string, includeBreaksHourly bool) []personContrib {
	if hoursType == dto.HoursTypeActual {
		out := make([]personContrib, 0, len(ra.entries))
		for _, e := range ra.entries {
			h := e.HoursWorked
			if ra.isHourly && includeBreaksHourly {
				h += BreakHours(e.HasBreak, e.BreakStart, e.BreakEnd)
			}
			out = append(out, personContrib{
				userID: e.UserID,
				dutyID: ra.dutyFor(e.UserID),
				hours:  h,
				notes:  e.Notes,
			})
		}
		return out
	}

	// 计划口径
	if ra.plannedHeadcount == 0 {
		return nil
	}
	total := HoursBetween(ra.startTime, ra.endTime)
	if ra.isHourly && !includeBreaksHourly {
		total -= ra.breakHours
		if total < 0 {
			total = 0
		}
	}
	perPerson := total / float64(ra.plannedHeadcount)

	if len(ra.userOrder) > 0 {
		out := make([]personContrib, 0, len(ra.userOrder))
		for _, uid := range ra.userOrder {
			out = append(out, personContrib{userID: uid, dutyID: ra.userDuties[uid], hours: perPerson})
		}
		return out
	}
	out := make([]personContrib, 0, ra.requestedQty)
	for i := 0; i < ra.requestedQty; i++ {
		out = append(out, personContrib{dutyID: ra.fallbackDuty, hours: perPerson})
	}
	return out
}

// ── 内部累加结构 ──

type windowGroup struct {
	startTime         string
	endTime           string
	actualStart       string // 实际口径下跨 TimeEntry 的最早开始
	actualEnd         string // 实际口径下跨 TimeEntry 的最晚结束
	hasScheduledBreak bool
	breakStart        string
	breakEnd          string
	duties            map[string]*dto.DutyDetail
	dutyOrder         []string
	totalHours        float64
	numberOfPeople    int
	shifts            int
	overtimeHours     float64
}

type taskTypeGroup struct {
	id       string
	name     string
	isHourly bool
	windows  map[string]*windowGroup
}

type dayGroup struct {
	date         string
	locationID   string
	locationName string
	eventID      string
	eventTitle   string
	taskTypes    map[string]*taskTypeGroup
}

// aggregator 单次报表计算的累加器，随请求创建，无共享状态
type aggregator struct {
	hoursType           string
	includeBreaksHourly bool
	names               *nameCache
	repo                *repository.Repository

	summary map[string]*dto.DutySummary
	totals  dto.ReportTotals
	days    map[string]*dayGroup
}

func newAggregator(repo *repository.Repository, hoursType string, includeBreaksHourly bool) *aggregator {
	return &aggregator{
		hoursType:           hoursType,
		includeBreaksHourly: includeBreaksHourly,
		names:               newNameCache(repo),
		repo:                repo,
		summary:             make(map[string]*dto.DutySummary),
		days:                make(map[string]*dayGroup),
	}
}

// add 把一条排班任务折叠进两套结构
func (ag *aggregator) add(ctx context.Context, ra *resolvedAssignment) {
	contribs := contributions(ra, ag.hoursType, ag.includeBreaksHourly)
	if len(contribs) == 0 {
		return
	}

	// (a) 扁平职务汇总：逐人归类后累加，绝不对汇总值做归类
	for _, c := range contribs {
		row := ag.summaryRow(ctx, c.dutyID)
		if ra.isHourly {
			row.Hours += c.hours
			ag.totals.Hours += c.hours
		} else {
			sc := Classify(c.hours, ra.shiftHours)
			row.Shifts += sc.Shifts
			row.OvertimeHours += sc.OvertimeHours
			ag.totals.Shifts += sc.Shifts
			ag.totals.OvertimeHours += sc.OvertimeHours
		}
	}

	// (b) 日明细树
	day := ag.dayGroup(ra)
	tt, ok := day.taskTypes[ra.taskTypeID]
	if !ok {
		tt = &taskTypeGroup{
			id:       ra.taskTypeID,
			name:     ra.taskTypeName,
			isHourly: ra.isHourly,
			windows:  make(map[string]*windowGroup),
		}
		day.taskTypes[ra.taskTypeID] = tt
	}

	// 窗口按计划起止的字面值合并，首见者播种休息信息与班次/加班数
	winKey := ra.startTime + "|" + ra.endTime
	win, ok := tt.windows[winKey]
	if !ok {
		win = &windowGroup{
			startTime:         ra.startTime,
			endTime:           ra.endTime,
			hasScheduledBreak: ra.hasScheduledBreak,
			duties:            make(map[string]*dto.DutyDetail),
		}
		if ra.breakStart != nil {
			win.breakStart = *ra.breakStart
		}
		if ra.breakEnd != nil {
			win.breakEnd = *ra.breakEnd
		}
		if !ra.isHourly {
			// 班次/加班数在窗口创建时一次算定，后续合并不再重算
			for _, c := range contribs {
				sc := Classify(c.hours, ra.shiftHours)
				win.shifts += sc.Shifts
				win.overtimeHours += sc.OvertimeHours
			}
			if ra.shiftHours != nil {
				win.totalHours = *ra.shiftHours * float64(len(contribs))
			}
		}
		tt.windows[winKey] = win
	}

	for _, c := range contribs {
		d, ok := win.duties[c.dutyID]
		if !ok {
			name, code := ag.names.dutyName(ctx, c.dutyID)
			d = &dto.DutyDetail{DutyID: c.dutyID, DutyName: name, DutyCode: code}
			win.duties[c.dutyID] = d
			win.dutyOrder = append(win.dutyOrder, c.dutyID)
		}
		d.Hours += c.hours
		d.NumberOfPeople++
		win.numberOfPeople++
		if ra.isHourly {
			win.totalHours += c.hours
		}
	}

	// 实际口径下窗口展示实际最早开始/最晚结束，缺记录时回退计划时间
	if ag.hoursType == dto.HoursTypeActual {
		for _, e := range ra.entries {
			if e.StartTime != nil && *e.StartTime != "" {
				if win.actualStart == "" || *e.StartTime < win.actualStart {
					win.actualStart = *e.StartTime
				}
			}
			if e.EndTime != nil && *e.EndTime != "" {
				if win.actualEnd == "" || *e.EndTime > win.actualEnd {
					win.actualEnd = *e.EndTime
				}
			}
		}
	}
}

func (ag *aggregator) summaryRow(ctx context.Context, dutyID string) *dto.DutySummary {
	if row, ok := ag.summary[dutyID]; ok {
		return row
	}
	name, code := ag.names.dutyName(ctx, dutyID)
	row := &dto.DutySummary{DutyID: dutyID, DutyName: name, DutyCode: code}
	ag.summary[dutyID] = row
	return row
}

func (ag *aggregator) dayGroup(ra *resolvedAssignment) *dayGroup {
	// 分组键用 ID 而非名称，避免同名地点/活动串组
	key := ra.date + "|" + ra.locationID + "|" + ra.eventID
	day, ok := ag.days[key]
	if !ok {
		day = &dayGroup{
			date:         ra.date,
			locationID:   ra.locationID,
			locationName: ra.locationName,
			eventID:      ra.eventID,
			eventTitle:   ra.eventTitle,
			taskTypes:    make(map[string]*taskTypeGroup),
		}
		ag.days[key] = day
	}
	return day
}

// result 产出排序后的最终结构
// showBreakTimes 为 false 时不输出休息起止（纯展示开关，不影响数值）
func (ag *aggregator) result(showBreakTimes bool) dto.ReportResult {
	res := dto.ReportResult{
		SummaryByDuty: make([]dto.DutySummary, 0, len(ag.summary)),
		DailyDetails:  make([]dto.DailyDetail, 0, len(ag.days)),
		Totals:        ag.totals,
	}

	for _, row := range ag.summary {
		res.SummaryByDuty = append(res.SummaryByDuty, *row)
	}
	sort.Slice(res.SummaryByDuty, func(i, j int) bool {
		a, b := res.SummaryByDuty[i], res.SummaryByDuty[j]
		if a.DutyName != b.DutyName {
			return a.DutyName < b.DutyName
		}
		return a.DutyID < b.DutyID
	})

	dayKeys := make([]string, 0, len(ag.days))
	for k := range ag.days {
		dayKeys = append(dayKeys, k)
	}
	sort.Strings(dayKeys) // date|locationId|eventId 自然键升序

	for _, dk := range dayKeys {
		day := ag.days[dk]
		detail := dto.DailyDetail{
			Date:         day.date,
			LocationID:   day.locationID,
			LocationName: day.locationName,
			EventID:      day.eventID,
			EventTitle:   day.eventTitle,
		}

		tts := make([]*taskTypeGroup, 0, len(day.taskTypes))
		for _, tt := range day.taskTypes {
			tts = append(tts, tt)
		}
		sort.Slice(tts, func(i, j int) bool {
			if tts[i].name != tts[j].name {
				return tts[i].name < tts[j].name
			}
			return tts[i].id < tts[j].id
		})

		for _, tt := range tts {
			ttd := dto.TaskTypeDetail{
				TaskTypeID:      tt.id,
				TaskTypeName:    tt.name,
				IsHourlyService: tt.isHourly,
			}
			wins := make([]*windowGroup, 0, len(tt.windows))
			for _, w := range tt.windows {
				wins = append(wins, w)
			}
			sort.Slice(wins, func(i, j int) bool {
				// 空起始时间排最前
				if wins[i].startTime != wins[j].startTime {
					return wins[i].startTime < wins[j].startTime
				}
				return wins[i].endTime < wins[j].endTime
			})
			for _, w := range wins {
				wd := dto.ShiftWindowDetail{
					StartTime:         w.startTime,
					EndTime:           w.endTime,
					HasScheduledBreak: w.hasScheduledBreak,
					TotalHours:        w.totalHours,
					NumberOfPeople:    w.numberOfPeople,
					Shifts:            w.shifts,
					OvertimeHours:     w.overtimeHours,
				}
				if w.actualStart != "" {
					wd.StartTime = w.actualStart
				}
				if w.actualEnd != "" {
					wd.EndTime = w.actualEnd
				}
				if showBreakTimes {
					wd.BreakStart = w.breakStart
					wd.BreakEnd = w.breakEnd
				}
				wd.Duties = make([]dto.DutyDetail, 0, len(w.dutyOrder))
				for _, id := range w.dutyOrder {
					wd.Duties = append(wd.Duties, *w.duties[id])
				}
				sort.Slice(wd.Duties, func(i, j int) bool {
					if wd.Duties[i].DutyName != wd.Duties[j].DutyName {
						return wd.Duties[i].DutyName < wd.Duties[j].DutyName
					}
					return wd.Duties[i].DutyID < wd.Duties[j].DutyID
				})
				ttd.Windows = append(ttd.Windows, wd)
			}
			detail.TaskTypes = append(detail.TaskTypes, ttd)
		}
		res.DailyDetails = append(res.DailyDetails, detail)
	}
	return res
}

// emptyReportResult 空报表壳：范围内无数据时依旧返回完整形态
func emptyReportResult() dto.ReportResult {
	return dto.ReportResult{
		SummaryByDuty: []dto.DutySummary{},
		DailyDetails:  []dto.DailyDetail{},
	}
}

// flattenDutyDetails 职务报表专用：职务层已固定，日明细折叠为任务类型合计
func flattenDutyDetails(details []dto.DailyDetail) []dto.DutyDailyDetail {
	out := make([]dto.DutyDailyDetail, 0, len(details))
	for _, d := range details {
		row := dto.DutyDailyDetail{
			Date:         d.Date,
			LocationID:   d.LocationID,
			LocationName: d.LocationName,
			EventID:      d.EventID,
			EventTitle:   d.EventTitle,
		}
		for _, tt := range d.TaskTypes {
			tot := dto.TaskTypeTotal{
				TaskTypeID:      tt.TaskTypeID,
				TaskTypeName:    tt.TaskTypeName,
				IsHourlyService: tt.IsHourlyService,
			}
			for _, w := range tt.Windows {
				tot.Hours += w.TotalHours
				tot.Shifts += w.Shifts
				tot.OvertimeHours += w.OvertimeHours
				tot.NumberOfPeople += w.NumberOfPeople
			}
			if !tt.IsHourlyService {
				tot.Hours = 0 // 班次制在汇总视图中抑制小时数
			}
			row.TaskTypes = append(row.TaskTypes, tot)
		}
		out = append(out, row)
	}
	return out
}

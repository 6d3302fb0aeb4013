package service

import (
	"strconv"
	"strings"
)

// ════════════════════════════════════════════
// 工时计算基础函数
// 所有函数对非法输入一律降级为 0，绝不报错：
// 时间串由运营人员手工录入，宽容策略优于中断整张报表
// ════════════════════════════════════════════

// parseClockMinutes 解析 "HH:MM" 为当日分钟数
// 格式非法（缺冒号、非数字、越界）时返回 (0, false)
func parseClockMinutes(s string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// HoursBetween 计算两个 HH:MM 时刻之间的小时数（十进制）
// 结束时刻小于等于开始时刻视为跨午夜，加 1440 分钟后再求差；
// 任一输入非法返回 0
func HoursBetween(start, end string) float64 {
	sm, ok := parseClockMinutes(start)
	if !ok {
		return 0
	}
	em, ok := parseClockMinutes(end)
	if !ok {
		return 0
	}
	diff := em - sm
	if diff <= 0 {
		diff += 1440 // 跨午夜
	}
	return float64(diff) / 60
}

// BreakInterval 休息区间（多段休息时的 JSON 单元）
type BreakInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BreakHours 计算单段休息时长
// 未启用休息或任一边界缺失返回 0，跨午夜规则同 HoursBetween
func BreakHours(hasBreak bool, breakStart, breakEnd *string) float64 {
	if !hasBreak || breakStart == nil || breakEnd == nil {
		return 0
	}
	return HoursBetween(*breakStart, *breakEnd)
}

// BreakListHours 计算多段休息总时长，每段独立做跨午夜修正
func BreakListHours(intervals []BreakInterval) float64 {
	var total float64
	for _, iv := range intervals {
		total += HoursBetween(iv.Start, iv.End)
	}
	return total
}

// ── 班次归类 ──

// ShiftCount 班次制服务的归类结果
type ShiftCount struct {
	Shifts        int
	OvertimeHours float64
}

// Classify 将单人工时归类为班次数 + 加班小时
// 名义班次时长缺失或非正时无法离散化，全部工时记为加班；
// 否则恒计 1 个班次，超出名义时长的部分全部记加班
// （超出多个名义时长也只计 1 班，这是既定计费口径）
func Classify(h float64, shiftHours *float64) ShiftCount {
	if shiftHours == nil || *shiftHours <= 0 {
		return ShiftCount{Shifts: 0, OvertimeHours: h}
	}
	if h <= *shiftHours {
		return ShiftCount{Shifts: 1, OvertimeHours: 0}
	}
	return ShiftCount{Shifts: 1, OvertimeHours: h - *shiftHours}
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/service"
	"github.com/leonardodellacroce/TeatriApuani-sub001/pkg/response"
)

const icsContentType = "text/calendar; charset=utf-8"

// CalendarHandler 个人排班日历订阅源 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// MyCalendar 当前用户的排班日历
// GET /api/v1/calendar/me?start_date=2026-07-01&end_date=2026-07-31（区间可选）
func (h *CalendarHandler) MyCalendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	h.serveCalendar(c, userID)
}

// UserCalendar 指定用户的排班日历（管理员/经理）
// GET /api/v1/calendar/users/:id
func (h *CalendarHandler) UserCalendar(c *gin.Context) {
	h.serveCalendar(c, c.Param("id"))
}

func (h *CalendarHandler) serveCalendar(c *gin.Context, userID string) {
	start, ok := parseOptionalDate(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseOptionalDate(c, "end_date")
	if !ok {
		return
	}

	content, err := h.calendarSvc.EmployeeCalendar(c.Request.Context(), userID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCalendarUserNotFound):
			response.NotFound(c, 28001, "用户不存在")
		case errors.Is(err, service.ErrCalendarRangeInvalid):
			response.BadRequest(c, 28002, "日期区间不合法")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", "attachment; filename=turni.ics")
	c.Data(http.StatusOK, icsContentType, []byte(content))
}

// parseOptionalDate 解析可选的 YYYY-MM-DD 查询参数，缺省返回零值
func parseOptionalDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(c, 10001, name+" 格式不合法")
		return time.Time{}, false
	}
	return t, true
}

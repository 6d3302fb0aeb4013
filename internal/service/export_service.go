package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/dto"
)

// ── 导出模块错误 ──

var (
	ErrExportUnknownType  = errors.New("未知的报表类型")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// 报表类型标识（与 HTTP 路径段一致）
const (
	ReportTypeClient   = "cliente"
	ReportTypeEvent    = "evento"
	ReportTypeDuty     = "mansione"
	ReportTypeCompany  = "azienda"
	ReportTypeEmployee = "dipendente"
)

// ExportService 工时报表导出为 Excel (.xlsx)
//
// 设计说明：
//   - 导出复用 ReportService 的聚合结果，不重复实现统计口径
//   - 以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 汇总写入"汇总"Sheet，日明细写入"日明细"Sheet
type ExportService interface {
	ExportReport(ctx context.Context, reportType string, q dto.ReportQuery) (*bytes.Buffer, string, error)
}

type exportService struct {
	reports ReportService
	logger  *zap.Logger
}

// NewExportService 创建导出服务实例
func NewExportService(reports ReportService, logger *zap.Logger) ExportService {
	return &exportService{reports: reports, logger: logger}
}

func (s *exportService) ExportReport(ctx context.Context, reportType string, q dto.ReportQuery) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	var title string
	var err error
	switch reportType {
	case ReportTypeClient:
		var resp *dto.ClientReportResponse
		if resp, err = s.reports.ClientReport(ctx, q); err == nil {
			title = resp.ClientName
			s.writeSummarySheet(f, resp.SummaryByDuty, resp.Totals)
			s.writeDetailSheet(f, resp.DailyDetails)
		}
	case ReportTypeEvent:
		var resp *dto.EventReportResponse
		if resp, err = s.reports.EventReport(ctx, q); err == nil {
			title = resp.EventTitle
			s.writeSummarySheet(f, resp.SummaryByDuty, resp.Totals)
			s.writeDetailSheet(f, resp.DailyDetails)
		}
	case ReportTypeDuty:
		var resp *dto.DutyReportResponse
		if resp, err = s.reports.DutyReport(ctx, q); err == nil {
			title = resp.DutyName
			s.writeDutySheet(f, resp)
		}
	case ReportTypeCompany:
		var resp *dto.CompanyReportResponse
		if resp, err = s.reports.CompanyReport(ctx, q); err == nil {
			title = "aziende"
			s.writeCompanySheet(f, resp)
		}
	case ReportTypeEmployee:
		var resp *dto.EmployeeReportResponse
		if resp, err = s.reports.EmployeeReport(ctx, q); err == nil {
			title = "dipendenti"
			s.writeEmployeeSheet(f, resp)
		}
	default:
		return nil, "", ErrExportUnknownType
	}
	if err != nil {
		return nil, "", err
	}

	f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	filename := fmt.Sprintf("report_%s_%s_%s_%s.xlsx", reportType, sanitizeFilename(title), q.StartDate, q.EndDate)
	return buf, filename, nil
}

// writeSummarySheet 职务汇总 Sheet
func (s *exportService) writeSummarySheet(f *excelize.File, summary []dto.DutySummary, totals dto.ReportTotals) {
	const sheet = "汇总"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "E", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"职务", "编码", "小时", "班次", "加班小时"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	row := 2
	for _, d := range summary {
		f.SetCellValue(sheet, cell("A", row), d.DutyName)
		f.SetCellValue(sheet, cell("B", row), d.DutyCode)
		f.SetCellValue(sheet, cell("C", row), d.Hours)
		f.SetCellValue(sheet, cell("D", row), d.Shifts)
		f.SetCellValue(sheet, cell("E", row), d.OvertimeHours)
		row++
	}
	f.SetCellValue(sheet, cell("A", row), "合计")
	f.SetCellValue(sheet, cell("C", row), totals.Hours)
	f.SetCellValue(sheet, cell("D", row), totals.Shifts)
	f.SetCellValue(sheet, cell("E", row), totals.OvertimeHours)
}

// writeDetailSheet 日明细 Sheet，窗口逐行展开
func (s *exportService) writeDetailSheet(f *excelize.File, details []dto.DailyDetail) {
	const sheet = "日明细"
	f.NewSheet(sheet)
	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "D", 22)
	f.SetColWidth(sheet, "E", "J", 12)

	headers := []string{"日期", "活动", "地点", "任务类型", "开始", "结束", "人数", "小时", "班次", "加班小时"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 1), h)
	}

	row := 2
	for _, d := range details {
		for _, tt := range d.TaskTypes {
			for _, w := range tt.Windows {
				f.SetCellValue(sheet, cell("A", row), d.Date)
				f.SetCellValue(sheet, cell("B", row), d.EventTitle)
				f.SetCellValue(sheet, cell("C", row), d.LocationName)
				f.SetCellValue(sheet, cell("D", row), tt.TaskTypeName)
				f.SetCellValue(sheet, cell("E", row), w.StartTime)
				f.SetCellValue(sheet, cell("F", row), w.EndTime)
				f.SetCellValue(sheet, cell("G", row), w.NumberOfPeople)
				f.SetCellValue(sheet, cell("H", row), w.TotalHours)
				f.SetCellValue(sheet, cell("I", row), w.Shifts)
				f.SetCellValue(sheet, cell("J", row), w.OvertimeHours)
				row++
			}
		}
	}
}

// writeDutySheet 职务报表：任务类型合计逐行
func (s *exportService) writeDutySheet(f *excelize.File, resp *dto.DutyReportResponse) {
	const sheet = "日明细"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.SetColWidth(sheet, "A", "D", 20)
	f.SetColWidth(sheet, "E", "H", 12)

	headers := []string{"日期", "活动", "地点", "任务类型", "小时", "班次", "加班小时", "人数"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 1), h)
	}
	row := 2
	for _, d := range resp.DailyDetails {
		for _, tt := range d.TaskTypes {
			f.SetCellValue(sheet, cell("A", row), d.Date)
			f.SetCellValue(sheet, cell("B", row), d.EventTitle)
			f.SetCellValue(sheet, cell("C", row), d.LocationName)
			f.SetCellValue(sheet, cell("D", row), tt.TaskTypeName)
			f.SetCellValue(sheet, cell("E", row), tt.Hours)
			f.SetCellValue(sheet, cell("F", row), tt.Shifts)
			f.SetCellValue(sheet, cell("G", row), tt.OvertimeHours)
			f.SetCellValue(sheet, cell("H", row), tt.NumberOfPeople)
			row++
		}
	}
	f.SetCellValue(sheet, cell("A", row), "合计")
	f.SetCellValue(sheet, cell("E", row), resp.Totals.Hours)
	f.SetCellValue(sheet, cell("F", row), resp.Totals.Shifts)
	f.SetCellValue(sheet, cell("G", row), resp.Totals.OvertimeHours)
}

// writeCompanySheet 劳务公司报表：每公司一段职务汇总
func (s *exportService) writeCompanySheet(f *excelize.File, resp *dto.CompanyReportResponse) {
	const sheet = "汇总"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.SetColWidth(sheet, "A", "B", 26)
	f.SetColWidth(sheet, "C", "E", 14)

	headers := []string{"公司", "职务", "小时", "班次", "加班小时"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 1), h)
	}
	row := 2
	for _, sub := range resp.Companies {
		for _, d := range sub.SummaryByDuty {
			f.SetCellValue(sheet, cell("A", row), sub.CompanyName)
			f.SetCellValue(sheet, cell("B", row), d.DutyName)
			f.SetCellValue(sheet, cell("C", row), d.Hours)
			f.SetCellValue(sheet, cell("D", row), d.Shifts)
			f.SetCellValue(sheet, cell("E", row), d.OvertimeHours)
			row++
		}
		f.SetCellValue(sheet, cell("A", row), sub.CompanyName+" 合计")
		f.SetCellValue(sheet, cell("C", row), sub.Totals.Hours)
		f.SetCellValue(sheet, cell("D", row), sub.Totals.Shifts)
		f.SetCellValue(sheet, cell("E", row), sub.Totals.OvertimeHours)
		row++
	}
	f.SetCellValue(sheet, cell("A", row), "总合计")
	f.SetCellValue(sheet, cell("C", row), resp.Totals.Hours)
	f.SetCellValue(sheet, cell("D", row), resp.Totals.Shifts)
	f.SetCellValue(sheet, cell("E", row), resp.Totals.OvertimeHours)
}

// writeEmployeeSheet 员工报表：逐人明细行 + 人均合计行
func (s *exportService) writeEmployeeSheet(f *excelize.File, resp *dto.EmployeeReportResponse) {
	const sheet = "明细"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.SetColWidth(sheet, "A", "C", 22)
	f.SetColWidth(sheet, "D", "G", 12)

	headers := []string{"员工", "日期", "活动", "小时", "班次", "加班小时", "备注"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 1), h)
	}
	row := 2
	for _, emp := range resp.Employees {
		for _, e := range emp.Entries {
			f.SetCellValue(sheet, cell("A", row), emp.UserName)
			f.SetCellValue(sheet, cell("B", row), e.Date)
			f.SetCellValue(sheet, cell("C", row), e.EventTitle)
			f.SetCellValue(sheet, cell("D", row), e.Hours)
			f.SetCellValue(sheet, cell("E", row), e.Shifts)
			f.SetCellValue(sheet, cell("F", row), e.OvertimeHours)
			f.SetCellValue(sheet, cell("G", row), e.Notes)
			row++
		}
		f.SetCellValue(sheet, cell("A", row), emp.UserName+" 合计")
		f.SetCellValue(sheet, cell("D", row), emp.Totals.Hours)
		f.SetCellValue(sheet, cell("E", row), emp.Totals.Shifts)
		f.SetCellValue(sheet, cell("F", row), emp.Totals.OvertimeHours)
		row++
	}
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// sanitizeFilename 替换文件名中的非法字符
func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case ' ', '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
)

func newTestExportService(repo *repository.Repository) ExportService {
	return NewExportService(newTestReportService(repo), zap.NewNop())
}

// 客户报表导出：汇总与日明细两个 Sheet，内容可回读
func TestExportReport_Client(t *testing.T) {
	repo := newMockRepository()
	seedClientScope(t, repo, "2026-07-10")
	hourly := &model.TaskType{TaskTypeID: "tt1", Name: "Palcoscenico", Type: model.TaskTypeShift, IsHourlyService: true}
	_ = repo.TaskType.Create(context.Background(), hourly)
	_ = repo.Assignment.Create(context.Background(), &model.Assignment{
		AssignmentID:  "a1",
		WorkdayID:     "w1",
		TaskTypeID:    "tt1",
		TaskType:      hourly,
		StartTime:     "09:00",
		EndTime:       "18:00",
		AssignedUsers: `[{"userId":"u1","dutyId":"d1"}]`,
		TimeEntries: []model.TimeEntry{
			{TimeEntryID: "te1", AssignmentID: "a1", UserID: "u1", HoursWorked: 8},
		},
	})

	q := baseQuery()
	q.ClientID = "c1"
	buf, filename, err := newTestExportService(repo).ExportReport(context.Background(), ReportTypeClient, q)
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if buf == nil || buf.Len() == 0 {
		t.Fatal("导出的 Excel buffer 不应为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾: %s", filename)
	}
	if strings.Contains(filename, " ") {
		t.Errorf("文件名不应包含空格: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("回读 xlsx 失败: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("汇总", "A2")
	if err != nil {
		t.Fatalf("读取单元格失败: %v", err)
	}
	if got != "Macchinista" {
		t.Errorf("汇总首行职务期望 Macchinista，实际 %q", got)
	}
	rows, err := f.GetRows("日明细")
	if err != nil {
		t.Fatalf("读取日明细失败: %v", err)
	}
	// 表头 + 一个时间窗口
	if len(rows) != 2 {
		t.Fatalf("日明细行数期望 2，实际 %d", len(rows))
	}
	if rows[1][0] != "2026-07-10" {
		t.Errorf("日明细日期期望 2026-07-10，实际 %q", rows[1][0])
	}
}

// 未知报表类型
func TestExportReport_UnknownType(t *testing.T) {
	repo := newMockRepository()
	seedClientScope(t, repo, "2026-07-10")

	q := baseQuery()
	q.ClientID = "c1"
	_, _, err := newTestExportService(repo).ExportReport(context.Background(), "settimanale", q)
	if !errors.Is(err, ErrExportUnknownType) {
		t.Fatalf("期望 ErrExportUnknownType，实际 %v", err)
	}
}

// 报表层错误原样向上传递
func TestExportReport_PropagatesReportErrors(t *testing.T) {
	repo := newMockRepository()
	seedClientScope(t, repo, "2026-07-10")

	q := baseQuery()
	q.ClientID = "missing"
	_, _, err := newTestExportService(repo).ExportReport(context.Background(), ReportTypeClient, q)
	if !errors.Is(err, ErrReportClientNotFound) {
		t.Fatalf("期望 ErrReportClientNotFound，实际 %v", err)
	}
}

// 空报表仍产出合法工作簿（仅表头与合计行）
func TestExportReport_EmptyReport(t *testing.T) {
	repo := newMockRepository()
	seedClientScope(t, repo, "2026-07-10")

	q := baseQuery()
	q.ClientID = "c1"
	buf, _, err := newTestExportService(repo).ExportReport(context.Background(), ReportTypeClient, q)
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	// xlsx 以 PK (0x504B) 开头
	if buf.Len() < 2 || buf.Bytes()[0] != 0x50 || buf.Bytes()[1] != 0x4B {
		t.Error("输出内容不是有效的 xlsx 文件格式（应以 PK 开头）")
	}
}

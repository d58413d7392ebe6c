package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tebita/resourcehub/internal/mne/entity"
	"github.com/tebita/resourcehub/internal/mne/kpi"
	"github.com/tebita/resourcehub/internal/mne/repository"
	"github.com/tebita/resourcehub/internal/mne/sla"
)

// ExportService 报表导出服务
type ExportService struct {
	requestRepo *repository.RequestRepository
}

// NewExportService 创建报表导出服务
func NewExportService(requestRepo *repository.RequestRepository) *ExportService {
	return &ExportService{requestRepo: requestRepo}
}

var complianceExportHeaders = []string{
	"Code", "Resource Type", "Priority", "Status", "Created",
	"Response Deadline", "Actual Response", "Completion Deadline", "Actual Completion",
	"SLA Status", "Response Met", "Completion Met", "Delay (h)", "Reason For Delay",
}

// ExportCompliance 导出SLA合规明细工作簿
func (s *ExportService) ExportCompliance(ctx context.Context, filter repository.ReportFilter) (*excelize.File, string, error) {
	requests, err := s.requestRepo.ListForReport(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "SLA Compliance"
	f.SetSheetName("Sheet1", sheet)

	// 表头样式: 加粗
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	// 写入表头
	for i, h := range complianceExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	now := time.Now()
	const timeLayout = "2006-01-02 15:04"
	setTime := func(cell string, t *time.Time) {
		if t != nil {
			f.SetCellValue(sheet, cell, t.Format(timeLayout))
		}
	}

	// 写入数据行
	for rowIdx, req := range requests {
		row := rowIdx + 2
		rep := sla.ComplianceOf(req)

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), req.Code)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(req.ResourceType))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(req.Priority))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), string(req.Status))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), req.CreatedAt.Format(timeLayout))
		setTime(fmt.Sprintf("F%d", row), req.SLAResponseDeadline)
		setTime(fmt.Sprintf("G%d", row), req.ActualResponseTime)
		setTime(fmt.Sprintf("H%d", row), req.SLACompletionDeadline)
		setTime(fmt.Sprintf("I%d", row), req.ActualCompletionTime)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), string(sla.Classify(req, now)))
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), boolMark(rep.ResponseMet))
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), boolMark(rep.CompletionMet))
		if rep.CompletionDelay > 0 {
			f.SetCellValue(sheet, fmt.Sprintf("M%d", row), rep.CompletionDelay)
		}
		f.SetCellValue(sheet, fmt.Sprintf("N%d", row), req.ReasonForDelay)
	}

	// 底部汇总行
	compliance := kpi.Compliance(requests, kpi.Options{IncludeActiveOverdue: true, Now: now})
	summaryRow := len(requests) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Summary")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("Requests: %d", len(requests)))
	f.SetCellValue(sheet, fmt.Sprintf("J%d", summaryRow), fmt.Sprintf("Compliance: %.2f%%", compliance.Rate))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("N%d", summaryRow), summaryStyle)

	filename := fmt.Sprintf("sla_compliance_%s.xlsx", now.Format("20060102_150405"))
	return f, filename, nil
}

func boolMark(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "YES"
	}
	return "NO"
}

// ExportScorecard 导出记分卡工作簿
func (s *ExportService) ExportScorecard(ctx context.Context, cards []entity.Scorecard) (*excelize.File, string, error) {
	f := excelize.NewFile()
	sheet := "Scorecards"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})

	headers := []string{"Period Start", "Period End", "Efficiency", "Compliance", "Cost", "Satisfaction", "Total", "Rating"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, sc := range cards {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), sc.PeriodStart.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sc.PeriodEnd.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), sc.ServiceEfficiencyScore)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), sc.ComplianceScore)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), sc.CostOptimizationScore)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), sc.SatisfactionScore)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), sc.TotalScore)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), string(sc.Rating))
	}

	filename := fmt.Sprintf("scorecards_%s.xlsx", time.Now().Format("20060102_150405"))
	return f, filename, nil
}

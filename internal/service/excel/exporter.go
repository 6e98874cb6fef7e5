package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"finhealth/internal/model"
)

const (
	SummarySheet  = "Summary"
	RatiosSheet   = "Ratios"
	AdvisorySheet = "Advisory"
)

// Exporter 分析结果导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export 将一次分析导出为工作簿：概要、比率与贡献、建议报告
func (e *Exporter) Export(a *model.Analysis) (*excelize.File, error) {
	if a == nil {
		return nil, fmt.Errorf("nil analysis")
	}

	f := excelize.NewFile()
	if err := e.build(f, a); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// build 在新建的工作簿上写入三个 sheet
func (e *Exporter) build(f *excelize.File, a *model.Analysis) error {
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(RatiosSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(AdvisorySheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}

	r := a.Record
	summary := [][]interface{}{
		{"Item", "Value"},
		{"Company", a.CompanyName},
		{"Period", a.Period},
		{"Total Income", r.TotalIncome},
		{"Gross Profit", r.GrossProfit},
		{"Administrative Expenses", r.AdminExpenses},
		{"Distribution Costs", r.DistributionCosts},
		{"Finance Costs", r.FinanceCosts},
		{"Net Profit", r.NetProfit},
		{"Weighted Score", a.ScoreCard.Score},
		{"Category", string(a.ScoreCard.Category)},
		{"Suggestion", a.ScoreCard.Suggestion},
	}
	if err := writeRows(f, SummarySheet, summary); err != nil {
		return err
	}

	ratios := [][]interface{}{
		{"Metric", "Ratio (%)", "Contribution"},
		{"Net Profit Margin", a.Ratios.NetProfitMargin, contribution(a, "net_profit_margin")},
		{"Expense Ratio", a.Ratios.ExpenseRatio, contribution(a, "expense_ratio")},
		{"Gross Profit Margin", a.Ratios.GrossProfitMargin, contribution(a, "gross_profit_margin")},
		{"Finance Cost Ratio", a.Ratios.FinanceCostRatio, contribution(a, "finance_cost_ratio")},
		{"Revenue Growth Rate", a.Ratios.RevenueGrowthRate, contribution(a, "revenue_growth_rate")},
		{"Total", "", a.ScoreCard.Score},
	}
	if err := writeRows(f, RatiosSheet, ratios); err != nil {
		return err
	}

	advisory := [][]interface{}{{"Section", "Advice"}}
	for _, s := range a.Advisory.Sections {
		advisory = append(advisory, []interface{}{s.Title, s.Text})
	}
	if err := writeRows(f, AdvisorySheet, advisory); err != nil {
		return err
	}

	for _, sheet := range []string{SummarySheet, RatiosSheet, AdvisorySheet} {
		_ = f.SetRowStyle(sheet, 1, 1, headerStyle)
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 28)
	_ = f.SetColWidth(SummarySheet, "B", "B", 60)
	_ = f.SetColWidth(RatiosSheet, "A", "C", 22)
	_ = f.SetColWidth(AdvisorySheet, "A", "A", 22)
	_ = f.SetColWidth(AdvisorySheet, "B", "B", 120)

	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func contribution(a *model.Analysis, metric string) float64 {
	for _, c := range a.ScoreCard.Contributions {
		if c.Metric == metric {
			return c.Value
		}
	}
	return 0
}

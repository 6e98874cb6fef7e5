package analysis

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhealth/internal/model"
	"finhealth/internal/parser"
	"finhealth/internal/service/calculator"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(calculator.NewEngine(calculator.DefaultWeights()), nil)
}

// 模拟会计软件导出的损益表：标签与数值分散在不同列，含空白与合并单元格残留
func statementGrid() model.Grid {
	return model.GridFromValues([][]any{
		{nil, "ABC Traders (Pvt) Ltd", nil, nil, nil},
		{nil, "Profit & Loss Statement", nil, nil, nil},
		{nil, nil, nil, "2024", "2025"},
		{"", "TOTAL  INCOME", nil, 950_000.0, 1_000_000.0},
		{nil, "Cost of Sales", nil, 580_000.0, 600_000.0},
		{nil, "Gross Profit", nil, nil, 400_000.0},
		{nil, "Administrative Expenses", nil, nil, nil},
		{nil, "  Salaries", nil, nil, 70_000.0},
		{nil, "Total ADMINISTRATIVE EXPENSES", nil, nil, 100_000.0},
		{nil, "Total DISTRIBUTION COSTS", nil, nil, "50,000"},
		{nil, "Total FINANCE AND OTHER", nil, nil, 50_000.0},
		{nil, "Revenue Growth", nil, nil, 5.0},
	})
}

func TestAnalyze_EndToEnd(t *testing.T) {
	a := newTestAnalyzer()

	var stages []string
	result, err := a.Analyze(statementGrid(), Options{
		CompanyName: "ABC Traders",
		Period:      "FY2025",
		Progress:    func(e ProgressEvent) { stages = append(stages, e.Stage) },
	})
	require.NoError(t, err)

	r := result.Record
	assert.Equal(t, 1_000_000.0, r.TotalIncome)
	assert.Equal(t, 400_000.0, r.GrossProfit)
	assert.Equal(t, 100_000.0, r.AdminExpenses)
	assert.Equal(t, 50_000.0, r.DistributionCosts)
	assert.Equal(t, 50_000.0, r.FinanceCosts)
	assert.Equal(t, 200_000.0, r.NetProfit)
	assert.Equal(t, 5.0, r.RevenueGrowthRate)
	assert.Equal(t, "ABC Traders", r.CompanyName)

	assert.InDelta(t, 20.0, result.Ratios.NetProfitMargin, 1e-9)
	assert.InDelta(t, 20.0, result.Ratios.ExpenseRatio, 1e-9)
	assert.InDelta(t, 40.0, result.Ratios.GrossProfitMargin, 1e-9)
	assert.InDelta(t, 5.0, result.Ratios.FinanceCostRatio, 1e-9)

	assert.Equal(t, 48.2, result.ScoreCard.Score)
	assert.Equal(t, model.CategoryLow, result.ScoreCard.Category)
	assert.Len(t, result.ScoreCard.Contributions, 5)
	assert.Len(t, result.Advisory.Sections, 6)

	assert.Equal(t, []string{"extract", "score", "advise", "done"}, stages)
	require.Len(t, result.Extracted, 6)
	assert.Equal(t, model.FieldTotalIncome, result.Extracted[0].Field)
	assert.Equal(t, 3, result.Extracted[0].Row)
	assert.Equal(t, 4, result.Extracted[0].Column)
}

func TestAnalyze_GrowthOverrideWins(t *testing.T) {
	a := newTestAnalyzer()
	growth := 12.0

	result, err := a.Analyze(statementGrid(), Options{GrowthRate: &growth})
	require.NoError(t, err)
	assert.Equal(t, 12.0, result.Ratios.RevenueGrowthRate)
	assert.Equal(t, "Unknown", result.CompanyName)
	assert.Equal(t, "N/A", result.Period)
}

func TestAnalyze_MissingGrowthDefaultsToZero(t *testing.T) {
	a := newTestAnalyzer()
	grid := model.GridFromValues([][]any{
		{"Total Revenue", 200.0},
		{"Gross Profit", 80.0},
	})

	result, err := a.Analyze(grid, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Ratios.RevenueGrowthRate)
	assert.Equal(t, 0.0, result.Record.FinanceCosts)
	assert.False(t, result.Extracted[4].Found)
}

func TestAnalyze_ExtractionNotFound(t *testing.T) {
	a := newTestAnalyzer()

	tests := map[string]model.Grid{
		"no income": model.GridFromValues([][]any{
			{"Gross Profit", 10.0},
		}),
		"no gross profit": model.GridFromValues([][]any{
			{"Total Income", 10.0},
		}),
		"zero income": model.GridFromValues([][]any{
			{"Total Income", 0.0},
			{"Gross Profit", 10.0},
		}),
		"empty grid": model.NewGrid(nil),
	}
	for name, grid := range tests {
		_, err := a.Analyze(grid, Options{})
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrExtractionNotFound), name)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	growth := 7.5
	run := func() []byte {
		a := NewAnalyzer(calculator.NewEngine(calculator.DefaultWeights()), nil)
		result, err := a.Analyze(statementGrid(), Options{CompanyName: "ABC", GrowthRate: &growth})
		require.NoError(t, err)
		data, err := json.Marshal(result)
		require.NoError(t, err)
		return data
	}

	first := run()
	second := run()
	assert.Equal(t, string(first), string(second))
}

func TestAnalyze_LeavesIdentityToCaller(t *testing.T) {
	result, err := newTestAnalyzer().Analyze(statementGrid(), Options{})
	require.NoError(t, err)
	assert.Empty(t, result.ID)
	assert.True(t, result.CreatedAt.IsZero())
}

func TestAnalyze_RejectsNonFiniteGrowth(t *testing.T) {
	a := newTestAnalyzer()
	for _, g := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		growth := g
		_, err := a.Analyze(statementGrid(), Options{GrowthRate: &growth})
		assert.ErrorIs(t, err, ErrInvalidGrowthRate)
	}
}

func TestAnalyze_CustomQueries(t *testing.T) {
	queries := parser.WithOverrides(parser.DefaultQueries(), map[model.Field][]string{
		model.FieldTotalIncome: {"Turnover"},
	})
	a := NewAnalyzer(calculator.NewEngine(calculator.DefaultWeights()), queries)

	grid := model.GridFromValues([][]any{
		{"Turnover", 500.0},
		{"Gross Profit", 250.0},
	})
	result, err := a.Analyze(grid, Options{})
	require.NoError(t, err)
	assert.Equal(t, 500.0, result.Record.TotalIncome)
}

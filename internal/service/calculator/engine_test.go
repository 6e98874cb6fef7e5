package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhealth/internal/model"
)

func referenceRecord() model.FinancialRecord {
	return model.NewFinancialRecord(1_000_000, 400_000, 100_000, 50_000, 50_000, 5)
}

func TestCalculateRatios_ReferenceStatement(t *testing.T) {
	record := referenceRecord()
	require.Equal(t, 200_000.0, record.NetProfit)

	ratios := CalculateRatios(record)
	assert.InDelta(t, 20.0, ratios.NetProfitMargin, 1e-9)
	assert.InDelta(t, 20.0, ratios.ExpenseRatio, 1e-9)
	assert.InDelta(t, 40.0, ratios.GrossProfitMargin, 1e-9)
	assert.InDelta(t, 5.0, ratios.FinanceCostRatio, 1e-9)
	assert.Equal(t, 5.0, ratios.RevenueGrowthRate)
}

func TestScore_ReferenceStatement(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	_, card := engine.Evaluate(referenceRecord())

	// 20*0.196 + 80*0.202 + 40*0.198 + 95*0.202 + 5*0.202
	assert.Equal(t, 48.2, card.Score)
	assert.Equal(t, model.CategoryLow, card.Category)
	assert.Equal(t, BaseSuggestion(model.CategoryLow), card.Suggestion)

	want := []model.Contribution{
		{Metric: "net_profit_margin", Label: "Net Profit Margin", Value: 3.92},
		{Metric: "expense_ratio", Label: "Expense Ratio (Inverted)", Value: 16.16},
		{Metric: "gross_profit_margin", Label: "Gross Profit Margin", Value: 7.92},
		{Metric: "finance_cost_ratio", Label: "Finance Cost Ratio (Inverted)", Value: 19.19},
		{Metric: "revenue_growth_rate", Label: "Revenue Growth Rate", Value: 1.01},
	}
	assert.Equal(t, want, card.Contributions)
}

func TestScore_Deterministic(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	r1, c1 := engine.Evaluate(referenceRecord())
	r2, c2 := engine.Evaluate(referenceRecord())
	assert.Equal(t, r1, r2)
	assert.Equal(t, c1, c2)
}

func TestScore_HighAndUnboundedBelow(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	_, high := engine.Evaluate(model.NewFinancialRecord(100, 100, 0, 0, 0, 100))
	assert.Equal(t, 100.0, high.Score)
	assert.Equal(t, model.CategoryHigh, high.Category)

	// 费用远超收入时总分可为负
	_, low := engine.Evaluate(model.NewFinancialRecord(100, 10, 500, 100, 300, -20))
	assert.Less(t, low.Score, 0.0)
	assert.Equal(t, model.CategoryLow, low.Category)
}

func TestCalculateRatios_ZeroIncomeGuard(t *testing.T) {
	ratios := CalculateRatios(model.NewFinancialRecord(0, 100, 10, 10, 10, 3))
	assert.Equal(t, model.RatioSet{RevenueGrowthRate: 3}, ratios)
}

func TestCategorize_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  model.Category
	}{
		{80.00, model.CategoryHigh},
		{79.99, model.CategoryMedium},
		{50.00, model.CategoryMedium},
		{49.99, model.CategoryLow},
		{-12.5, model.CategoryLow},
	}
	for _, tt := range tests {
		got, suggestion := Categorize(tt.score)
		assert.Equal(t, tt.want, got, "score %.2f", tt.score)
		assert.NotEmpty(t, suggestion)
	}
}

package calculator

import (
	"math"

	"finhealth/internal/model"
)

// Engine 比率与加权评分引擎
type Engine struct {
	weights Weights
}

// NewEngine 创建计算引擎，权重应已由 NewWeights 归一化
func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

// Evaluate 计算比率、评分与等级
func (e *Engine) Evaluate(record model.FinancialRecord) (model.RatioSet, model.ScoreCard) {
	ratios := CalculateRatios(record)
	return ratios, e.Score(ratios)
}

// CalculateRatios 计算各比率（占总收入百分比）
func CalculateRatios(r model.FinancialRecord) model.RatioSet {
	return model.RatioSet{
		NetProfitMargin:   percentOf(r.NetProfit, r.TotalIncome),
		ExpenseRatio:      percentOf(r.OperatingCosts(), r.TotalIncome),
		GrossProfitMargin: percentOf(r.GrossProfit, r.TotalIncome),
		FinanceCostRatio:  percentOf(r.FinanceCosts, r.TotalIncome),
		RevenueGrowthRate: r.RevenueGrowthRate,
	}
}

// Score 计算加权总分
// 费用率和财务费用率为反向指标，取 100 - x 后参与加权；单项贡献先保留两位小数再求和
func (e *Engine) Score(ratios model.RatioSet) model.ScoreCard {
	w := e.weights
	contributions := []model.Contribution{
		{Metric: "net_profit_margin", Label: "Net Profit Margin", Value: round2(ratios.NetProfitMargin * w.NetProfitMargin)},
		{Metric: "expense_ratio", Label: "Expense Ratio (Inverted)", Value: round2((100 - ratios.ExpenseRatio) * w.ExpenseRatio)},
		{Metric: "gross_profit_margin", Label: "Gross Profit Margin", Value: round2(ratios.GrossProfitMargin * w.GrossProfitMargin)},
		{Metric: "finance_cost_ratio", Label: "Finance Cost Ratio (Inverted)", Value: round2((100 - ratios.FinanceCostRatio) * w.FinanceCostRatio)},
		{Metric: "revenue_growth_rate", Label: "Revenue Growth Rate", Value: round2(ratios.RevenueGrowthRate * w.RevenueGrowthRate)},
	}

	total := 0.0
	for _, c := range contributions {
		total += c.Value
	}
	score := round2(total)

	category, suggestion := Categorize(score)
	return model.ScoreCard{
		Score:         score,
		Category:      category,
		Suggestion:    suggestion,
		Contributions: contributions,
	}
}

// percentOf 计算百分比，分母为 0 时返回 0
func percentOf(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package calculator

import (
	"errors"
	"fmt"
	"math"
)

const weightTolerance = 1e-6

// Weights 各指标权重，构造后按值传递，不再修改
type Weights struct {
	NetProfitMargin   float64 `json:"netProfitMargin" toml:"net_profit_margin"`
	ExpenseRatio      float64 `json:"expenseRatio" toml:"expense_ratio"`
	GrossProfitMargin float64 `json:"grossProfitMargin" toml:"gross_profit_margin"`
	FinanceCostRatio  float64 `json:"financeCostRatio" toml:"finance_cost_ratio"`
	RevenueGrowthRate float64 `json:"revenueGrowthRate" toml:"revenue_growth_rate"`
}

// ExpertWeights 专家权重（未归一化）
var ExpertWeights = Weights{
	NetProfitMargin:   0.196,
	ExpenseRatio:      0.202,
	GrossProfitMargin: 0.198,
	FinanceCostRatio:  0.202,
	RevenueGrowthRate: 0.202,
}

var defaultWeights = mustWeights(ExpertWeights)

// DefaultWeights 归一化后的专家权重
func DefaultWeights() Weights {
	return defaultWeights
}

// NewWeights 校验并归一化权重，总和偏离 1 超过 1e-6 时按比例缩放
func NewWeights(w Weights) (Weights, error) {
	for name, v := range w.values() {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return Weights{}, fmt.Errorf("invalid weight %s: %v", name, v)
		}
	}

	sum := w.Sum()
	if sum == 0 {
		return Weights{}, errors.New("weights sum to zero")
	}
	if math.Abs(sum-1.0) <= weightTolerance {
		return w, nil
	}

	return Weights{
		NetProfitMargin:   w.NetProfitMargin / sum,
		ExpenseRatio:      w.ExpenseRatio / sum,
		GrossProfitMargin: w.GrossProfitMargin / sum,
		FinanceCostRatio:  w.FinanceCostRatio / sum,
		RevenueGrowthRate: w.RevenueGrowthRate / sum,
	}, nil
}

// Sum 权重总和
func (w Weights) Sum() float64 {
	return w.NetProfitMargin + w.ExpenseRatio + w.GrossProfitMargin + w.FinanceCostRatio + w.RevenueGrowthRate
}

func (w Weights) values() map[string]float64 {
	return map[string]float64{
		"net_profit_margin":   w.NetProfitMargin,
		"expense_ratio":       w.ExpenseRatio,
		"gross_profit_margin": w.GrossProfitMargin,
		"finance_cost_ratio":  w.FinanceCostRatio,
		"revenue_growth_rate": w.RevenueGrowthRate,
	}
}

func mustWeights(w Weights) Weights {
	out, err := NewWeights(w)
	if err != nil {
		panic(err)
	}
	return out
}

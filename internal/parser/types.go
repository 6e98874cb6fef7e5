package parser

import "finhealth/internal/model"

// LabelQuery 单个字段的候选标签（按优先级排列的同义词）
type LabelQuery struct {
	Field  model.Field `json:"field"`
	Labels []string    `json:"labels"`
}

// Match 标签匹配结果
type Match struct {
	Value  float64 `json:"value"`
	Found  bool    `json:"found"`
	Label  string  `json:"label,omitempty"`
	Row    int     `json:"row"`
	Column int     `json:"column"`
}

func notFound() Match {
	return Match{Row: -1, Column: -1}
}

var defaultQueries = []LabelQuery{
	{Field: model.FieldTotalIncome, Labels: []string{"Total Income", "Total Revenue", "Income"}},
	{Field: model.FieldGrossProfit, Labels: []string{"Gross Profit"}},
	{Field: model.FieldAdminExpenses, Labels: []string{"Total ADMINISTRATIVE EXPENSES", "Administrative Expenses", "Administration"}},
	{Field: model.FieldDistributionCosts, Labels: []string{"Total DISTRIBUTION COSTS", "Distribution Costs", "Selling & Distribution"}},
	{Field: model.FieldFinanceCosts, Labels: []string{"Total FINANCE AND OTHER", "Finance Costs", "Financial Expenses", "Interest"}},
	{Field: model.FieldRevenueGrowth, Labels: []string{"Revenue Growth", "Growth Rate"}},
}

// DefaultQueries 默认字段查询（返回副本）
func DefaultQueries() []LabelQuery {
	out := make([]LabelQuery, len(defaultQueries))
	for i, q := range defaultQueries {
		out[i] = LabelQuery{Field: q.Field, Labels: append([]string(nil), q.Labels...)}
	}
	return out
}

// WithOverrides 用配置的标签覆盖默认查询，空列表保持默认
func WithOverrides(queries []LabelQuery, overrides map[model.Field][]string) []LabelQuery {
	out := make([]LabelQuery, len(queries))
	for i, q := range queries {
		labels := q.Labels
		if o, ok := overrides[q.Field]; ok && len(o) > 0 {
			labels = o
		}
		out[i] = LabelQuery{Field: q.Field, Labels: append([]string(nil), labels...)}
	}
	return out
}

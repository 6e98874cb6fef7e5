package model

import "time"

// Field 财务字段
type Field string

const (
	FieldTotalIncome       Field = "total_income"
	FieldGrossProfit       Field = "gross_profit"
	FieldAdminExpenses     Field = "admin_expenses"
	FieldDistributionCosts Field = "distribution_costs"
	FieldFinanceCosts      Field = "finance_costs"
	FieldRevenueGrowth     Field = "revenue_growth_rate"
)

// ExtractedValue 从网格中提取的字段值
// Found=false 时 Value 为 0（未找到哨兵）
type ExtractedValue struct {
	Field  Field   `json:"field"`
	Value  float64 `json:"value"`
	Found  bool    `json:"found"`
	Label  string  `json:"label,omitempty"` // 命中的候选标签
	Row    int     `json:"row"`             // 0 起始行号，未找到为 -1
	Column int     `json:"column"`          // 数值所在列，未找到为 -1
}

// FinancialRecord 损益表核心数据
type FinancialRecord struct {
	CompanyName       string  `json:"companyName"`
	Period            string  `json:"period"`
	TotalIncome       float64 `json:"totalIncome"`
	GrossProfit       float64 `json:"grossProfit"`
	AdminExpenses     float64 `json:"adminExpenses"`
	DistributionCosts float64 `json:"distributionCosts"`
	FinanceCosts      float64 `json:"financeCosts"`
	NetProfit         float64 `json:"netProfit"`
	RevenueGrowthRate float64 `json:"revenueGrowthRate"`
}

// NewFinancialRecord 创建记录并推导净利润
func NewFinancialRecord(totalIncome, grossProfit, admin, distribution, finance, growth float64) FinancialRecord {
	r := FinancialRecord{
		TotalIncome:       totalIncome,
		GrossProfit:       grossProfit,
		AdminExpenses:     admin,
		DistributionCosts: distribution,
		FinanceCosts:      finance,
		RevenueGrowthRate: growth,
	}
	r.NetProfit = grossProfit - r.OperatingCosts()
	return r
}

// OperatingCosts 管理 + 分销 + 财务费用
func (r FinancialRecord) OperatingCosts() float64 {
	return r.AdminExpenses + r.DistributionCosts + r.FinanceCosts
}

// RatioSet 标准化比率（百分比）
type RatioSet struct {
	NetProfitMargin   float64 `json:"netProfitMargin"`
	ExpenseRatio      float64 `json:"expenseRatio"`
	GrossProfitMargin float64 `json:"grossProfitMargin"`
	FinanceCostRatio  float64 `json:"financeCostRatio"`
	RevenueGrowthRate float64 `json:"revenueGrowthRate"`
}

// Category 财务健康等级
type Category string

const (
	CategoryHigh   Category = "High"
	CategoryMedium Category = "Medium"
	CategoryLow    Category = "Low"
)

// Contribution 单项指标对总分的贡献
type Contribution struct {
	Metric string  `json:"metric"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
}

// ScoreCard 加权评分结果
type ScoreCard struct {
	Score         float64        `json:"score"`
	Category      Category       `json:"category"`
	Suggestion    string         `json:"suggestion"`
	Contributions []Contribution `json:"contributions"`
}

// SectionKind 建议报告段落类型
type SectionKind string

const (
	SectionOverall  SectionKind = "overall"
	SectionExpense  SectionKind = "expense"
	SectionFinance  SectionKind = "finance"
	SectionGrowth   SectionKind = "growth"
	SectionMargin   SectionKind = "margin"
	SectionNextStep SectionKind = "next_step"
)

// AdvisorySection 建议报告中的一个段落
type AdvisorySection struct {
	Kind  SectionKind `json:"kind"`
	Title string      `json:"title"`
	Text  string      `json:"text"`
}

// Advisory 规则生成的建议报告
type Advisory struct {
	Sections []AdvisorySection `json:"sections"`
	Text     string            `json:"text"`
}

// Analysis 一次上传的完整分析结果
type Analysis struct {
	ID          string           `json:"id"`
	CompanyName string           `json:"companyName"`
	Period      string           `json:"period"`
	CreatedAt   time.Time        `json:"createdAt"`
	Extracted   []ExtractedValue `json:"extracted"`
	Record      FinancialRecord  `json:"record"`
	Ratios      RatioSet         `json:"ratios"`
	ScoreCard   ScoreCard        `json:"scoreCard"`
	Advisory    Advisory         `json:"advisory"`
}

package advisor

import (
	"fmt"
	"strings"

	"finhealth/internal/model"
)

const (
	reportTitle = "Research-Backed Financial Advisory Report"
	preamble    = "Findings are based on behavioral data collected from over 500 Sri Lankan SMEs. " +
		"Patterns indicate that profitability, cost control, and financial discipline are key drivers " +
		"of financial stability."
	// ClosingNote 报告末尾的出处说明
	ClosingNote = "_Note: Derived from the 2025 Sri Lankan SME Financial Behavior Study._"
)

type input struct {
	ratios   model.RatioSet
	category model.Category
}

// rule 决策表中的一行：条件 + 模板
type rule struct {
	when   func(in input) bool
	title  string
	render func(in input) string
}

type section struct {
	kind  model.SectionKind
	rules []rule
}

func always(input) bool { return true }

// sections 固定顺序的六个段落；每段按行自上而下求值，首个命中即生效，末行无条件兜底
var sections = []section{
	{
		kind: model.SectionOverall,
		rules: []rule{
			{
				when:  func(in input) bool { return in.category == model.CategoryHigh },
				title: "Overall",
				render: func(in input) string {
					return fmt.Sprintf("✅ Overall: Financial health is HIGH. Net profit margin %.2f%% and gross margin %.2f%%. "+
						"This profile aligns with firms showing strong profitability and disciplined budgeting.",
						in.ratios.NetProfitMargin, in.ratios.GrossProfitMargin)
				},
			},
			{
				when:  func(in input) bool { return in.category == model.CategoryMedium },
				title: "Overall",
				render: func(in input) string {
					return fmt.Sprintf("⚠️ Overall: Financial health is MODERATE. Net margin %.2f%%, gross margin %.2f%%. "+
						"Similar SMEs in this group often face gradual expense creep or moderate finance costs.",
						in.ratios.NetProfitMargin, in.ratios.GrossProfitMargin)
				},
			},
			{
				when:  always,
				title: "Overall",
				render: func(in input) string {
					return fmt.Sprintf("❌ Overall: Financial health is LOW. Net margin %.2f%%, gross margin %.2f%%. "+
						"Surveyed firms in this category reported higher administrative expenses and delayed loan repayments.",
						in.ratios.NetProfitMargin, in.ratios.GrossProfitMargin)
				},
			},
		},
	},
	{
		kind: model.SectionExpense,
		rules: []rule{
			{
				when:  func(in input) bool { return in.ratios.ExpenseRatio > 60 },
				title: "Expense Pressure",
				render: func(in input) string {
					return fmt.Sprintf("• Expense Pressure: Expense ratio %.1f%%. "+
						"55%% of SMEs with this level of spending reported difficulty maintaining profitability. "+
						"Enforce monthly budgets and automate cost tracking to reduce OPEX by 10–15%%.", in.ratios.ExpenseRatio)
				},
			},
			{
				when:  func(in input) bool { return in.ratios.ExpenseRatio > 40 },
				title: "Expense Efficiency",
				render: func(in input) string {
					return fmt.Sprintf("• Expense Efficiency: Expense ratio %.1f%%. "+
						"This level was linked to average-performing SMEs. Target 5–10%% reduction via supplier optimization.",
						in.ratios.ExpenseRatio)
				},
			},
			{
				when:  always,
				title: "Expense Discipline",
				render: func(in input) string {
					return fmt.Sprintf("• Expense Discipline: Expense ratio %.1f%%, efficient. "+
						"Maintain quarterly expense audits to sustain performance.", in.ratios.ExpenseRatio)
				},
			},
		},
	},
	{
		kind: model.SectionFinance,
		rules: []rule{
			{
				when:  func(in input) bool { return in.ratios.FinanceCostRatio > 10 },
				title: "Debt Pressure",
				render: func(in input) string {
					return fmt.Sprintf("• Debt Pressure: Finance cost ratio %.1f%%. "+
						"SMEs with similar ratios often experienced liquidity strain. "+
						"Refinance or consolidate loans; maintain interest coverage >2×.", in.ratios.FinanceCostRatio)
				},
			},
			{
				when:  func(in input) bool { return in.ratios.FinanceCostRatio > 5 },
				title: "Finance Costs",
				render: func(in input) string {
					return fmt.Sprintf("• Finance Costs: Finance ratio %.1f%%. "+
						"Typical for moderate firms, manageable but sensitive to rate hikes. "+
						"Monitor credit cycles closely.", in.ratios.FinanceCostRatio)
				},
			},
			{
				when:  always,
				title: "Healthy Debt Profile",
				render: func(in input) string {
					return fmt.Sprintf("• Healthy Debt Profile: Finance ratio %.1f%%, within safe limits. "+
						"Keep repayment discipline and review rates annually.", in.ratios.FinanceCostRatio)
				},
			},
		},
	},
	{
		kind: model.SectionGrowth,
		rules: []rule{
			{
				when:  func(in input) bool { return in.ratios.RevenueGrowthRate <= 0 },
				title: "Revenue Growth",
				render: func(input) string {
					return "• Revenue Growth: Negative or stagnant. SMEs with zero growth scored 30–40% lower in financial health. " +
						"Focus on cross-selling, customer retention, and digital marketing."
				},
			},
			{
				when:  func(in input) bool { return in.ratios.RevenueGrowthRate < 8 },
				title: "Growth Stability",
				render: func(in input) string {
					return fmt.Sprintf("• Growth Stability: %.1f%% growth, modest. "+
						"Introduce monthly revenue analysis and explore new sales channels.", in.ratios.RevenueGrowthRate)
				},
			},
			{
				when:  always,
				title: "Growth Momentum",
				render: func(in input) string {
					return fmt.Sprintf("• Growth Momentum: %.1f%% growth, strong. "+
						"Prioritize sustainable growth through reinvestment and margin protection.", in.ratios.RevenueGrowthRate)
				},
			},
		},
	},
	{
		kind: model.SectionMargin,
		rules: []rule{
			{
				when: func(in input) bool {
					return in.ratios.GrossProfitMargin > 40 && in.ratios.NetProfitMargin < 10
				},
				title: "Margin Gap",
				render: func(input) string {
					return "• Margin Gap: High gross margin but low net margin implies expense or debt leakage. " +
						"Review operational and financial efficiency."
				},
			},
			{
				when:  func(in input) bool { return in.ratios.GrossProfitMargin < 25 },
				title: "Low Gross Margin",
				render: func(in input) string {
					return fmt.Sprintf("• Low Gross Margin: %.1f%% gross margin. "+
						"Below the median (25%%) from the study. Adjust pricing and procurement.", in.ratios.GrossProfitMargin)
				},
			},
			{
				when:  always,
				title: "Healthy Margins",
				render: func(in input) string {
					return fmt.Sprintf("• Healthy Margins: %.1f%% gross margin, consistent with stable performers. "+
						"Continue to optimize product mix and reduce wastage.", in.ratios.GrossProfitMargin)
				},
			},
		},
	},
	{
		kind: model.SectionNextStep,
		rules: []rule{
			{
				when:  func(in input) bool { return in.category == model.CategoryHigh },
				title: "Next Step",
				render: func(input) string {
					return "• Next Step: Develop a 12-month reinvestment plan. " +
						"Top 20% of SMEs reinvested at least 10% of profit into innovation or tech upgrades."
				},
			},
			{
				when:  func(in input) bool { return in.category == model.CategoryMedium },
				title: "Next Step",
				render: func(input) string {
					return "• Next Step: 90-day improvement roadmap: (1) cut OPEX 5–10%, " +
						"(2) strengthen credit discipline, (3) implement real-time dashboards."
				},
			},
			{
				when:  always,
				title: "Next Step",
				render: func(input) string {
					return "• Next Step: 60-day stabilization plan: (1) cut 10–15% non-essential spend, " +
						"(2) restructure high-cost loans, (3) protect cash flow."
				},
			},
		},
	},
}

// Generate 根据比率和等级生成建议报告，纯函数
func Generate(ratios model.RatioSet, category model.Category) model.Advisory {
	in := input{ratios: ratios, category: category}

	out := make([]model.AdvisorySection, 0, len(sections))
	for _, s := range sections {
		for _, r := range s.rules {
			if r.when(in) {
				out = append(out, model.AdvisorySection{
					Kind:  s.kind,
					Title: r.title,
					Text:  r.render(in),
				})
				break
			}
		}
	}

	return model.Advisory{
		Sections: out,
		Text:     Render(out),
	}
}

// Render 拼接完整报告文本
func Render(parts []model.AdvisorySection) string {
	var b strings.Builder
	b.WriteString(reportTitle)
	b.WriteString("\n\n")
	b.WriteString(preamble)
	b.WriteString("\n\n")
	for _, p := range parts {
		b.WriteString(p.Text)
		b.WriteString("\n\n")
	}
	b.WriteString(ClosingNote)
	return b.String()
}

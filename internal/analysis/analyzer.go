package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"finhealth/internal/model"
	"finhealth/internal/parser"
	"finhealth/internal/service/advisor"
	"finhealth/internal/service/calculator"
)

// ErrExtractionNotFound 必需字段（总收入/毛利）未能从表格中定位
var ErrExtractionNotFound = errors.New("required fields not located in input")

// ErrInvalidGrowthRate 外部增长率不是有限数值
var ErrInvalidGrowthRate = errors.New("growth rate must be a finite number")

// UserMessage 面向用户的提取失败提示
const UserMessage = "Missing key fields like 'Total Income' or 'Gross Profit'."

// Analyzer 分析流水线：网格 → 提取值 → 比率/评分/等级 → 建议报告
// 输出只依赖输入，ID 与时间戳由持久化层补齐
type Analyzer struct {
	engine  *calculator.Engine
	queries []parser.LabelQuery
}

// NewAnalyzer 创建分析器，queries 为空时使用默认标签
func NewAnalyzer(engine *calculator.Engine, queries []parser.LabelQuery) *Analyzer {
	if len(queries) == 0 {
		queries = parser.DefaultQueries()
	}
	return &Analyzer{
		engine:  engine,
		queries: queries,
	}
}

// Options 分析选项
type Options struct {
	CompanyName string
	Period      string
	GrowthRate  *float64 // 外部提供的营收增长率，优先于表格中的值
	Progress    func(ProgressEvent)
}

// ProgressEvent 分析进度事件
type ProgressEvent struct {
	Stage   string `json:"stage"` // extract/score/advise/done
	Message string `json:"message"`
}

func reportProgress(progress func(ProgressEvent), stage, message string) {
	if progress == nil {
		return
	}
	progress(ProgressEvent{Stage: stage, Message: message})
}

// Analyze 对单个网格执行完整分析
// 总收入或毛利未找到（或为 0）时返回 ErrExtractionNotFound，不计算比率
func (a *Analyzer) Analyze(grid model.Grid, opts Options) (*model.Analysis, error) {
	if g := opts.GrowthRate; g != nil && (math.IsNaN(*g) || math.IsInf(*g, 0)) {
		return nil, ErrInvalidGrowthRate
	}

	reportProgress(opts.Progress, "extract", "locating line items")

	matcher := parser.NewMatcher(grid)
	extracted := make([]model.ExtractedValue, 0, len(a.queries))
	values := make(map[model.Field]model.ExtractedValue, len(a.queries))
	for _, q := range a.queries {
		v := matcher.Extract(q)
		extracted = append(extracted, v)
		values[q.Field] = v
	}

	if missing := missingRequired(values); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrExtractionNotFound, strings.Join(missing, ", "))
	}

	growth := values[model.FieldRevenueGrowth].Value
	if opts.GrowthRate != nil {
		growth = *opts.GrowthRate
	}

	record := model.NewFinancialRecord(
		values[model.FieldTotalIncome].Value,
		values[model.FieldGrossProfit].Value,
		values[model.FieldAdminExpenses].Value,
		values[model.FieldDistributionCosts].Value,
		values[model.FieldFinanceCosts].Value,
		growth,
	)
	record.CompanyName = defaultString(opts.CompanyName, "Unknown")
	record.Period = defaultString(opts.Period, "N/A")

	reportProgress(opts.Progress, "score", "computing ratios and weighted score")
	ratios, card := a.engine.Evaluate(record)

	reportProgress(opts.Progress, "advise", "generating advisory")
	advisory := advisor.Generate(ratios, card.Category)

	result := &model.Analysis{
		CompanyName: record.CompanyName,
		Period:      record.Period,
		Extracted:   extracted,
		Record:      record,
		Ratios:      ratios,
		ScoreCard:   card,
		Advisory:    advisory,
	}

	reportProgress(opts.Progress, "done", fmt.Sprintf("score %.2f (%s)", card.Score, card.Category))
	return result, nil
}

// missingRequired 0 同时作为“未找到”哨兵，与原始口径保持一致
func missingRequired(values map[model.Field]model.ExtractedValue) []string {
	missing := make([]string, 0, 2)
	for _, f := range []model.Field{model.FieldTotalIncome, model.FieldGrossProfit} {
		v, ok := values[f]
		if !ok || !v.Found || v.Value == 0 {
			missing = append(missing, string(f))
		}
	}
	return missing
}

func defaultString(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finhealth/internal/model"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("analysis not found")

// TimeLayout 定长时间格式，字典序即时间序
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// SaveAnalysis 保存一次分析：财务记录 + 评分在同一事务内写入
// ID 为空时分配 uuid，CreatedAt 为零值时取当前时间，写回 a
func (s *Store) SaveAnalysis(a *model.Analysis) error {
	if a == nil {
		return errors.New("nil analysis")
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}

	extracted, err := json.Marshal(a.Extracted)
	if err != nil {
		return fmt.Errorf("failed to encode extracted values: %w", err)
	}
	contributions, err := json.Marshal(a.ScoreCard.Contributions)
	if err != nil {
		return fmt.Errorf("failed to encode contributions: %w", err)
	}
	sections, err := json.Marshal(a.Advisory.Sections)
	if err != nil {
		return fmt.Errorf("failed to encode advisory sections: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	r := a.Record
	if _, err := tx.Exec(`
		INSERT INTO financial_records (
			id, company_name, period,
			total_income, gross_profit, admin_expenses, distribution_costs, finance_costs,
			net_profit, revenue_growth_rate, extracted, uploaded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.CompanyName, a.Period,
		r.TotalIncome, r.GrossProfit, r.AdminExpenses, r.DistributionCosts, r.FinanceCosts,
		r.NetProfit, r.RevenueGrowthRate, string(extracted), a.CreatedAt.UTC().Format(TimeLayout)); err != nil {
		return fmt.Errorf("failed to insert financial record: %w", err)
	}

	ratios := a.Ratios
	if _, err := tx.Exec(`
		INSERT INTO financial_scores (
			record_id, net_profit_margin, expense_ratio, gross_profit_margin, finance_cost_ratio,
			revenue_growth_rate, weighted_score, category, suggestion, contributions, sections, advisory
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, ratios.NetProfitMargin, ratios.ExpenseRatio, ratios.GrossProfitMargin, ratios.FinanceCostRatio,
		ratios.RevenueGrowthRate, a.ScoreCard.Score, string(a.ScoreCard.Category), a.ScoreCard.Suggestion,
		string(contributions), string(sections), a.Advisory.Text); err != nil {
		return fmt.Errorf("failed to insert financial score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis: %w", err)
	}
	return nil
}

// GetAnalysis 按 ID 读取完整分析
func (s *Store) GetAnalysis(id string) (*model.Analysis, error) {
	var (
		a                                  model.Analysis
		uploadedAt, category               string
		extracted, contributions, sections string
	)
	err := s.db.QueryRow(`
		SELECT r.id, r.company_name, r.period,
			r.total_income, r.gross_profit, r.admin_expenses, r.distribution_costs, r.finance_costs,
			r.net_profit, r.revenue_growth_rate, r.extracted, r.uploaded_at,
			sc.net_profit_margin, sc.expense_ratio, sc.gross_profit_margin, sc.finance_cost_ratio,
			sc.revenue_growth_rate, sc.weighted_score, sc.category, sc.suggestion,
			sc.contributions, sc.sections, sc.advisory
		FROM financial_records r
		JOIN financial_scores sc ON sc.record_id = r.id
		WHERE r.id = ?
	`, id).Scan(
		&a.ID, &a.CompanyName, &a.Period,
		&a.Record.TotalIncome, &a.Record.GrossProfit, &a.Record.AdminExpenses, &a.Record.DistributionCosts, &a.Record.FinanceCosts,
		&a.Record.NetProfit, &a.Record.RevenueGrowthRate, &extracted, &uploadedAt,
		&a.Ratios.NetProfitMargin, &a.Ratios.ExpenseRatio, &a.Ratios.GrossProfitMargin, &a.Ratios.FinanceCostRatio,
		&a.Ratios.RevenueGrowthRate, &a.ScoreCard.Score, &category, &a.ScoreCard.Suggestion,
		&contributions, &sections, &a.Advisory.Text,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query analysis: %w", err)
	}

	a.Record.CompanyName = a.CompanyName
	a.Record.Period = a.Period
	a.ScoreCard.Category = model.Category(category)
	if a.CreatedAt, err = time.Parse(TimeLayout, uploadedAt); err != nil {
		return nil, fmt.Errorf("invalid uploaded_at %q: %w", uploadedAt, err)
	}
	if err := json.Unmarshal([]byte(extracted), &a.Extracted); err != nil {
		return nil, fmt.Errorf("failed to decode extracted values: %w", err)
	}
	if err := json.Unmarshal([]byte(contributions), &a.ScoreCard.Contributions); err != nil {
		return nil, fmt.Errorf("failed to decode contributions: %w", err)
	}
	if err := json.Unmarshal([]byte(sections), &a.Advisory.Sections); err != nil {
		return nil, fmt.Errorf("failed to decode advisory sections: %w", err)
	}
	return &a, nil
}

// ListRecent 最近上传的分析（按上传时间倒序）
func (s *Store) ListRecent(limit int) ([]model.AnalysisSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT r.id, r.company_name, r.period, sc.weighted_score, sc.category, sc.net_profit_margin, r.uploaded_at
		FROM financial_records r
		JOIN financial_scores sc ON sc.record_id = r.id
		ORDER BY r.uploaded_at DESC, r.rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	out := make([]model.AnalysisSummary, 0, limit)
	for rows.Next() {
		var item model.AnalysisSummary
		var category string
		if err := rows.Scan(&item.ID, &item.CompanyName, &item.Period, &item.Score, &category, &item.NetProfitMargin, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		item.Category = model.Category(category)
		out = append(out, item)
	}
	return out, rows.Err()
}

// CountAnalyses 已保存的分析数量
func (s *Store) CountAnalyses() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM financial_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return n, nil
}

// LastUploadTime 最近一次上传时间，无记录时返回空字符串
func (s *Store) LastUploadTime() (string, error) {
	var ts sql.NullString
	if err := s.db.QueryRow(`SELECT MAX(uploaded_at) FROM financial_records`).Scan(&ts); err != nil {
		return "", fmt.Errorf("failed to query last upload: %w", err)
	}
	return ts.String, nil
}

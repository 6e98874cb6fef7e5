package parser

import (
	"regexp"

	"finhealth/internal/model"
)

// Matcher 在无表头网格中按标签定位数值
// 构造时生成规范化的并行查找表，之后只读，可并发使用
type Matcher struct {
	grid       model.Grid
	normalized [][]string
}

// NewMatcher 创建匹配器
func NewMatcher(grid model.Grid) *Matcher {
	normalized := make([][]string, grid.Rows())
	for r := range normalized {
		row := make([]string, grid.Width(r))
		for c := range row {
			row[c] = NormalizeCell(grid.Cell(r, c).String())
		}
		normalized[r] = row
	}
	return &Matcher{grid: grid, normalized: normalized}
}

// Find 按候选标签顺序查找，返回首个命中行中最右侧的数值
// 某个标签命中的首行没有数值时，继续尝试下一个标签
func (m *Matcher) Find(labels []string) Match {
	for _, label := range labels {
		re, err := BuildLabelPattern(label)
		if err != nil {
			continue
		}

		row := m.firstMatchingRow(re)
		if row < 0 {
			continue
		}

		if col, value, ok := m.rightmostNumber(row); ok {
			return Match{
				Value:  value,
				Found:  true,
				Label:  label,
				Row:    row,
				Column: col,
			}
		}
	}
	return notFound()
}

// Contains 任一候选标签出现在网格中
func (m *Matcher) Contains(labels []string) bool {
	for _, label := range labels {
		re, err := BuildLabelPattern(label)
		if err != nil {
			continue
		}
		if m.firstMatchingRow(re) >= 0 {
			return true
		}
	}
	return false
}

// Extract 按字段查询提取值
func (m *Matcher) Extract(q LabelQuery) model.ExtractedValue {
	match := m.Find(q.Labels)
	return model.ExtractedValue{
		Field:  q.Field,
		Value:  match.Value,
		Found:  match.Found,
		Label:  match.Label,
		Row:    match.Row,
		Column: match.Column,
	}
}

func (m *Matcher) firstMatchingRow(re *regexp.Regexp) int {
	for r, row := range m.normalized {
		for _, cell := range row {
			if cell != "" && re.MatchString(cell) {
				return r
			}
		}
	}
	return -1
}

func (m *Matcher) rightmostNumber(row int) (int, float64, bool) {
	for c := m.grid.Width(row) - 1; c >= 0; c-- {
		if v, ok := CoerceNumber(m.grid.Cell(row, c)); ok {
			return c, v, true
		}
	}
	return -1, 0, false
}

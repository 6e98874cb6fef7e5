package model

import (
	"strconv"
	"strings"
)

// CellKind 单元格类型
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

func (k CellKind) String() string {
	switch k {
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	default:
		return "empty"
	}
}

// Cell 网格中的单个单元格
type Cell struct {
	Kind   CellKind `json:"kind"`
	Text   string   `json:"text,omitempty"`
	Number float64  `json:"number,omitempty"`
}

// TextCell 文本单元格，空白文本视为空单元格
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell 数值单元格
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

// String 返回单元格的字符串形式（数值按最短表示输出）
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// Grid 无表头假设的单元格网格，构造后只读
type Grid struct {
	rows [][]Cell
}

// NewGrid 由单元格行构造网格（复制输入）
func NewGrid(rows [][]Cell) Grid {
	out := make([][]Cell, len(rows))
	for i, row := range rows {
		out[i] = append([]Cell(nil), row...)
	}
	return Grid{rows: out}
}

// GridFromStrings 由字符串行构造网格，可直接解析为数字的单元格标记为数值
func GridFromStrings(rows [][]string) Grid {
	out := make([][]Cell, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, raw := range row {
			cells[j] = inferCell(raw)
		}
		out[i] = cells
	}
	return Grid{rows: out}
}

// GridFromValues 由任意值构造网格（nil/string/数值）
func GridFromValues(rows [][]any) Grid {
	out := make([][]Cell, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, v := range row {
			switch val := v.(type) {
			case nil:
				cells[j] = Cell{Kind: CellEmpty}
			case string:
				cells[j] = TextCell(val)
			case float64:
				cells[j] = NumberCell(val)
			case float32:
				cells[j] = NumberCell(float64(val))
			case int:
				cells[j] = NumberCell(float64(val))
			case int64:
				cells[j] = NumberCell(float64(val))
			case Cell:
				cells[j] = val
			default:
				cells[j] = Cell{Kind: CellEmpty}
			}
		}
		out[i] = cells
	}
	return Grid{rows: out}
}

func inferCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return NumberCell(v)
	}
	return Cell{Kind: CellText, Text: raw}
}

// Rows 行数
func (g Grid) Rows() int {
	return len(g.rows)
}

// Width 指定行的列数
func (g Grid) Width(row int) int {
	if row < 0 || row >= len(g.rows) {
		return 0
	}
	return len(g.rows[row])
}

// Cell 读取单元格，越界返回空单元格
func (g Grid) Cell(row, col int) Cell {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.rows[row]) {
		return Cell{Kind: CellEmpty}
	}
	return g.rows[row][col]
}

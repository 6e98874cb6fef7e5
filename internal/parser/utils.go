package parser

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"finhealth/internal/model"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeCell 规范化单元格文本：各类空白统一为单个空格，去除首尾空白并转小写
func NormalizeCell(text string) string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text)
	text = strings.TrimSpace(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.ToLower(text)
}

// BuildLabelPattern 由候选标签构造匹配正则
// 标签中的空白视为任意间隔："Total Income" 可匹配 "total_income"、"total - income"
func BuildLabelPattern(label string) (*regexp.Regexp, error) {
	words := strings.Fields(NormalizeCell(label))
	if len(words) == 0 {
		return nil, errors.New("empty label")
	}
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.Compile(strings.Join(words, ".*"))
}

// CoerceNumber 将单元格转为数值，失败返回 false
func CoerceNumber(c model.Cell) (float64, bool) {
	switch c.Kind {
	case model.CellNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return 0, false
		}
		return c.Number, true
	case model.CellText:
		return parseNumericText(c.Text)
	default:
		return 0, false
	}
}

// parseNumericText 解析文本数值，支持千分位与会计负数 "(1,234)"
// "40%" 之类的占比列不算数值，避免覆盖右侧的金额
func parseNumericText(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

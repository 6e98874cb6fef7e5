package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseGrowthRate 解析外部输入的增长率，空串返回 nil；NaN/Inf 视为无效
func ParseGrowthRate(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	g, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(g) || math.IsInf(g, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGrowthRate, raw)
	}
	return &g, nil
}

package calculator

import "finhealth/internal/model"

const (
	highThreshold   = 80.0
	mediumThreshold = 50.0
)

var baseSuggestions = map[model.Category]string{
	model.CategoryHigh:   "Strong financial health. Consider reinvestment or expansion.",
	model.CategoryMedium: "Moderate health. Optimize costs and margins to improve stability.",
	model.CategoryLow:    "Weak financial position. Prioritize cost reduction and cash flow recovery.",
}

// Categorize 按已取整的总分划分等级，并给出基础建议
func Categorize(score float64) (model.Category, string) {
	category := model.CategoryLow
	switch {
	case score >= highThreshold:
		category = model.CategoryHigh
	case score >= mediumThreshold:
		category = model.CategoryMedium
	}
	return category, baseSuggestions[category]
}

// BaseSuggestion 等级对应的基础建议
func BaseSuggestion(category model.Category) string {
	return baseSuggestions[category]
}

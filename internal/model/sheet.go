package model

// SheetRecognition 单个 sheet 的识别结果
type SheetRecognition struct {
	SheetName     string  `json:"sheetName"`
	Score         float64 `json:"score"`
	MissingFields []Field `json:"missingFields"`
}

// AnalysisSummary 历史列表条目
type AnalysisSummary struct {
	ID              string   `json:"id"`
	CompanyName     string   `json:"companyName"`
	Period          string   `json:"period"`
	Score           float64  `json:"score"`
	Category        Category `json:"category"`
	NetProfitMargin float64  `json:"netProfitMargin"`
	CreatedAt       string   `json:"createdAt"`
}

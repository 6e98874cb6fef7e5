package excel

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"finhealth/internal/model"
	"finhealth/internal/parser"
)

// Recognizer 工作簿 sheet 识别器：按可定位的字段数为每个 sheet 打分
type Recognizer struct {
	queries []parser.LabelQuery
}

// NewRecognizer 创建识别器
func NewRecognizer(queries []parser.LabelQuery) *Recognizer {
	if len(queries) == 0 {
		queries = parser.DefaultQueries()
	}
	return &Recognizer{queries: queries}
}

// RecognizeGrid 对单个网格打分
func (r *Recognizer) RecognizeGrid(sheetName string, grid model.Grid) model.SheetRecognition {
	matcher := parser.NewMatcher(grid)

	hit := 0
	missing := make([]model.Field, 0, len(r.queries))
	for _, q := range r.queries {
		if matcher.Find(q.Labels).Found {
			hit++
		} else {
			missing = append(missing, q.Field)
		}
	}

	score := 0.0
	if len(r.queries) > 0 {
		score = float64(hit) / float64(len(r.queries))
	}
	return model.SheetRecognition{
		SheetName:     sheetName,
		Score:         score,
		MissingFields: missing,
	}
}

// PickSheet 选择得分最高的 sheet，同分取靠前者
func (r *Recognizer) PickSheet(wb *excelize.File) (model.Grid, model.SheetRecognition, error) {
	if wb == nil {
		return model.Grid{}, model.SheetRecognition{}, errors.New("no workbook loaded")
	}

	var (
		bestGrid model.Grid
		best     model.SheetRecognition
		picked   bool
	)
	for _, sheetName := range wb.GetSheetList() {
		grid, err := GridFromSheet(wb, sheetName)
		if err != nil {
			continue
		}
		rec := r.RecognizeGrid(sheetName, grid)
		if !picked || rec.Score > best.Score {
			bestGrid, best, picked = grid, rec, true
		}
	}

	if !picked {
		return model.Grid{}, model.SheetRecognition{}, fmt.Errorf("workbook has no readable sheet")
	}
	return bestGrid, best, nil
}

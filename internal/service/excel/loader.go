package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"finhealth/internal/model"
	"finhealth/internal/parser"
)

// Loader 将上传的表格文件读取为网格
type Loader struct {
	recognizer *Recognizer
	sheet      string
}

// NewLoader 创建读取器；sheet 非空时固定读取该 sheet，否则自动识别
func NewLoader(queries []parser.LabelQuery, sheet string) *Loader {
	return &Loader{
		recognizer: NewRecognizer(queries),
		sheet:      strings.TrimSpace(sheet),
	}
}

// Load 按文件扩展名读取 xlsx 或 csv
func (l *Loader) Load(reader io.Reader, filename string) (model.Grid, model.SheetRecognition, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		grid, err := GridFromCSV(reader)
		if err != nil {
			return model.Grid{}, model.SheetRecognition{}, err
		}
		return grid, l.recognizer.RecognizeGrid(filepath.Base(filename), grid), nil
	case ".xlsx", ".xlsm", ".xltx", ".xltm", "":
		wb, err := excelize.OpenReader(reader)
		if err != nil {
			return model.Grid{}, model.SheetRecognition{}, fmt.Errorf("failed to open excel: %w", err)
		}
		defer func() { _ = wb.Close() }()
		return l.LoadWorkbook(wb)
	default:
		return model.Grid{}, model.SheetRecognition{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

// LoadFile 从磁盘读取
func (l *Loader) LoadFile(path string) (model.Grid, model.SheetRecognition, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return model.Grid{}, model.SheetRecognition{}, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return l.Load(f, path)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return model.Grid{}, model.SheetRecognition{}, fmt.Errorf("failed to open excel: %w", err)
	}
	defer func() { _ = wb.Close() }()
	return l.LoadWorkbook(wb)
}

// LoadWorkbook 从已打开的工作簿中读取网格
func (l *Loader) LoadWorkbook(wb *excelize.File) (model.Grid, model.SheetRecognition, error) {
	if wb == nil {
		return model.Grid{}, model.SheetRecognition{}, errors.New("no workbook loaded")
	}
	if l.sheet == "" {
		return l.recognizer.PickSheet(wb)
	}

	grid, err := GridFromSheet(wb, l.sheet)
	if err != nil {
		return model.Grid{}, model.SheetRecognition{}, err
	}
	return grid, l.recognizer.RecognizeGrid(l.sheet, grid), nil
}

// GridFromSheet 读取 sheet 的原始单元格值（不套用数字格式）
func GridFromSheet(wb *excelize.File, sheet string) (model.Grid, error) {
	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return model.Grid{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return model.GridFromStrings(rows), nil
}

// GridFromCSV 读取 csv，允许各行列数不同
func GridFromCSV(reader io.Reader) (model.Grid, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return model.Grid{}, fmt.Errorf("failed to read csv: %w", err)
	}
	return model.GridFromStrings(rows), nil
}

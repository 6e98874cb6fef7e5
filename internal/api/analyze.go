package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"finhealth/internal/analysis"
)

const (
	importStatusDone     = "done"
	importStatusRejected = "rejected"
	importStatusError    = "error"
)

// Analyze 上传损益表并生成分析
// POST /api/analyze
func (h *Handler) Analyze(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	opts := analysis.Options{
		CompanyName: strings.TrimSpace(c.PostForm("company_name")),
		Period:      strings.TrimSpace(c.PostForm("period")),
	}
	growth, err := analysis.ParseGrowthRate(c.PostForm("growth_rate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "growth_rate must be a number"})
		return
	}
	opts.GrowthRate = growth

	entry := h.log.WithFields(logrus.Fields{
		"filename": fileHeader.Filename,
		"size":     fileHeader.Size,
	})

	logID, err := h.store.CreateImportLog(fileHeader.Filename, fileHeader.Size)
	if err != nil {
		entry.WithError(err).Warn("创建上传日志失败")
	}
	finish := func(sheet, status, analysisID, message string) {
		if logID == 0 {
			return
		}
		if err := h.store.UpdateImportLog(logID, sheet, status, analysisID, message); err != nil {
			entry.WithError(err).Warn("更新上传日志失败")
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		finish("", importStatusError, "", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	grid, recognition, err := h.loader.Load(file, fileHeader.Filename)
	if err != nil {
		entry.WithError(err).Warn("读取上传文件失败")
		finish("", importStatusRejected, "", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read spreadsheet: " + err.Error()})
		return
	}
	entry = entry.WithField("sheet", recognition.SheetName)

	result, err := h.analyzer.Analyze(grid, opts)
	if err != nil {
		if errors.Is(err, analysis.ErrExtractionNotFound) {
			entry.WithError(err).Info("关键字段缺失")
			finish(recognition.SheetName, importStatusRejected, "", err.Error())
			c.JSON(http.StatusBadRequest, gin.H{"error": analysis.UserMessage})
			return
		}
		entry.WithError(err).Error("分析失败")
		finish(recognition.SheetName, importStatusError, "", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	if err := h.store.SaveAnalysis(result); err != nil {
		entry.WithError(err).Error("保存分析失败")
		finish(recognition.SheetName, importStatusError, result.ID, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save analysis"})
		return
	}
	finish(recognition.SheetName, importStatusDone, result.ID, "")

	entry.WithFields(logrus.Fields{
		"id":       result.ID,
		"score":    result.ScoreCard.Score,
		"category": result.ScoreCard.Category,
	}).Info("分析完成")

	c.JSON(http.StatusOK, gin.H{
		"analysis":    result,
		"recognition": recognition,
	})
}

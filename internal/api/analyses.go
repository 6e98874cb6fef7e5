package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/gin-gonic/gin"

	"finhealth/internal/store"
)

// ListAnalyses 最近的分析记录
// GET /api/analyses
func (h *Handler) ListAnalyses(c *gin.Context) {
	items, err := h.store.ListRecent(recentLimit)
	if err != nil {
		h.log.WithError(err).Error("查询历史记录失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list analyses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetAnalysis 分析详情
// GET /api/analyses/:id
func (h *Handler) GetAnalysis(c *gin.Context) {
	a, err := h.store.GetAnalysis(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
			return
		}
		h.log.WithError(err).Error("查询分析失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analysis"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// ExportAnalysis 导出分析报告 xlsx
// GET /api/analyses/:id/export
func (h *Handler) ExportAnalysis(c *gin.Context) {
	a, err := h.store.GetAnalysis(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analysis"})
		return
	}

	f, err := h.exporter.Export(a)
	if err != nil {
		h.log.WithError(err).WithField("id", a.ID).Error("生成导出文件失败")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write export"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(a.CompanyName, a.Period))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// buildExportContentDisposition ASCII 回退名 + RFC 5987 原名
func buildExportContentDisposition(company, period string) string {
	name := fmt.Sprintf("%s-%s-health-report.xlsx", company, period)
	fallback := unsafeFilenameChars.ReplaceAllString(name, "_")
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", fallback, url.PathEscape(name))
}

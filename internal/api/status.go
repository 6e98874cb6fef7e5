package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized    bool   `json:"initialized"`    // 是否已有分析记录
	TotalAnalyses  int    `json:"totalAnalyses"`  // 分析总数
	LastUploadTime string `json:"lastUploadTime"` // 最后上传时间
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	total, err := h.store.CountAnalyses()
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{Initialized: false})
		return
	}

	last, err := h.store.LastUploadTime()
	if err != nil {
		last = ""
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:    total > 0,
		TotalAnalyses:  total,
		LastUploadTime: last,
	})
}

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"finhealth/internal/analysis"
	"finhealth/internal/service/excel"
	"finhealth/internal/store"
)

// recentLimit 历史列表条数
const recentLimit = 10

// Handler API 处理器
type Handler struct {
	store    *store.Store
	analyzer *analysis.Analyzer
	loader   *excel.Loader
	exporter *excel.Exporter
	log      logrus.FieldLogger
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store, analyzer *analysis.Analyzer, loader *excel.Loader, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		store:    st,
		analyzer: analyzer,
		loader:   loader,
		exporter: excel.NewExporter(),
		log:      log,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 上传分析
	router.POST("/analyze", h.Analyze)

	// 历史记录
	router.GET("/analyses", h.ListAnalyses)
	router.GET("/analyses/:id", h.GetAnalysis)

	// 导出
	router.GET("/analyses/:id/export", h.ExportAnalysis)
}

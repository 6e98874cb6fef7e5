package server

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"finhealth/internal/analysis"
	"finhealth/internal/api"
	"finhealth/internal/config"
	"finhealth/internal/parser"
	"finhealth/internal/service/calculator"
	"finhealth/internal/service/excel"
	"finhealth/internal/store"
)

//go:embed web/index.html
var staticFiles embed.FS

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
	log    *logrus.Logger
	http   *http.Server
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, log *logrus.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 权重在启动时校验并归一化一次
	weights, err := calculator.NewWeights(cfg.Scoring.Weights())
	if err != nil {
		return nil, fmt.Errorf("invalid scoring weights: %w", err)
	}
	queries := parser.WithOverrides(parser.DefaultQueries(), cfg.Extraction.Labels.Overrides())

	// 初始化 SQLite Store
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	sqliteStore, err := store.New(filepath.Join(dataDir, "finhealth.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	handler := api.NewHandler(sqliteStore,
		analysis.NewAnalyzer(calculator.NewEngine(weights), queries),
		excel.NewLoader(queries, cfg.Extraction.Sheet),
		log,
	)

	s := &Server{
		router: gin.New(),
		store:  sqliteStore,
		api:    handler,
		log:    log,
	}
	s.setupRoutes()

	log.WithFields(logrus.Fields{
		"dataDir": dataDir,
		"weights": weights,
	}).Info("服务初始化完成")

	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery(), requestLogger(s.log))

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	// 首页：上传表单
	s.router.GET("/", func(c *gin.Context) {
		data, err := staticFiles.ReadFile("web/index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
}

// requestLogger 请求日志
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("request")
	}
}

// Handler 返回 http.Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，阻塞直到 Shutdown
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown 优雅关闭并释放数据库
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	if s.http != nil {
		shutdownErr = s.http.Shutdown(ctx)
	}
	if err := s.store.Close(); err != nil && shutdownErr == nil {
		shutdownErr = err
	}
	return shutdownErr
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}

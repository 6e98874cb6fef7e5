package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finhealth/internal/config"
	"finhealth/internal/logger"
	"finhealth/internal/server"
	"finhealth/internal/util"
)

var (
	port      = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode   = flag.Bool("dev", false, "开发模式")
	dataDir   = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	noBrowser = flag.Bool("no-browser", false, "启动后不自动打开浏览器")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  FinHealth - SME 财务健康分析")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败，使用默认配置: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
	}
	log := logger.Log
	if info.Path != "" {
		log.WithField("path", info.Path).Info("已加载配置文件")
	}

	srv, err := server.NewServer(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("服务初始化失败")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		log.Infof("服务启动中，监听端口 %d ...", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.WithError(err).Fatal("服务启动失败")
		}
	}()

	if !cfg.Server.DevMode && !*noBrowser {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("关闭服务失败")
	}
}

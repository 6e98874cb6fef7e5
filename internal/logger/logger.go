package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Log 全局日志实例，未初始化时输出到 stderr
var Log = logrus.New()

// InitLogger 初始化日志：控制台 + 可选日志文件
func InitLogger(levelStr string, filePath string) error {
	return InitLoggerTo(os.Stdout, levelStr, filePath)
}

// InitLoggerTo 同 InitLogger，控制台部分写到 console（命令行工具用 stderr，保持 stdout 干净）
func InitLoggerTo(console io.Writer, levelStr string, filePath string) error {
	l := logrus.New()

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel // 默认级别
	}
	l.SetLevel(level)

	writers := []io.Writer{console}
	if filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}
	l.SetOutput(io.MultiWriter(writers...))

	Log = l
	return nil
}

package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel 将配置中的日志级别字符串转换为 zapcore.Level（未知值回退到 info）
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewLogger 创建服务 Logger
// level: "debug" / "info" / "warn" / "error"
// format: "json"（默认，适合日志收集）或 "console"（本地开发）
// serviceName: 写入每条日志的 service_name 字段，例如 "kaigo-data"
func NewLogger(level, format, serviceName string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(format, "console") {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	fields := make([]zap.Field, 0, 2)
	if serviceName != "" {
		fields = append(fields, zap.String("service_name", serviceName))
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		fields = append(fields, zap.String("hostname", hostname))
	}
	return base.With(fields...), nil
}

// MustNewLogger 与 NewLogger 相同，但构建失败时回退到 zap.NewNop()，
// 供 CLI 子命令在配置尚未完全加载时使用
func MustNewLogger(level, format, serviceName string) *zap.Logger {
	l, err := NewLogger(level, format, serviceName)
	if err != nil {
		return zap.NewNop()
	}
	return l
}

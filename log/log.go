package log

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Init 按级别初始化全局日志，file为空时输出到stderr
func Init(level, file string) (err error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if file != "" {
		cfg.OutputPaths = []string{file}
		cfg.ErrorOutputPaths = []string{file, "stderr"}
	}
	l, err := cfg.Build()
	if err != nil {
		return
	}
	Set(l)
	return
}

// Set 替换全局日志，nil表示静默
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	if old := logger.Swap(l); old != nil {
		_ = old.Sync()
	}
}

func L() *zap.Logger {
	return logger.Load()
}

func Debug(msg string, fields ...zap.Field) {
	logger.Load().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Load().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Load().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Load().Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	logger.Load().Fatal(msg, fields...)
}

func Sync() {
	_ = logger.Load().Sync()
}

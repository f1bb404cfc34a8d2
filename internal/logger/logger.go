// Package logger 提供写入文件的结构化日志
// 交互式终端被界面渲染占用，日志只进文件（JSON、自动轮转），
// 替代浏览器实现里的 console.log / console.error。
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var l = zap.NewNop()

// Init 初始化文件日志
// 未初始化时 L() 返回空实现，包内调用方无需判空。
func Init(logFilePath string) {
	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // 天
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)

	l = zap.New(core, zap.AddCaller())
}

// L 返回全局日志实例
func L() *zap.Logger {
	return l
}

// Err 错误字段的简写
func Err(err error) zap.Field {
	return zap.Error(err)
}

// Sync 刷新缓冲
func Sync() {
	_ = l.Sync()
}

package logger

import (
	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger

// Init builds the process-wide logger. Call once from main before
// any other package logs.
func Init(environment string) {
	var l *zap.Logger
	var err error

	if environment == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

	sugar = l.Sugar()
}

func logger() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

func Debug(msg string, keysAndValues ...any) {
	logger().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	logger().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	logger().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	logger().Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...any) {
	logger().Fatalw(msg, keysAndValues...)
}

// Sync flushes buffered log entries. Safe to call on shutdown.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

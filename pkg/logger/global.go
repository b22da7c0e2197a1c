// pkg/logger/global.go
package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	globalLogger *Logger
	fallbackOnce sync.Once
	fallback     *Logger
)

func InitGlobal(logPath, logLevel string, debug bool) error {
	l, err := NewLogger(logPath, logLevel, debug)
	if err != nil {
		return err
	}
	globalLogger = l
	return nil
}

// SetGlobal подменяет глобальный логгер (используется в тестах)
func SetGlobal(l *Logger) {
	globalLogger = l
}

func GetLogger() *Logger {
	if globalLogger == nil {
		// Fallback к простому логгеру в stdout
		fallbackOnce.Do(func() {
			fallback = NewWithWriter(os.Stdout, LevelInfo, false)
		})
		return fallback
	}
	return globalLogger
}

// Глобальные методы для удобства
func Debug(format string, v ...interface{}) {
	GetLogger().Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	GetLogger().Info(format, v...)
}

func Warn(format string, v ...interface{}) {
	GetLogger().Warn(format, v...)
}

func Error(format string, v ...interface{}) {
	GetLogger().Error(format, v...)
}

func WithField(key string, value interface{}) *logrus.Entry {
	return GetLogger().WithField(key, value)
}

func Close() {
	if globalLogger != nil {
		globalLogger.Close()
	}
}

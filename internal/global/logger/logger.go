package logger

import (
	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
)

// Logger is the process-wide logger used before and outside service wiring
var Logger primary.Logger = logging.NewZapLogger()

// Set replaces the process-wide logger; call it once during startup
func Set(l primary.Logger) {
	if l != nil {
		Logger = l
	}
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}

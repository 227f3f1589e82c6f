package api

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	logger     *log.Logger
	loggerOnce sync.Once
	logEnabled bool
)

// InitLogger starts writing the request log to logPath.
// If logPath is empty, logging stays disabled. Only the first call has an
// effect.
func InitLogger(logPath string, level log.Level) error {
	var initErr error
	loggerOnce.Do(func() {
		if logPath == "" {
			logEnabled = false
			return
		}

		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			initErr = err
			return
		}

		logger = log.NewWithOptions(f, log.Options{
			Level:           level,
			Prefix:          "API",
			ReportTimestamp: true,
		})
		logEnabled = true
	})
	return initErr
}

// SetLogger injects a logger (tests, embedding). nil disables logging.
func SetLogger(l *log.Logger) {
	logger = l
	logEnabled = l != nil
}

// logOp starts timing an endpoint call and returns the function that
// records its outcome.
//
//	done := logOp("get_commits", "name", name)
//	// ... call ...
//	done(err, "bytes", n)
func logOp(op string, keyvals ...any) func(error, ...any) {
	if !logEnabled || logger == nil {
		return func(error, ...any) {}
	}

	start := time.Now()
	return func(err error, resultKeyvals ...any) {
		args := make([]any, 0, len(keyvals)+len(resultKeyvals)+6)
		args = append(args, "op", op)
		args = append(args, "duration", time.Since(start).String())
		args = append(args, keyvals...)
		args = append(args, resultKeyvals...)

		if err != nil {
			args = append(args, "error", err.Error())
			logger.Error("request failed", args...)
		} else {
			logger.Info("request complete", args...)
		}
	}
}

// truncate shortens s to maxLen bytes for logging.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

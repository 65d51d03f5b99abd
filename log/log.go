// Package log provides structured logging for the whole service, backed by
// zap. It exposes the same call surface the rest of the codebase uses
// (Infow, Warnw, Debugf, ...) so packages never import zap directly.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.SugaredLogger

func init() {
	// default logger so packages can log before Init is called (tests)
	logger = newLogger(zapcore.InfoLevel, os.Stderr)
}

func newLogger(level zapcore.Level, w *os.File) *zap.SugaredLogger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(w),
		level,
	)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

// Init configures the global logger. Level is one of "debug", "info",
// "warn" or "error"; output is "stdout" or "stderr".
func Init(level, output string) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	w := os.Stdout
	if output == "stderr" {
		w = os.Stderr
	}
	logger = newLogger(lvl, w)
}

func Debug(args ...any) { logger.Debug(args...) }

func Debugf(template string, args ...any) { logger.Debugf(template, args...) }

func Debugw(msg string, kv ...any) { logger.Debugw(msg, kv...) }

func Info(args ...any) { logger.Info(args...) }

func Infof(template string, args ...any) { logger.Infof(template, args...) }

func Infow(msg string, kv ...any) { logger.Infow(msg, kv...) }

func Warn(args ...any) { logger.Warn(args...) }

func Warnf(template string, args ...any) { logger.Warnf(template, args...) }

func Warnw(msg string, kv ...any) { logger.Warnw(msg, kv...) }

func Error(args ...any) { logger.Error(args...) }

func Errorf(template string, args ...any) { logger.Errorf(template, args...) }

// Errorw logs an error with a message, keeping the error as a structured
// field.
func Errorw(err error, msg string) { logger.Errorw(msg, "error", err) }

func Fatal(args ...any) { logger.Fatal(args...) }

func Fatalf(template string, args ...any) { logger.Fatalf(template, args...) }

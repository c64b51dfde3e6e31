// Package logger provides structured logging using zap.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance. It is a no-op until Init runs, so
// library code and tests can log unconditionally.
var Log = zap.NewNop()

// Sugar is the sugared logger for convenient logging.
var Sugar = Log.Sugar()

// Options controls logger construction.
type Options struct {
	Level   string // debug, info, warn, error
	File    string // empty disables file output
	Console bool   // disable for tests

	// File rotation settings, used when File is set.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultOptions returns options with console output and rotation defaults.
func DefaultOptions(level, file string) Options {
	return Options{
		Level:      level,
		File:       file,
		Console:    true,
		MaxSizeMB:  20,
		MaxBackups: 3,
		MaxAgeDays: 7,
	}
}

// Init initializes the global logger with the given level and optional
// log file path.
func Init(level, file string) error {
	return InitWithOptions(DefaultOptions(level, file))
}

// InitWithOptions initializes the global logger from explicit options.
func InitWithOptions(opts Options) error {
	lvl := parseLevel(opts.Level)

	var cores []zapcore.Core

	if opts.Console {
		enc := zapcore.NewConsoleEncoder(encoderConfig(zapcore.TimeEncoderOfLayout("15:04:05"), zapcore.CapitalColorLevelEncoder))
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl))
	}

	if opts.File != "" {
		w := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
			LocalTime:  true,
		}
		enc := zapcore.NewConsoleEncoder(encoderConfig(zapcore.ISO8601TimeEncoder, zapcore.CapitalLevelEncoder))
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), lvl))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Sugar = Log.Sugar()
	return nil
}

func encoderConfig(timeEnc zapcore.TimeEncoder, levelEnc zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       timeEnc,
		EncodeLevel:      levelEnc,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	}
}

// parseLevel converts a string level to zapcore.Level.
func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes any buffered log entries.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// Fatal logs a fatal message and exits.
func Fatal(msg string, fields ...zap.Field) {
	Log.Fatal(msg, fields...)
}

// Package log provides centralized logging functionality using zap logger.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.SugaredLogger
var baseLogger *zap.Logger

// Init initializes the package-level logger
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	setBase(zapLogger)
	return nil
}

// FileOptions controls rotation of the log file
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// InitWithFile initializes the logger to write JSON entries to a rotated file
// as well as to stderr
func InitWithFile(debug bool, opts FileOptions) error {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}

	fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	consoleConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoder := zapcore.NewConsoleEncoder(consoleConfig)

	core := zapcore.NewTee(
		zapcore.NewCore(fileEncoder, zapcore.AddSync(rotator), level),
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
	)

	setBase(zap.New(core, zap.AddCaller()))
	return nil
}

// GetSugaredLogger returns the logger handed to components. Unlike the
// package-level functions it does not skip a caller frame.
func GetSugaredLogger() *zap.SugaredLogger {
	if baseLogger == nil {
		// Fallback logger if not initialized
		setBase(zap.NewNop())
	}
	return baseLogger.Sugar()
}

// Sync flushes any buffered log entries
func Sync() {
	if log != nil {
		log.Sync()
	}
}

func setBase(l *zap.Logger) {
	baseLogger = l
	log = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

// Package-level convenience functions

func Infof(template string, args ...interface{}) {
	GetSugaredLogger()
	log.Infof(template, args...)
}

// Fatalf logs, flushes and exits with status 1
func Fatalf(template string, args ...interface{}) {
	GetSugaredLogger()
	log.Fatalf(template, args...)
}

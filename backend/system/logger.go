package system

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// dailyFile is a write syncer that starts a new file each day
type dailyFile struct {
	mu     sync.Mutex
	dir    string
	prefix string
	date   string
	file   *os.File
	now    func() time.Time
}

func (d *dailyFile) rotateIfNeeded() error {
	today := d.now().Format("2006-01-02")
	if d.date == today && d.file != nil {
		return nil
	}
	if d.file != nil {
		d.file.Close()
	}

	logPath := filepath.Join(d.dir, fmt.Sprintf("%s-%s.log", d.prefix, today))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	d.file = file
	d.date = today
	return nil
}

func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.rotateIfNeeded(); err != nil {
		return 0, err
	}
	return d.file.Write(p)
}

func (d *dailyFile) Sync() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	return d.file.Sync()
}

func (d *dailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Logger writes to stdout and a daily log file
type Logger struct {
	sugar *zap.SugaredLogger
	file  *dailyFile
}

var globalLogger *Logger

// InitLogger initializes the global logger. env "production" switches to JSON output.
func InitLogger(logDir, env string) error {
	if logDir == "" {
		logDir = "./logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file := &dailyFile{dir: logDir, prefix: "nanum-admin", now: time.Now}
	if err := file.rotateIfNeeded(); err != nil {
		return err
	}

	globalLogger = &Logger{
		sugar: zap.New(newCore(env, file)).Named("nanum-admin").Sugar(),
		file:  file,
	}
	return nil
}

func newCore(env string, file zapcore.WriteSyncer) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	var enc zapcore.Encoder
	if env == "production" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
		if env == "development" {
			level.SetLevel(zap.DebugLevel)
		}
	}
	sink := zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), file)
	return zapcore.NewCore(enc, sink, level)
}

// Package-level logging functions

// Debug logs a debug message
func Debug(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.sugar.Debugf(format, args...)
	}
}

// Info logs an info message
func Info(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.sugar.Infof(format, args...)
	} else {
		log.Printf("[INFO] "+format, args...)
	}
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.sugar.Warnf(format, args...)
	} else {
		log.Printf("[WARN] "+format, args...)
	}
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.sugar.Errorf(format, args...)
	} else {
		log.Printf("[ERROR] "+format, args...)
	}
}

// Close flushes and closes the logger
func Close() {
	if globalLogger == nil {
		return
	}
	_ = globalLogger.sugar.Sync()
	_ = globalLogger.file.Close()
	globalLogger = nil
}

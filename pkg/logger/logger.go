package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	base  *zap.Logger
	info  *zap.SugaredLogger
	error *zap.SugaredLogger
	warn  *zap.SugaredLogger
}

// New builds a JSON logger writing to stdout. LOG_LEVEL=debug enables Debug.
func New() *Logger {
	level := zapcore.InfoLevel
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		level,
	)
	return wrap(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))
}

// NewNop discards everything; used by tests that don't care about output.
func NewNop() *Logger {
	return wrap(zap.NewNop())
}

func wrap(base *zap.Logger) *Logger {
	sugar := base.Sugar()
	return &Logger{
		base:  base,
		info:  sugar,
		error: sugar,
		warn:  sugar,
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.info.Infof(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.error.Errorf(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warn.Warnf(format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.info.Debugf(format, args...)
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return wrap(l.info.With(keysAndValues...).Desugar())
}

func (l *Logger) Sync() error {
	return l.base.Sync()
}

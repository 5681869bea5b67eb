package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	global   = zap.NewNop().Sugar()
	globalMx sync.RWMutex
)

// Init заменяет глобальный логгер. Вызывается один раз при старте.
func Init(level string, development bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("zapcore.ParseLevel: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("cfg.Build: %w", err)
	}

	SetLogger(l.Sugar())
	return nil
}

func SetLogger(l *zap.SugaredLogger) {
	globalMx.Lock()
	defer globalMx.Unlock()
	global = l
}

// WithFields кладет поля в контекст, они попадут в каждую запись с этим ctx.
func WithFields(ctx context.Context, keysAndValues ...interface{}) context.Context {
	return context.WithValue(ctx, ctxKey{}, fromContext(ctx).With(keysAndValues...))
}

func fromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
			return l
		}
	}

	globalMx.RLock()
	defer globalMx.RUnlock()
	return global
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Infof(format, args...)
}

func Info(ctx context.Context, msg string) {
	fromContext(ctx).Info(msg)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromContext(ctx).Errorf(format, args...)
}

func Error(ctx context.Context, msg string) {
	fromContext(ctx).Error(msg)
}

func Fatal(ctx context.Context, args ...interface{}) {
	fromContext(ctx).Fatal(args...)
}

func Sync() {
	_ = fromContext(context.Background()).Sync()
}

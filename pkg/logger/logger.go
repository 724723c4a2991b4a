package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var l *zap.Logger

// Init configura el logger global: consola legible en desarrollo,
// JSON en producción.
func Init(isDev bool) error {
	var cfg zap.Config
	if isDev {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return err
	}
	l = logger
	return nil
}

func L() *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return l
}

func Sync() {
	if l != nil {
		_ = l.Sync()
	}
}

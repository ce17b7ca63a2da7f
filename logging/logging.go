// Package logging provides the structured logger the session core uses for
// diagnostic events a deployed client can't surface any other way (dropped
// malformed packets, reconnect attempts, keepalive timeouts). Grounded on
// chenquan-lighthouse's zap + lumberjack pairing.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewNop returns a logger that discards everything, the default when a
// caller does not configure one.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// NewProduction returns a JSON-encoded, info-level production logger
// writing to stderr, matching zap.NewProduction()'s defaults.
func NewProduction() (*zap.SugaredLogger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// FileRotationConfig configures a lumberjack-backed rotating file sink.
type FileRotationConfig struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewRotatingFile returns a logger writing JSON lines to a lumberjack
// rotating file sink, for long-running deployments where stderr isn't
// captured.
func NewRotatingFile(cfg FileRotationConfig) *zap.SugaredLogger {
	sink := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	core := zapcore.NewCore(encoder, zapcore.AddSync(sink), zapcore.InfoLevel)
	return zap.New(core).Sugar()
}

package config

import (
	"context"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLogger builds the application logger. APP_ENV=development switches to the
// human-readable console encoder.
func NewLogger(lc fx.Lifecycle) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if os.Getenv("APP_ENV") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync flushes buffered entries; stderr sync errors are expected
			// on some platforms and safe to ignore.
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}

package config

import (
	"go.uber.org/zap"
)

// InitLogger ساخت logger؛ در محیط توسعه خوانا و در production به صورت JSON
func InitLogger(env string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "" || env == "development" || env == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	logger.Info("✅ Zap logger initialized", zap.String("env", env))
	return logger, nil
}

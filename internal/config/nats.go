package config

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// InitNATS returns nil when NATS_URL is unset; events are then not recorded.
func InitNATS(cfg *Config, logger *zap.Logger) (*nats.Conn, error) {
	if cfg.NatsURL == "" {
		logger.Info("NATS_URL not set, outbox publishing disabled")
		return nil, nil
	}
	nc, err := nats.Connect(cfg.NatsURL, nats.Name("contenthub"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	logger.Info("✅ NATS connected", zap.String("url", cfg.NatsURL))
	return nc, nil
}

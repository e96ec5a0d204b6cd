package web

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/internal/config"
)

func Run(ctx context.Context, config *config.Config, logger *zap.Logger) error {
	logger.Debug("Parsed config", zap.Any("backend", config.Backend), zap.Any("workspaces", config.Workspaces))

	s, err := newServer(config, logger)
	if err != nil {
		return errors.Wrap(err, "Failed to start server")
	}

	return errors.Wrap(s.run(ctx), "Server failed")
}

package backend

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	units "github.com/docker/go-units"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/internal/config"
	"github.com/bigredeye/roster/internal/database"
	"github.com/bigredeye/roster/internal/tgbot"
)

const maxConnectAttempts = 5

func connect(conf *config.Config, logger *zap.Logger) (*database.DataBase, error) {
	dsn := database.MakeDSN(
		conf.DataBase.Host,
		conf.DataBase.Port,
		conf.DataBase.User,
		conf.DataBase.Pass,
		conf.DataBase.Name,
	)

	var db *database.DataBase
	open := func() (err error) {
		db, err = database.OpenDataBase(logger, dsn)
		return
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("Failed to open database",
			zap.Error(err),
			zap.String("retry_in", units.HumanDuration(wait)),
		)
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxConnectAttempts)
	if err := backoff.RetryNotify(open, policy, notify); err != nil {
		return nil, errors.Wrap(err, "Failed to open database")
	}
	return db, nil
}

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

func openStore(conf *config.Config, logger *zap.Logger) (Store, error) {
	switch conf.Api.Storage {
	case StorageMemory:
		logger.Warn("Using in-memory storage, data will be lost on restart")
		return database.NewMemory(), nil
	case StoragePostgres, "":
		return connect(conf, logger)
	default:
		return nil, errors.Errorf("Unknown storage %q", conf.Api.Storage)
	}
}

func Run(ctx context.Context, conf *config.Config, logger *zap.Logger) error {
	store, err := openStore(conf, logger)
	if err != nil {
		return err
	}

	bot, err := tgbot.NewBot(conf, logger.Named("tgbot"))
	if err != nil {
		return errors.Wrap(err, "Failed to create telegram bot")
	}

	var notifier AbsenceNotifier
	if bot != nil {
		notifier = bot
	}

	s := NewServer(conf, logger, store, notifier)
	return errors.Wrap(s.Run(ctx), "Server failed")
}

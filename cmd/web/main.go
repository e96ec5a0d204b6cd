package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/bigredeye/roster/internal/config"
	"github.com/bigredeye/roster/internal/web"
	zlog "github.com/bigredeye/roster/pkg/log"
)

var configPath = flag.String("config", "", "Path to config file")

func run() error {
	flag.Parse()

	conf, err := config.ParseConfig(*configPath)
	if err != nil {
		return err
	}

	logger := zlog.Init(conf.Log.Mode, conf.Log.File)
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.Run(ctx, conf, logger)
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}

package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

func InitProd() *zap.Logger {
	return initLogger(zap.NewProductionConfig())
}

func InitDev() *zap.Logger {
	return initLogger(zap.NewDevelopmentConfig())
}

// InitRotating writes json logs to path, rotating it with lumberjack.
func InitRotating(path string) *zap.Logger {
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		sink,
		zap.InfoLevel,
	)
	logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel))
	zap.ReplaceGlobals(logger)
	return logger
}

// Init picks the logger flavour by mode: "prod", "dev" or a rotating file when path is set.
func Init(mode, path string) *zap.Logger {
	switch {
	case path != "":
		return InitRotating(path)
	case mode == "prod":
		return InitProd()
	default:
		return InitDev()
	}
}

func initLogger(config zap.Config) *zap.Logger {
	var err error
	logger, err = config.Build(zap.AddStacktrace(zap.WarnLevel))
	if err != nil {
		fmt.Printf("Failed to init zap logger: %v", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)
	return logger
}

func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

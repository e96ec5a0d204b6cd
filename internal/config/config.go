package config

import (
	"time"

	"github.com/pkg/errors"

	"github.com/bigredeye/roster/pkg/conf"
)

type Config struct {
	Backend struct {
		BaseURL string
		Timeout time.Duration
	}

	Server struct {
		ListenAddress string
		Cookies       struct {
			AuthenticationKey string
			EncryptionKey     string
			Secure            bool
		}
	}

	Workspaces struct {
		TTL     time.Duration
		MaxSize int64
	}

	Api struct {
		ListenAddress string
		AllowOrigins  []string
		Storage       string
	}

	DataBase struct {
		Host string
		Port uint16
		User string
		Pass string
		Name string
	}

	Telegram struct {
		BotToken string
		ChatID   int64
	}

	Log struct {
		Mode string
		File string
	}
}

var defaults = map[string]interface{}{
	"backend.baseurl":       "http://127.0.0.1:8000",
	"backend.timeout":       10 * time.Second,
	"server.listenaddress":  ":5173",
	"workspaces.ttl":        time.Hour,
	"workspaces.maxsize":    1000,
	"api.listenaddress":     ":8000",
	"api.alloworigins":      []string{"*"},
	"api.storage":           "postgres",
	"database.host":         "localhost",
	"database.port":         5432,
	"database.user":         "postgres",
	"database.pass":         "postgres",
	"database.name":         "postgres",
	"log.mode":              "dev",
}

func ParseConfig(path string) (*Config, error) {
	config := &Config{}
	err := conf.ParseConfig(config,
		conf.EnvPrefix("ROSTER"),
		conf.Defaults(defaults),
		conf.ConfigFile(path),
	)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to parse config")
	}
	return config, nil
}

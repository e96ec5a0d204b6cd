package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type testConfig struct {
	Name   string
	Server struct {
		ListenAddress string
		Timeout       time.Duration
		Origins       []string
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("CONFTEST_SERVER_LISTENADDRESS", ":9000")
	t.Setenv("CONFTEST_SERVER_TIMEOUT", "5s")

	config := testConfig{}
	err := ParseConfig(&config,
		EnvPrefix("CONFTEST"),
		Defaults(map[string]interface{}{
			"name":                 "roster",
			"server.listenaddress": ":80",
			"server.origins":       []string{"*"},
		}),
	)
	if err != nil {
		t.Fatal("Failed to parse config:", err)
	}

	expected := testConfig{Name: "roster"}
	expected.Server.ListenAddress = ":9000"
	expected.Server.Timeout = 5 * time.Second
	expected.Server.Origins = []string{"*"}
	if diff := cmp.Diff(expected, config); diff != "" {
		t.Fatalf("Unexpected config (-want +got):\n%s", diff)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	content := "name: fromfile\nserver:\n  listenaddress: \":7000\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFFILE_NAME", "fromenv")

	config := testConfig{}
	if err := ParseConfig(&config, EnvPrefix("CONFFILE"), ConfigFile(path)); err != nil {
		t.Fatal("Failed to parse config:", err)
	}

	if config.Name != "fromenv" || config.Server.ListenAddress != ":7000" {
		t.Fatalf("Unexpected config %+v", config)
	}
}

func TestMissingConfigFile(t *testing.T) {
	config := testConfig{}
	err := ParseConfig(&config, ConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	if err == nil {
		t.Fatal("Expected error for a missing config file")
	}
}

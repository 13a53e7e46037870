package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	DefaultAddr    = ":8000"
	DefaultDriver  = "sqlite3"
	DefaultDBPath  = "quest_journal.db"
	DefaultBaseURL = "http://127.0.0.1:8000"
)

// Config is layered: Default, then the TOML file, then QJ_* environment
// variables.
type Config struct {
	HTTP      HTTPConfig      `toml:"http"`
	DB        DBConfig        `toml:"db"`
	VK        VKConfig        `toml:"vk"`
	Client    ClientConfig    `toml:"client"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

type HTTPConfig struct {
	Addr            string        `toml:"addr" env:"QJ_ADDR"`
	ReadTimeout     time.Duration `toml:"read_timeout" env:"QJ_READ_TIMEOUT"`
	WriteTimeout    time.Duration `toml:"write_timeout" env:"QJ_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"QJ_SHUTDOWN_TIMEOUT"`
}

type DBConfig struct {
	// Driver is "sqlite3" (mattn, cgo) or "sqlite" (modernc, pure Go).
	Driver string `toml:"driver" env:"QJ_DB_DRIVER"`
	Path   string `toml:"path" env:"QJ_DB_PATH"`
}

type VKConfig struct {
	Token   string `toml:"token" env:"QJ_VK_TOKEN"`
	GroupID int    `toml:"group_id" env:"QJ_VK_GROUP_ID"`
	// PeerID restricts the bot to one chat when non-zero.
	PeerID int `toml:"peer_id" env:"QJ_VK_PEER_ID"`
}

type ClientConfig struct {
	BaseURL string        `toml:"base_url" env:"QJ_BASE_URL"`
	Timeout time.Duration `toml:"timeout" env:"QJ_CLIENT_TIMEOUT"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `toml:"otlp_endpoint" env:"QJ_OTEL_ENDPOINT"`
	ServiceName  string `toml:"service_name" env:"QJ_OTEL_SERVICE_NAME"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		DB: DBConfig{
			Driver: DefaultDriver,
			Path:   DefaultDBPath,
		},
		Client: ClientConfig{
			BaseURL: DefaultBaseURL,
			Timeout: 10 * time.Second,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "questjournal",
		},
	}
}

// Load reads the TOML file at path (skipped when empty or missing), applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if _, err := toml.Decode(string(data), &cfg); err != nil {
				return cfg, fmt.Errorf("decode config %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("invalid db driver %q: want sqlite3 or sqlite", c.DB.Driver)
	}
	if strings.TrimSpace(c.DB.Path) == "" {
		return fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("http addr is required")
	}
	return nil
}

// ValidateBot checks the settings only the VK bot needs.
func (c Config) ValidateBot() error {
	if c.VK.Token == "" || c.VK.GroupID == 0 {
		return fmt.Errorf("QJ_VK_TOKEN and QJ_VK_GROUP_ID are required")
	}
	return nil
}

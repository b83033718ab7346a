package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/alexanderramin/leadtime/internal/domain"
	"github.com/alexanderramin/leadtime/internal/scheduler"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// ConfigPathEnv names the optional YAML file; env vars override its values.
const ConfigPathEnv = "LEADTIME_CONFIG"

type Config struct {
	Env        string `yaml:"env" env:"LEADTIME_ENV" env-default:"local"`
	LogLevel   string `yaml:"log_level" env:"LEADTIME_LOG_LEVEL" env-default:"info"`
	DBPath     string `yaml:"db_path" env:"LEADTIME_DB"`
	HTTPServer `yaml:"http_server"`
	Scheduling `yaml:"scheduling"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"LEADTIME_HTTP_ADDR" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env:"LEADTIME_HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"LEADTIME_HTTP_IDLE_TIMEOUT" env-default:"60s"`
	CORSOrigins []string      `yaml:"cors_origins" env:"LEADTIME_CORS_ORIGINS" env-separator:"," env-default:"*"`
}

// Scheduling carries the engine defaults applied when part data is missing.
type Scheduling struct {
	DefaultBaseDays int     `yaml:"default_base_days" env:"LEADTIME_DEFAULT_BASE_DAYS" env-default:"30"`
	SeaFreightDays  int     `yaml:"sea_freight_days" env:"LEADTIME_SEA_FREIGHT_DAYS" env-default:"35"`
	AirFreightDays  int     `yaml:"air_freight_days" env:"LEADTIME_AIR_FREIGHT_DAYS" env-default:"5"`
	MaxScrapRate    float64 `yaml:"max_scrap_rate" env:"LEADTIME_MAX_SCRAP_RATE" env-default:"0.99"`
	AuthorizingGate string  `yaml:"authorizing_gate" env:"LEADTIME_AUTHORIZING_GATE" env-default:"design-transfer"`
	MinSegmentPx    float64 `yaml:"min_segment_px" env:"LEADTIME_MIN_SEGMENT_PX" env-default:"4"`
	Workers         int     `yaml:"workers" env:"LEADTIME_WORKERS" env-default:"8"`
}

// Load reads the YAML file named by LEADTIME_CONFIG when set, then the
// environment.
func Load() (*Config, error) {
	var cfg Config
	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	dbPath, err := resolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	cfg.DBPath = dbPath

	if _, err := cfg.Policy(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Policy converts the scheduling section into an engine policy.
func (c *Config) Policy() (scheduler.Policy, error) {
	gate, err := domain.ParseGateKey(c.AuthorizingGate)
	if err != nil {
		return scheduler.Policy{}, fmt.Errorf("scheduling.authorizing_gate: %w", err)
	}
	pol := scheduler.Policy{
		DefaultBaseDays: c.DefaultBaseDays,
		SeaFreightDays:  c.SeaFreightDays,
		AirFreightDays:  c.AirFreightDays,
		MaxScrapRate:    c.MaxScrapRate,
		AuthorizingGate: gate,
		MinSegmentPx:    c.MinSegmentPx,
		Workers:         c.Workers,
	}
	if pol.Workers <= 0 {
		pol.Workers = 1
	}
	if err := pol.Validate(); err != nil {
		return scheduler.Policy{}, fmt.Errorf("scheduling: %w", err)
	}
	return pol, nil
}

// resolveDBPath defaults to ~/.leadtime/leadtime.db and expands a leading "~/".
func resolveDBPath(p string) (string, error) {
	if p == ":memory:" {
		return p, nil
	}
	if p == "" || p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("finding home directory: %w", err)
		}
		if p == "" {
			return filepath.Join(home, ".leadtime", "leadtime.db"), nil
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(p, "~"), "/")), nil
	}
	return p, nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/schc/pkg/application/services/estimation"
	"github.com/vsinha/schc/pkg/infrastructure/log"
	"github.com/vsinha/schc/pkg/infrastructure/predictors/remote"
)

// EnvPrefix prefixes every environment override, e.g. SCHC_DATA_DIR
const EnvPrefix = "SCHC"

// Default values
const (
	DefaultDataDir          = "data"
	DefaultLogLevel         = "info"
	DefaultAddress          = ":8080"
	DefaultShutdownTimeout  = 5 * time.Second
	DefaultPredictorTimeout = 2 * time.Second
)

// Config is the complete advisor configuration
type Config struct {
	// DataDir holds the reference CSV files or reference.xlsx.
	DataDir  string `yaml:"data_dir" envconfig:"DATA_DIR"`
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	Server     ServerConfig          `yaml:"server" envconfig:"SERVER"`
	Predictors PredictorsConfig      `yaml:"predictors" envconfig:"PREDICTORS"`
	Thresholds estimation.Thresholds `yaml:"thresholds" envconfig:"THRESHOLDS"`
}

// ServerConfig controls the HTTP dashboard
type ServerConfig struct {
	Address string `yaml:"address" envconfig:"ADDRESS"`

	// Watch reloads reference data when files in DataDir change.
	Watch bool `yaml:"watch" envconfig:"WATCH"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// PredictorsConfig locates the optional model servers
type PredictorsConfig struct {
	Endpoints remote.Endpoints `yaml:"endpoints" envconfig:"ENDPOINTS"`
	Timeout   time.Duration    `yaml:"timeout" envconfig:"TIMEOUT"`
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment, then validates it
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config pre-populated with default values
func Defaults() *Config {
	return &Config{
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
		Server: ServerConfig{
			Address:         DefaultAddress,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Predictors: PredictorsConfig{
			Timeout: DefaultPredictorTimeout,
		},
		Thresholds: estimation.DefaultThresholds(),
	}
}

func validate(cfg *Config) error {
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if cfg.Server.Address == "" {
		return fmt.Errorf("server.address cannot be empty")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if cfg.Predictors.Timeout <= 0 {
		return fmt.Errorf("predictors.timeout must be positive")
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	return nil
}

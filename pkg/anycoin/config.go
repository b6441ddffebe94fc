package anycoin

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/gagarin55/wallet-core/pkg/log"
)

const (
	configDirPathEnv     = "WALLETCORE_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
)

// Config is the environment configuration of a Core.
type Config struct {
	Log              log.Config
	MetricsNamespace string `env:"WALLETCORE_METRICS_NAMESPACE" env-default:"walletcore"`
	// RegistryPath replaces the embedded coin catalogue when set.
	RegistryPath string `env:"WALLETCORE_REGISTRY_PATH"`
}

// LoadConfig reads the configuration from the environment, after loading the
// .env file of the config directory if there is one.
func LoadConfig(lg log.Logger) (*Config, error) {
	lg = lg.WithName("config")

	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}

	configDotEnvPath := filepath.Join(configDirPath, ".env")
	lg.Debug("loading .env file", "path", configDotEnvPath)
	if err := godotenv.Load(configDotEnvPath); err != nil {
		lg.Debug(".env file not found", "path", configDotEnvPath)
	}

	var conf Config
	if err := cleanenv.ReadEnv(&conf); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	lvl, err := log.ParseLevel(string(conf.Log.Level))
	if err != nil {
		return nil, err
	}
	conf.Log.Level = lvl

	return &conf, nil
}

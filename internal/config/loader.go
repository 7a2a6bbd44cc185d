package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlags registers a CLI flag set as a configuration layer: flags
// that share a name with a config key override file and env values.
func BindFlags(flags *pflag.FlagSet) error {
	return viper.BindPFlags(flags)
}

// Load builds the daemon configuration from defaults, an optional
// config file, environment variables (MLHMOCK_ prefix), and bound
// CLI flags, in increasing precedence.
func Load() (*Config, error) {
	setupViper()

	cfg := Default()

	if configPath := viper.GetString("config"); configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupViper() {
	viper.SetEnvPrefix("MLHMOCK")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault("listen", DefaultListen)
	viper.SetDefault("config", "")
	// Registering the keys lets environment overrides apply even when
	// no config file or flag mentions them.
	viper.SetDefault("client-id", "")
	viper.SetDefault("client-secret", "")
	viper.SetDefault("callback-urls", []string{})
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.enable_console", true)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config is built once at startup and passed explicitly to the pieces
// that need it. No package-level singletons.
type Config struct {
	Server struct {
		Address  string `mapstructure:"address"`   // 0.0.0.0
		HTTPPort string `mapstructure:"http_port"` // 8080
	} `mapstructure:"server"`

	Auth struct {
		Secret          string `mapstructure:"secret"`            // JWT signing secret
		TokenTTLMinutes int    `mapstructure:"token_ttl_minutes"` // access token lifetime
		BcryptCost      int    `mapstructure:"bcrypt_cost"`
	} `mapstructure:"auth"`

	Billing struct {
		DomainFee float64 `mapstructure:"domain_fee"` // flat per-order domain price
		VATRate   float64 `mapstructure:"vat_rate"`   // e.g. 0.20
	} `mapstructure:"billing"`

	Logging struct {
		Level  string `mapstructure:"level"`  // trace|debug|info|warning|error|fatal
		Format string `mapstructure:"format"` // text|json
		File   string `mapstructure:"file"`   // file path/prefix, empty = stdout only
	} `mapstructure:"logs"`

	Database struct {
		Driver string `mapstructure:"driver"` // "sqlite" | "postgres" | "mysql"
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"database"`
}

// TokenTTL returns the configured access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// Load reads config from env/file with defaults.
func Load() (*Config, error) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.address", "0.0.0.0")
	viper.SetDefault("server.http_port", "8080")

	viper.SetDefault("auth.secret", "CHANGE_ME")
	viper.SetDefault("auth.token_ttl_minutes", 30)
	viper.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)

	viper.SetDefault("billing.domain_fee", 1.00)
	viper.SetDefault("billing.vat_rate", 0.20)

	viper.SetDefault("logs.level", "info")
	viper.SetDefault("logs.format", "text")
	viper.SetDefault("logs.file", "")

	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "cloud_nexus.db")

	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			viper.AddConfigPath(filepath.Join(xdg, "cloud-nexus"))
		}
		viper.AddConfigPath("/etc/cloud-nexus")
	}

	// The config file is optional.
	if err := viper.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("config read error: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func validate(c *Config) error {
	if strings.TrimSpace(c.Auth.Secret) == "" || c.Auth.Secret == "CHANGE_ME" {
		return errors.New("auth.secret must be set (not empty and not CHANGE_ME)")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return errors.New("auth.token_ttl_minutes must be positive")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Billing.VATRate < 0 || c.Billing.DomainFee < 0 {
		return errors.New("billing values must not be negative")
	}
	if strings.TrimSpace(c.Server.Address) == "" {
		return errors.New("server.address must not be empty")
	}
	if strings.TrimSpace(c.Server.HTTPPort) == "" {
		return errors.New("server.http_port must not be empty")
	}
	if strings.TrimSpace(c.Database.Driver) == "" {
		return errors.New("database.driver must not be empty")
	}
	return nil
}

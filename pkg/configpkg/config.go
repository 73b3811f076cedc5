// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	DBDriver        string        `mapstructure:"DB_DRIVER"`
	DBSource        string        `mapstructure:"DB_SOURCE"`
	MigrationURL    string        `mapstructure:"MIGRATION_URL"`
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	Environement    string        `mapstructure:"GO_ENV"`
	RedisAddress    string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	PaymentCacheTTL time.Duration `mapstructure:"PAYMENT_CACHE_TTL"`
	TransferTimeout time.Duration `mapstructure:"TRANSFER_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Defaults used when neither the config file nor the environment set a value.
const (
	DefaultTransferTimeout = 5 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultPaymentCacheTTL = time.Hour
)

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("GO_ENV", "production")
	v.SetDefault("PAYMENT_CACHE_TTL", DefaultPaymentCacheTTL)
	v.SetDefault("TRANSFER_TIMEOUT", DefaultTransferTimeout)
	v.SetDefault("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout)

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	sslModeDisable = "disable"
	sslModeRequire = "require"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type (
	Config struct {
		Host       string `mapstructure:"HOST"`
		Port       string `mapstructure:"PORT"`
		GRPCPort   string `mapstructure:"GRPC_PORT"`
		DBDriver   string `mapstructure:"DB_DRIVER"`
		DBHost     string `mapstructure:"DB_HOST"`
		DBPort     string `mapstructure:"DB_PORT"`
		DBUser     string `mapstructure:"DB_USER"`
		DBPassword string `mapstructure:"DB_PASSWORD"`
		DBName     string `mapstructure:"DB_NAME"`
		DBSSLMode  string `mapstructure:"DB_SSL_MODE"`
		LogLevel   string `mapstructure:"LOG_LEVEL"`
		LogPretty  bool   `mapstructure:"LOG_PRETTY"`
		SeedFile   string `mapstructure:"SEED_FILE"`
	}
)

var defaults = map[string]interface{}{
	"HOST":        "0.0.0.0",
	"PORT":        "1323",
	"GRPC_PORT":   "9000",
	"DB_DRIVER":   DriverPostgres,
	"DB_HOST":     "0.0.0.0",
	"DB_PORT":     "5432",
	"DB_USER":     "user",
	"DB_PASSWORD": "password",
	"DB_NAME":     "db",
	"DB_SSL_MODE": sslModeDisable,
	"LOG_LEVEL":   "info",
	"LOG_PRETTY":  false,
	"SEED_FILE":   "",
}

// NewConfig reads BOOKMARKER_* variables, after loading ./.env when it exists.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	v := viper.New()
	v.SetEnvPrefix("BOOKMARKER")

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

func (c *Config) HTTPAddr() string {
	return c.Host + ":" + c.Port
}

func (c *Config) GRPCAddr() string {
	return c.Host + ":" + c.GRPCPort
}

func validate(cfg *Config) error {
	if !oneOf(cfg.DBSSLMode, sslModeDisable, sslModeRequire) {
		return errors.New(fmt.Sprintf("DB SSL mode is invalid: %s", cfg.DBSSLMode))
	}
	if !oneOf(cfg.DBDriver, DriverPostgres, DriverSQLite) {
		return errors.New(fmt.Sprintf("DB driver is invalid: %s", cfg.DBDriver))
	}
	if !oneOf(cfg.LogLevel, "debug", "info", "warn", "error") {
		return errors.New(fmt.Sprintf("log level is invalid: %s", cfg.LogLevel))
	}
	return nil
}

func oneOf(value string, valid ...string) bool {
	for _, v := range valid {
		if value == v {
			return true
		}
	}
	return false
}

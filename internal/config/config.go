package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	Port        string `mapstructure:"PORT"`
	StoreDriver string `mapstructure:"STORE_DRIVER"`

	// Mongo connection. URL wins over DB_HOST/DB_PORT when set.
	MongoURL   string `mapstructure:"URL"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBDatabase string `mapstructure:"DB_DATABASE"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTExpires        time.Duration `mapstructure:"JWT_EXPIRES"`
	AdminUser         string        `mapstructure:"ADMIN_USER"`
	AdminPasswordHash string        `mapstructure:"ADMIN_PASSWORD_HASH"`

	PublicDir    string        `mapstructure:"PUBLIC_DIR"`
	CORSOrigins  string        `mapstructure:"CORS_ORIGINS"`
	LogLevel     string        `mapstructure:"LOG_LEVEL"`
	ReadTimeout  time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"WRITE_TIMEOUT"`
}

var keys = []string{
	"PORT", "STORE_DRIVER", "URL", "DB_HOST", "DB_PORT", "DB_DATABASE", "DATABASE_URL",
	"JWT_SECRET", "JWT_EXPIRES", "ADMIN_USER", "ADMIN_PASSWORD_HASH",
	"PUBLIC_DIR", "CORS_ORIGINS", "LOG_LEVEL", "READ_TIMEOUT", "WRITE_TIMEOUT",
}

// LoadConfig loads the configuration from a .env file in path and environment variables.
// A missing .env file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.SetDefault("PORT", "8080")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "27017")
	v.SetDefault("DB_DATABASE", "juegos")
	v.SetDefault("JWT_EXPIRES", "24h")
	v.SetDefault("PUBLIC_DIR", "public")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("READ_TIMEOUT", "15s")
	v.SetDefault("WRITE_TIMEOUT", "30s")

	// Unmarshal only sees env vars that viper knows about.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case DriverMongo:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// MongoURI returns URL, or a mongodb:// URI built from DB_HOST and DB_PORT.
func (c *Config) MongoURI() string {
	if c.MongoURL != "" {
		return c.MongoURL
	}
	return fmt.Sprintf("mongodb://%s:%s", c.DBHost, c.DBPort)
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

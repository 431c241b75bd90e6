package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMongo = "mongo"
	DriverMySQL = "mysql"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ImagesDir       string        `yaml:"imagesDir"`
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// StoreConfig selects the backend every repository is built on.
type StoreConfig struct {
	Driver string `yaml:"driver"`
}

type MongoConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	ConnectTimeout time.Duration `yaml:"connectTimeout"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "json" or "console".
	Format string `yaml:"format"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            3000,
			ImagesDir:       "images",
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver: DriverMongo,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "Store",
			ConnectTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            3306,
			User:            "lessonstore",
			Password:        "secret",
			Name:            "lessonstore",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	def := Defaults()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	if err := viper.ReadInConfig(); err != nil && !isMissingFile(err) {
		return nil, fmt.Errorf("reading .env file: %w", err)
	}

	viper.AutomaticEnv()
	if err := viper.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}
	if err := viper.BindEnv("MONGODB_URI", "MONGODB_URI", "MONGO_URI"); err != nil {
		return nil, err
	}

	viper.SetDefault("SERVER_PORT", def.Server.Port)
	viper.SetDefault("IMAGES_DIR", def.Server.ImagesDir)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", strings.Join(def.Server.AllowedOrigins, ","))
	viper.SetDefault("SHUTDOWN_TIMEOUT", def.Server.ShutdownTimeout.String())
	viper.SetDefault("STORE_DRIVER", def.Store.Driver)
	viper.SetDefault("MONGODB_URI", def.Mongo.URI)
	viper.SetDefault("MONGODB_DATABASE", def.Mongo.Database)
	viper.SetDefault("MONGODB_CONNECT_TIMEOUT", def.Mongo.ConnectTimeout.String())
	viper.SetDefault("DB_HOST", def.Database.Host)
	viper.SetDefault("DB_PORT", def.Database.Port)
	viper.SetDefault("DB_USER", def.Database.User)
	viper.SetDefault("DB_PASSWORD", def.Database.Password)
	viper.SetDefault("DB_NAME", def.Database.Name)
	viper.SetDefault("DB_MAX_OPEN_CONNS", def.Database.MaxOpenConns)
	viper.SetDefault("DB_MAX_IDLE_CONNS", def.Database.MaxIdleConns)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", def.Database.ConnMaxLifetime.String())
	viper.SetDefault("LOG_LEVEL", def.Log.Level)
	viper.SetDefault("LOG_FORMAT", def.Log.Format)

	shutdownTimeout, err := time.ParseDuration(viper.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing SHUTDOWN_TIMEOUT: %w", err)
	}
	connectTimeout, err := time.ParseDuration(viper.GetString("MONGODB_CONNECT_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing MONGODB_CONNECT_TIMEOUT: %w", err)
	}
	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            viper.GetInt("SERVER_PORT"),
			ImagesDir:       viper.GetString("IMAGES_DIR"),
			AllowedOrigins:  splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			ShutdownTimeout: shutdownTimeout,
		},
		Store: StoreConfig{
			Driver: strings.ToLower(strings.TrimSpace(viper.GetString("STORE_DRIVER"))),
		},
		Mongo: MongoConfig{
			URI:            viper.GetString("MONGODB_URI"),
			Database:       viper.GetString("MONGODB_DATABASE"),
			ConnectTimeout: connectTimeout,
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: strings.ToLower(viper.GetString("LOG_FORMAT")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values the process cannot start without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGODB_URI is required when STORE_DRIVER=%s", DriverMongo)
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("MONGODB_DATABASE is required when STORE_DRIVER=%s", DriverMongo)
		}
	case DriverMySQL:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required when STORE_DRIVER=%s", DriverMySQL)
		}
	default:
		return fmt.Errorf("unsupported store driver %q (must be %s or %s)", c.Store.Driver, DriverMongo, DriverMySQL)
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

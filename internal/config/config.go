package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	// Config represents an application configuration.
	Config struct {
		// The data source name (DSN) for connecting to the database.
		DSN string `yaml:"dsn" env:"DATABASE_URI"`
		// Subconfigs.
		HTTPServer HTTPServer `yaml:"http_server"`
		JWT        JWT        `yaml:"jwt"`
		Logger     Logger     `yaml:"logger"`
		Uploads    Uploads    `yaml:"uploads"`
		// Cost of the password to hash. Must be greater than 3.
		PasswordHashCost int `yaml:"password_hash_cost" env-default:"14"`
	}
	// Config for HTTP server.
	HTTPServer struct {
		// The server startup address.
		Address string `yaml:"run_address" env:"RUN_ADDRESS" env-default:"127.0.0.1:8080"`
		// Read Header Timeout in seconds.
		Timeout time.Duration `yaml:"timeout" env-default:"5s"`
		// Idle timeout in seconds.
		IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
		// Shutdown timeout in seconds.
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
	}
	// Config for application's logger.
	Logger struct {
		// Path to store log files.
		Path string `yaml:"path" env:"LOG_PATH"`
		// Application logging level.
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		// Log files details.
		MaxSizeMB  int `yaml:"max_size_mb"`
		MaxBackups int `yaml:"max_backups"`
		MaxAgeDays int `yaml:"max_age_days"`
	}
	// Config for JWT.
	JWT struct {
		// JWT signing key.
		SigningKey string `yaml:"signing_key" env:"JWT_SIGNING_KEY"`
		// JWT expiration in hours.
		Expiration time.Duration `yaml:"expiration" env:"JWT_EXPIRATION" env-default:"720h"`
	}
	// Config for product image uploads.
	Uploads struct {
		// Directory where uploaded images are stored.
		Dir string `yaml:"dir" env:"UPLOADS_DIR" env-default:"./uploads"`
		// Maximum accepted image size in bytes.
		MaxSizeBytes int64 `yaml:"max_size_bytes" env-default:"5242880"`
		// Minimum interval between uploads.
		RateInterval time.Duration `yaml:"rate_interval" env-default:"1s"`
		// Burst size of the upload rate limiter.
		RateBurst int `yaml:"rate_burst" env-default:"5"`
	}
)

// MustLoad returns an application configuration which is populated
// from the given configuration file, environment variables and flags.
func MustLoad() *Config {
	var cfg Config

	// Configuration yaml file path.
	configPath := flag.String("config", "./config/local.yml", "path to the config file")
	flag.StringVar(&cfg.HTTPServer.Address, "a", "127.0.0.1:8080", "server startup address")
	flag.StringVar(&cfg.DSN, "d", "", "server data source name")
	flag.Parse()

	// Check if file exists.
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", *configPath)
	}

	// Load from YAML cfg file.
	file, err := os.Open(*configPath)
	if err != nil {
		log.Fatalf("failed to open config file: %s", *configPath)
	}
	defer file.Close()

	if err = cleanenv.ParseYAML(file, &cfg); err != nil {
		log.Fatalf("failed to parse config file: %s", *configPath)
	}

	// Read environment variables.
	if err = cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read environment variables: %v", err)
	}

	return &cfg
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server
	ServerPort         string   `yaml:"server_port"`
	GinMode            string   `yaml:"gin_mode"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	// Database
	DBDriver   string `yaml:"db_driver"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSSLMode  string `yaml:"db_sslmode"`
	DBPath     string `yaml:"db_path"`

	// Redis
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// Session
	SessionSecret       string        `yaml:"session_secret"`
	SessionCookieName   string        `yaml:"session_cookie_name"`
	SessionLifetime     time.Duration `yaml:"session_lifetime"`
	SessionCookieSecure bool          `yaml:"session_cookie_secure"`

	// Admin account
	AdminUsername     string `yaml:"admin_username"`
	AdminPasswordHash string `yaml:"admin_password_hash"`

	LoginRateLimit  int           `yaml:"login_rate_limit"`
	LoginRateWindow time.Duration `yaml:"login_rate_window"`

	// Uploads
	StorageDriver     string   `yaml:"storage_driver"`
	UploadDir         string   `yaml:"upload_dir"`
	UploadMaxSize     int64    `yaml:"upload_max_size"`
	AllowedImageTypes []string `yaml:"allowed_image_types"`
	AllowedVideoTypes []string `yaml:"allowed_video_types"`

	// AWS S3
	AWSRegion          string `yaml:"aws_region"`
	AWSAccessKeyID     string `yaml:"aws_access_key_id"`
	AWSSecretAccessKey string `yaml:"aws_secret_access_key"`
	AWSEndpoint        string `yaml:"aws_endpoint"`
	S3UseSSL           string `yaml:"s3_use_ssl"`
	S3BucketName       string `yaml:"s3_bucket_name"`

	// RabbitMQ, disabled when host is empty
	RabbitMQHost     string `yaml:"rabbitmq_host"`
	RabbitMQPort     string `yaml:"rabbitmq_port"`
	RabbitMQUser     string `yaml:"rabbitmq_user"`
	RabbitMQPassword string `yaml:"rabbitmq_password"`
}

const (
	StorageLocal = "local"
	StorageS3    = "s3"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "release"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),

		DBDriver:   getEnv("DB_DRIVER", DriverPostgres),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "someplanner"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "someplanner.db"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SessionSecret:       getEnv("SESSION_SECRET", ""),
		SessionCookieName:   getEnv("SESSION_COOKIE_NAME", "planner_session"),
		SessionLifetime:     getEnvDuration("SESSION_LIFETIME", 8*time.Hour),
		SessionCookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getEnvDuration("LOGIN_RATE_WINDOW", 15*time.Minute),

		StorageDriver:     getEnv("STORAGE_DRIVER", StorageLocal),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		UploadMaxSize:     getEnvInt64("UPLOAD_MAX_SIZE", 50*1024*1024),
		AllowedImageTypes: getEnvList("ALLOWED_IMAGE_TYPES", []string{"image/jpeg", "image/png", "image/gif", "image/webp"}),
		AllowedVideoTypes: getEnvList("ALLOWED_VIDEO_TYPES", []string{"video/mp4", "video/quicktime", "video/x-msvideo"}),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", ""),
		S3UseSSL:           getEnv("S3_USE_SSL", "true"),
		S3BucketName:       getEnv("S3_BUCKET_NAME", "someplanner-media"),

		RabbitMQHost:     getEnv("RABBITMQ_HOST", ""),
		RabbitMQPort:     getEnv("RABBITMQ_PORT", "5672"),
		RabbitMQUser:     getEnv("RABBITMQ_USER", "guest"),
		RabbitMQPassword: getEnv("RABBITMQ_PASSWORD", "guest"),
	}

	// Values from the YAML file win over the environment for the keys it sets
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.LoadFile(path); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// LoadFile overlays the keys present in a YAML file onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings the planner cannot start without.
func (c *Config) Validate() error {
	if c.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME must be set")
	}
	if c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH must be set")
	}
	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 bytes")
	}
	if c.SessionLifetime <= 0 {
		return fmt.Errorf("SESSION_LIFETIME must be positive")
	}
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.StorageDriver {
	case StorageLocal, StorageS3:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
	)
}

func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.RabbitMQUser,
		c.RabbitMQPassword,
		c.RabbitMQHost,
		c.RabbitMQPort,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("8h") or plain seconds ("28800").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

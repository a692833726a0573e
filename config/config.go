package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, read from .env and the process
// environment on top of the struct-tag defaults.
type Config struct {
	Env              string        `default:"dev"`
	Port             string        `default:"8083"`
	LogLevel         string        `default:"info"`
	LogDir           string
	InventoryRetries int           `default:"3"`
	AuditSchedule    string        `default:"@hourly"`
	RequestTimeout   time.Duration `default:"15s"`
	CORSOrigins      []string

	DB         DBConfig
	Redis      RedisConfig
	Cloudinary CloudinaryConfig
	Auth       AuthConfig
}

type DBConfig struct {
	Host            string `default:"localhost"`
	Port            string `default:"5432"`
	User            string
	Password        string
	Name            string
	SSLMode         string        `default:"require"`
	TimeZone        string        `default:"UTC"`
	MaxOpenConns    int           `default:"20"`
	MaxIdleConns    int           `default:"5"`
	ConnMaxLifetime time.Duration `default:"30m"`
}

type RedisConfig struct {
	Addr     string `default:"localhost:6379"`
	Username string
	Password string
	DB       int `default:"0"`
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string `default:"accommodations"`
}

// Enabled reports whether image uploads can be served.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type AuthConfig struct {
	SecretKey     string
	TokenTTL      time.Duration `default:"72h"`
	AdminEmail    string
	AdminPassword string
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded, using process environment: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

// Load builds the configuration. It fails when a required secret is missing
// or ENV names an unknown environment.
func Load() (*Config, error) {
	LoadEnv()

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}

	setString(&cfg.Env, "ENV")
	setString(&cfg.Port, "PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogDir, "LOG_DIR")
	setString(&cfg.AuditSchedule, "AUDIT_SCHEDULE")
	if err := setInt(&cfg.InventoryRetries, "INVENTORY_RETRIES"); err != nil {
		return nil, err
	}
	if err := setDuration(&cfg.RequestTimeout, "REQUEST_TIMEOUT"); err != nil {
		return nil, err
	}
	if origins := GetEnv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if err := loadDBConfigByEnv(cfg.Env, &cfg.DB); err != nil {
		return nil, err
	}

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Username, "REDIS_USER")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	if err := setInt(&cfg.Redis.DB, "REDIS_DB"); err != nil {
		return nil, err
	}

	setString(&cfg.Cloudinary.CloudName, "CLOUDINARY_CLOUD_NAME")
	setString(&cfg.Cloudinary.APIKey, "CLOUDINARY_API_KEY")
	setString(&cfg.Cloudinary.APISecret, "CLOUDINARY_API_SECRET")
	setString(&cfg.Cloudinary.Folder, "CLOUDINARY_FOLDER")

	setString(&cfg.Auth.SecretKey, "SECRET_KEY_ACCESS_TOKEN")
	setString(&cfg.Auth.AdminEmail, "ADMIN_EMAIL")
	setString(&cfg.Auth.AdminPassword, "ADMIN_PASSWORD")
	if minutes := GetEnv("TOKEN_TTL_MINUTES"); minutes != "" {
		n, err := strconv.Atoi(minutes)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES %q", minutes)
		}
		cfg.Auth.TokenTTL = time.Duration(n) * time.Minute
	}
	if cfg.Auth.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY_ACCESS_TOKEN is required")
	}
	if cfg.InventoryRetries < 1 {
		cfg.InventoryRetries = 1
	}

	return cfg, nil
}

func setString(dst *string, key string) {
	if v := GetEnv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := GetEnv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := GetEnv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

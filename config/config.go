package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Remote marketplace API.
	APIBaseURL    string        `mapstructure:"API_BASE_URL"`
	APITimeout    time.Duration `mapstructure:"API_TIMEOUT"`
	APIRatePerSec float64       `mapstructure:"API_RATE_PER_SEC"`
	APIRateBurst  int           `mapstructure:"API_RATE_BURST"`

	// Web frontend (BFF).
	WebAddr        string        `mapstructure:"WEB_ADDR"`
	WebCORSOrigins []string      `mapstructure:"WEB_CORS_ORIGINS"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	SessionCookie  string        `mapstructure:"SESSION_COOKIE"`

	// Redis session store for the web frontend. Empty addr falls back to the
	// in-process store.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Lifecycle policy: whether cancel is offered once work is in progress.
	AllowCancelInProgress bool `mapstructure:"ALLOW_CANCEL_IN_PROGRESS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("API_RATE_PER_SEC", 20.0)
	viper.SetDefault("API_RATE_BURST", 40)
	viper.SetDefault("WEB_ADDR", ":3000")
	viper.SetDefault("WEB_CORS_ORIGINS", []string{"http://localhost:5173"})
	viper.SetDefault("SESSION_TTL", "12h")
	viper.SetDefault("SESSION_COOKIE", "aura_session")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ALLOW_CANCEL_IN_PROGRESS", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	MongoDatabase     string `mapstructure:"MONGO_DATABASE"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Reminder queue worker.
	ReminderConcurrency int `mapstructure:"REMINDER_CONCURRENCY"`

	// Google Maps API Key for travel routing.
	GoogleAPIKey string `mapstructure:"GOOGLE_API_KEY"`

	// Studio home base; zero lat/lng means no home base is configured
	// and travel estimates degrade to none.
	HomeBaseLat     float64 `mapstructure:"HOME_BASE_LAT"`
	HomeBaseLng     float64 `mapstructure:"HOME_BASE_LNG"`
	HomeBaseEnabled bool    `mapstructure:"HOME_BASE_ENABLED"`

	// Travel fee policy.
	TravelFreeMiles       float64 `mapstructure:"TRAVEL_FREE_MILES"`
	TravelFeeCentsPerMile int64   `mapstructure:"TRAVEL_FEE_CENTS_PER_MILE"`
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
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LOCK_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("REMINDER_CONCURRENCY", 10)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "studioflow")
	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("HOME_BASE_ENABLED", false)
	viper.SetDefault("HOME_BASE_LAT", 0.0)
	viper.SetDefault("HOME_BASE_LNG", 0.0)
	viper.SetDefault("TRAVEL_FREE_MILES", 10.0)
	viper.SetDefault("TRAVEL_FEE_CENTS_PER_MILE", 65)

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

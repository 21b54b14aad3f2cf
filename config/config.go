package config

import (
	"time"

	"mealvote/internal/logger"

	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion   string `mapstructure:"GENERAL_VERSION"`
	Environment      string `mapstructure:"ENVIRONMENT"`
	ServerPort       int    `mapstructure:"SERVER_PORT"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     int    `mapstructure:"DB_PORT"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	CacheAddress     string `mapstructure:"DB_CACHE_ADDRESS"`
	CachePort        int    `mapstructure:"DB_CACHE_PORT"`
	CorsAllowOrigins string `mapstructure:"CORS_ALLOW_ORIGINS"`
	JWTSecret        string `mapstructure:"JWT_SECRET"`
	Timezone         string `mapstructure:"APP_TIMEZONE"`
	PollOpenAt       string `mapstructure:"POLL_OPEN_AT"`
	PollCloseAt      string `mapstructure:"POLL_CLOSE_AT"`
	SchedulerEnabled bool   `mapstructure:"SCHEDULER_ENABLED"`

	// Optional bootstrap staff account created by the migration command.
	BootstrapStaffEmail    string `mapstructure:"BOOTSTRAP_STAFF_EMAIL"`
	BootstrapStaffPassword string `mapstructure:"BOOTSTRAP_STAFF_PASSWORD"`
}

var ConfigInstance Config

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT",
		"CORS_ALLOW_ORIGINS", "JWT_SECRET",
		"APP_TIMEZONE", "POLL_OPEN_AT", "POLL_CLOSE_AT", "SCHEDULER_ENABLED",
		"BOOTSTRAP_STAFF_EMAIL", "BOOTSTRAP_STAFF_PASSWORD",
	}
	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	viper.SetDefault("APP_TIMEZONE", "Asia/Phnom_Penh")
	viper.SetDefault("POLL_OPEN_AT", "07:00")
	viper.SetDefault("POLL_CLOSE_AT", "16:00")
	viper.SetDefault("SCHEDULER_ENABLED", true)

	if viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST") {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")
		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	log.Info("Successfully initialized config",
		"port", config.ServerPort,
		"timezone", config.Timezone,
		"pollOpenAt", config.PollOpenAt,
		"pollCloseAt", config.PollCloseAt,
	)
	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

// Location resolves the configured application timezone. All "today"
// computations for polls and the scheduler run in this location.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error("Fatal error: invalid server port", "port", config.ServerPort)
	}

	if config.JWTSecret == "" {
		return log.ErrMsg("Fatal error: JWT_SECRET is required")
	}

	if _, err := time.LoadLocation(config.Timezone); err != nil {
		return log.Err("Fatal error: invalid APP_TIMEZONE", err, "timezone", config.Timezone)
	}

	for _, at := range []string{config.PollOpenAt, config.PollCloseAt} {
		if _, err := time.Parse("15:04", at); err != nil {
			return log.Err("Fatal error: schedule times must be HH:MM", err, "value", at)
		}
	}

	ConfigInstance = config
	return nil
}

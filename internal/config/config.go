package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// Redis
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// Audit retention
	AuditRetentionDays int `mapstructure:"AUDIT_RETENTION_DAYS"`
	AuditSweepMinutes  int `mapstructure:"AUDIT_SWEEP_MINUTES"`
	PublicCacheSeconds int `mapstructure:"PUBLIC_CACHE_SECONDS"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Defaults: audit entries kept 90 days, swept hourly
	viper.SetDefault("AUDIT_RETENTION_DAYS", 90)
	viper.SetDefault("AUDIT_SWEEP_MINUTES", 60)
	viper.SetDefault("PUBLIC_CACHE_SECONDS", 300)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}

package config

import (
	"os"
	"time"
)

// Config carries everything read from the environment. main loads .env first
// so local runs work without exporting anything.
type Config struct {
	Port      string
	LogLevel  string
	DBUser    string
	DBPass    string
	DBHost    string
	DBPort    string
	DBName    string
	JWTSecret string
	TokenTTL  time.Duration
	RedisAddr string
	SMTPHost  string
	SMTPPort  string
	EmailUser string
	EmailPass string
}

func FromEnv() *Config {
	return &Config{
		Port:      getEnv("PORT", "3001"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		DBUser:    getEnv("DB_USER", "root"),
		DBPass:    getEnv("DB_PASS", "1234"),
		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "3306"),
		DBName:    getEnv("DB_NAME", "hisaab"),
		JWTSecret: getEnv("JWT_SECRET", "Secret_of_JWT"),
		TokenTTL:  getDuration("TOKEN_TTL", time.Hour),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		SMTPHost:  getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  getEnv("SMTP_PORT", "587"),
		EmailUser: os.Getenv("EMAIL_USER"),
		EmailPass: os.Getenv("EMAIL_PASS"),
	}
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

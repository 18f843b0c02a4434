package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL   string
	JWTSecret     string
	JWTExpiration time.Duration
	ServerPort    string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	MailFrom      string
	FrontendURL   string
}

func Load() *Config {
	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/interneefy"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiration: 24 * time.Hour,
		ServerPort:    getEnv("SERVER_PORT", "4000"),
		SMTPHost:      getEnv("EMAIL_HOST", ""),
		SMTPPort:      getEnvInt("EMAIL_PORT", 587),
		SMTPUser:      getEnv("EMAIL_USER", ""),
		SMTPPassword:  getEnv("EMAIL_PASSWORD", ""),
		MailFrom:      getEnv("MAIL_FROM", ""),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000/login"),
	}
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

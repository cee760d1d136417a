package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	AdminUsername string
	UploadsDir    string
	MaxUploadMB   int64
}

func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "lanchat"),
		DBPassword:    getEnv("DB_PASSWORD", "lanchat_dev_password"),
		DBName:        getEnv("DB_NAME", "lanchat"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		AdminUsername: getEnv("ADMIN_USERNAME", "zete"),
		UploadsDir:    getEnv("UPLOADS_DIR", "uploads"),
		MaxUploadMB:   getEnvInt("MAX_UPLOAD_MB", 50),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int64) int64 {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fallback
	}

	return n
}

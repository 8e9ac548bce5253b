package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppName                 string
	Port                    string
	DatabaseURL             string
	DBHost                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBPort                  string
	JWTSecret               string
	TokenTTLHours           int
	LogLevel                string
	Timezone                string
	LowStockThreshold       int
	CustomerDiscountPercent int64
	AdminUsername           string
	AdminPassword           string
}

func Load() Config {
	ttl, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttl < 1 {
		ttl = 24
	}
	lowStock, err := strconv.Atoi(getEnv("LOW_STOCK_THRESHOLD", "10"))
	if err != nil || lowStock < 0 {
		lowStock = 10
	}
	discount, err := strconv.ParseInt(getEnv("CUSTOMER_DISCOUNT_PERCENT", "10"), 10, 64)
	if err != nil || discount < 0 || discount > 100 {
		discount = 10
	}

	return Config{
		AppName:                 getEnv("APP_NAME", "Kasir POS v1.0"),
		Port:                    getEnv("PORT", "3000"),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBHost:                  getEnv("DB_HOST", "localhost"),
		DBUser:                  getEnv("DB_USER", "postgres"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  getEnv("DB_NAME", "kasir"),
		DBPort:                  getEnv("DB_PORT", "5432"),
		JWTSecret:               strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTLHours:           ttl,
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		Timezone:                getEnv("TIMEZONE", "Asia/Jakarta"),
		LowStockThreshold:       lowStock,
		CustomerDiscountPercent: discount,
		AdminUsername:           getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:           getEnv("ADMIN_PASSWORD", "admin123"),
	}
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

// DSN prefers DATABASE_URL and falls back to the discrete DB_* variables.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.Timezone,
	)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

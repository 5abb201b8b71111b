package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	// Payment provider credentials. Key and salt sign every token request
	// and verify every callback; they are never logged or transmitted.
	PayTRMerchantID   string
	PayTRMerchantKey  string
	PayTRSalt         string
	PayTRTokenURL     string
	PayTROkURL        string
	PayTRFailURL      string
	MerchantOidPrefix string

	ExchangeRateURL      string
	ExchangeRateInterval time.Duration

	SessionSecret string
}

// LoadConfig loads configuration from environment variables. A missing .env
// file is fine in deployed environments where variables are set directly.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),

		PayTRMerchantID:   os.Getenv("PAYTR_MERCHANT_ID"),
		PayTRMerchantKey:  os.Getenv("PAYTR_MERCHANT_KEY"),
		PayTRSalt:         os.Getenv("PAYTR_MERCHANT_SALT"),
		PayTRTokenURL:     os.Getenv("PAYTR_TOKEN_URL"),
		PayTROkURL:        os.Getenv("PAYTR_OK_URL"),
		PayTRFailURL:      os.Getenv("PAYTR_FAIL_URL"),
		MerchantOidPrefix: os.Getenv("MERCHANT_OID_PREFIX"),

		ExchangeRateURL: os.Getenv("EXCHANGE_RATE_URL"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
	}

	if config.Port == "" {
		config.Port = "8080"
	}
	if config.MerchantOidPrefix == "" {
		config.MerchantOidPrefix = "QRM"
	}
	if config.SessionSecret == "" {
		config.SessionSecret = config.JWTSecret
	}

	hours, err := strconv.Atoi(os.Getenv("EXCHANGE_RATE_INTERVAL_HOURS"))
	if err != nil || hours < 1 {
		hours = 6
	}
	config.ExchangeRateInterval = time.Duration(hours) * time.Hour

	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return config, nil
}

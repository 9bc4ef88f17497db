package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	// Shared secret for gateway signature verification. The JWT secret is
	// read from the environment by the user package, which also serves the
	// auth middleware.
	RazorpaySecretKey string

	// Business rule: orders at or above the threshold ship free.
	FreeDeliveryThreshold float64
	DeliveryCharge        float64
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),

		RazorpaySecretKey: os.Getenv("RAZORPAY_SECRET_KEY"),

		FreeDeliveryThreshold: 500,
		DeliveryCharge:        40,
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	return cfg
}

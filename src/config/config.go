package config

import (
	"errors"
	"fmt"
	"os"
)

// Config holds every environment-derived setting. It is loaded once in main
// and passed to the components that need it.
type Config struct {
	DatabaseHost     string
	DatabasePort     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseSSLMode  string
	DatabaseTimezone string

	AdminAddress   string
	AdminJWTSecret string

	AlgodURL   string
	AlgodToken string

	Port      string
	AdminPort string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseHost:     os.Getenv("DATABASE_HOST"),
		DatabasePort:     os.Getenv("DATABASE_PORT"),
		DatabaseUser:     os.Getenv("DATABASE_USER"),
		DatabasePassword: os.Getenv("DATABASE_PASSWORD"),
		DatabaseName:     os.Getenv("DATABASE_NAME"),
		DatabaseSSLMode:  os.Getenv("DATABASE_SSLMODE"),
		DatabaseTimezone: os.Getenv("DATABASE_TIMEZONE"),
		AdminAddress:     os.Getenv("FLUX_TRAIL_ADMIN_ADDRESS"),
		AdminJWTSecret:   os.Getenv("ADMIN_JWT_SECRET"),
		AlgodURL:         os.Getenv("ALGOD_URL"),
		AlgodToken:       os.Getenv("ALGOD_TOKEN"),
		Port:             os.Getenv("PORT"),
		AdminPort:        os.Getenv("ADMIN_PORT"),
	}
	if cfg.Port == "" {
		cfg.Port = "4000"
	}
	if cfg.AdminPort == "" {
		cfg.AdminPort = "3000"
	}
	if cfg.AdminAddress == "" {
		return nil, errors.New("FLUX_TRAIL_ADMIN_ADDRESS is not set")
	}
	if cfg.AdminJWTSecret == "" {
		return nil, errors.New("ADMIN_JWT_SECRET is not set")
	}
	return cfg, nil
}

func (c *Config) GetDSN() string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", c.DatabaseHost, c.DatabaseUser, c.DatabasePassword, c.DatabaseName, c.DatabasePort, c.DatabaseSSLMode, c.DatabaseTimezone)
	return dsn
}

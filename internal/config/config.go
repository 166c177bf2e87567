package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Rafium-MS/territorio-app/internal/utils"
)

const AppName = "territorio-app"

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Database
	DBUrl string

	// Auth
	JWTSecret []byte
	TokenTTL  time.Duration

	// Behavior toggles
	SeedDemoData       bool
	CORSAllowLocalhost bool
}

// LoadConfig reads configuration from the environment (an optional .env file
// is loaded first). Missing required variables are fatal.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file loaded; relying on process environment")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		utils.Logger.Fatal("JWT_SECRET env var is missing")
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "8080"
	}

	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		appUrl = "http://localhost:" + appPort
	}

	tokenTTL := 30 * 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			utils.Logger.Fatalf("TOKEN_TTL_HOURS invalid: %q", v)
		}
		tokenTTL = time.Duration(hours) * time.Hour
	}

	return &Config{
		AppName:            AppName,
		AppPort:            appPort,
		AppUrl:             appUrl,
		DBUrl:              dbURL,
		JWTSecret:          []byte(jwtSecret),
		TokenTTL:           tokenTTL,
		SeedDemoData:       envBool("SEED_DEMO_DATA", false),
		CORSAllowLocalhost: envBool("CORS_ALLOW_LOCALHOST", true),
	}
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.Logger.Warnf("Invalid %s value %q, defaulting to %t", key, v, def)
		return def
	}
	return b
}

func (c *Config) Close() {}

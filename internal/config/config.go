package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/lodgeline/rent-service/internal/utils"
)

const AppName = "rent-service"

type Config struct {
	AppName            string
	AppPort            string
	AppUrl             string
	DBUrl              string
	RSAPublicKey       *rsa.PublicKey
	SeedDbWithTestData bool
}

// LoadConfig reads configuration from the environment (a local .env file is
// honored when present) and fails hard on anything missing. A service
// running with half a config is worse than one that refuses to start.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Info("No .env file found; using process environment")
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	pubKeyB64 := os.Getenv("RSA_PUBLIC_KEY_BASE64")
	if pubKeyB64 == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	pubKeyPEM, err := base64.StdEncoding.DecodeString(pubKeyB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	rsaPubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key PEM")
	}

	return &Config{
		AppName:            AppName,
		AppPort:            appPort,
		AppUrl:             appUrl,
		DBUrl:              dbURL,
		RSAPublicKey:       rsaPubKey,
		SeedDbWithTestData: os.Getenv("SEED_TEST_DATA") == "true",
	}
}

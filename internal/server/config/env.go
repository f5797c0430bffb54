package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// EnvConfig mirrors Config with env tags. It is prefilled from the current
// Config before parsing, so variables that are not set leave the existing
// values untouched.
type EnvConfig struct {
	EndpointAddr          string        `env:"ENDPOINT_ADDR"`
	DatabaseDSN           string        `env:"DATABASE_DSN"`
	SecretKey             string        `env:"SECRET_KEY"`
	TokenValidityDuration time.Duration `env:"TOKEN_VALIDITY_DURATION"`
	TLSCertFile           string        `env:"TLS_CERT_FILE"`
	TLSKeyFile            string        `env:"TLS_KEY_FILE"`
	ModelPath             string        `env:"MODEL_PATH"`
	ModelFromS3           bool          `env:"MODEL_FROM_S3"`
	S3RootUser            string        `env:"S3_ROOT_USER"`
	S3RootPassword        string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket              string        `env:"S3_BUCKET"`
	S3Region              string        `env:"S3_REGION"`
	S3BaseEndpoint        string        `env:"S3_BASE_ENDPOINT"`
	LogLevel              string        `env:"LOG_LEVEL"`
}

// parseEnv overlays environment variables onto the Config. A .env file in
// the working directory is loaded first when present (development
// convenience); real environment variables win over .env entries.
func parseEnv(config *Config) {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	c := &EnvConfig{
		EndpointAddr:          config.EndpointAddr,
		DatabaseDSN:           config.DatabaseDSN,
		SecretKey:             config.SecretKey,
		TokenValidityDuration: config.TokenValidityDuration,
		TLSCertFile:           config.TLSCertFile,
		TLSKeyFile:            config.TLSKeyFile,
		ModelPath:             config.ModelPath,
		ModelFromS3:           config.ModelFromS3,
		S3RootUser:            config.S3RootUser,
		S3RootPassword:        config.S3RootPassword,
		S3Bucket:              config.S3Bucket,
		S3Region:              config.S3Region,
		S3BaseEndpoint:        config.S3BaseEndpoint,
		LogLevel:              config.LogLevel,
	}

	if err := env.Parse(c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = c.TokenValidityDuration
	config.TLSCertFile = c.TLSCertFile
	config.TLSKeyFile = c.TLSKeyFile
	config.ModelPath = c.ModelPath
	config.ModelFromS3 = c.ModelFromS3
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.LogLevel = c.LogLevel
}

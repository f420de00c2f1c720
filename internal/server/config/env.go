package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables. Only variables
// that are set override the current values.
//
// Recognized variables:
//
//	SERVER_ADDRESS   HTTP bind address
//	DATABASE_URL     PostgreSQL DSN
//	JWT_SECRET       HMAC secret for signing tokens
//	TOKEN_VALIDITY   access token lifetime (Go duration string, e.g. "168h")
//	CORS_ORIGINS     comma-separated allowed origins
//	GEMINI_API_KEY   generative API key for the chat agent
//	GEMINI_MODEL     generative model name
//	GEMINI_ENDPOINT  generative API base URL
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("SERVER_ADDRESS"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		config.CORSOrigins = v
	}
	if v, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
		config.GeminiAPIKey = v
	}
	if v, ok := os.LookupEnv("GEMINI_MODEL"); ok {
		config.GeminiModel = v
	}
	if v, ok := os.LookupEnv("GEMINI_ENDPOINT"); ok {
		config.GeminiEndpoint = v
	}
}

package config

import (
	"crypto/rsa"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type Config struct {
	JWTPrivateKey  *rsa.PrivateKey
	JWTPublicKey   *rsa.PublicKey
	DatabaseURL    string
	RedisAddress   string
	RedisPassword  string
	Port           string
	SessionTTL     time.Duration
	AllowedOrigins []string
}

func Load() *Config {
	// Local development reads a .env file; in a cluster the variables
	// come from the deployment.
	_ = godotenv.Load()

	privateKey, err := loadPrivateKey(envOr("PRIVATE_KEY_PATH", "/etc/certs/private.pem"))
	if err != nil {
		panic("Failed to load private key: " + err.Error())
	}
	publicKey, err := loadPublicKey(envOr("PUBLIC_KEY_PATH", "/etc/certs/public.pem"))
	if err != nil {
		panic("Failed to load public key: " + err.Error())
	}

	sessionTTL := 24 * time.Hour
	if raw := os.Getenv("SESSION_TTL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			sessionTTL = time.Duration(hours) * time.Hour
		}
	}

	origins := []string{"*"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}

	return &Config{
		JWTPrivateKey:  privateKey,
		JWTPublicKey:   publicKey,
		DatabaseURL:    mustEnv("DB_CONNECTION_STRING"),
		RedisAddress:   envOr("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		Port:           envOr("PORT", "8080"),
		SessionTTL:     sessionTTL,
		AllowedOrigins: origins,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(key + " environment variable is required")
	}
	return v
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPrivateKeyFromPEM(keyData)
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPublicKeyFromPEM(keyData)
}

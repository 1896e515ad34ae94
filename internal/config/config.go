package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultAllowedOrigins are the storefront frontends permitted to call the API.
var DefaultAllowedOrigins = []string{
	"https://mern-ecommerce-frontend-theta.vercel.app",
	"https://mern-ecommerce-frontend-git-main-victorchrollo14.vercel.app",
}

// Config holds the server configuration loaded from the environment.
type Config struct {
	Port            string
	MongoURI        string
	DBName          string
	JWTSecret       string
	TokenExpiry     time.Duration
	AllowedOrigins  []string
	AssetsDir       string
	LogLevel        string
	CartTTL         time.Duration
	JanitorSchedule string
	StorageDriver   string
}

// LoadConfig reads the .env file (if present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using process environment")
	}

	return &Config{
		Port:            getEnv("PORT", "3001"),
		MongoURI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:          getEnv("DB_NAME", "storefront"),
		JWTSecret:       getEnv("JWT_PRIVATE_KEY", ""),
		TokenExpiry:     getDuration("TOKEN_EXPIRY", 72*time.Hour),
		AllowedOrigins:  getList("CORS_ORIGINS", DefaultAllowedOrigins),
		AssetsDir:       getEnv("ASSETS_DIR", "ProductAssets"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CartTTL:         getDuration("CART_TTL", 30*24*time.Hour),
		JanitorSchedule: getEnv("JANITOR_SCHEDULE", "@daily"),
		StorageDriver:   strings.ToLower(getEnv("STORAGE_DRIVER", "mongo")),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("Invalid duration %q, using default %s", v, def)
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

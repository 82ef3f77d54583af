package config

import (
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	AppEnv string
	Port   string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret     string
	TokenTTLHours int

	// BcryptCost tunes hashing toward ~100ms per attempt on current hardware.
	BcryptCost int

	AllowedOrigins []string
	AdminAPIKey    string

	// RateLimitEnabled defaults on only in production; development and test
	// runs bypass admission control entirely unless it is forced on.
	RateLimitEnabled bool
	RedisAddr        string
}

func Load() Config {
	env := get("APP_ENV", "development")
	return Config{
		AppEnv: env,
		Port:   get("PORT", "8080"),

		DatabaseURL: get("DATABASE_URL", ""),
		DBHost:      get("DB_HOST", "localhost"),
		DBPort:      get("DB_PORT", "5432"),
		DBUser:      get("DB_USER", "postgres"),
		DBPassword:  get("DB_PASSWORD", ""),
		DBName:      get("DB_NAME", "storefront"),

		JWTSecret:     get("JWT_SECRET", ""),
		TokenTTLHours: getInt("TOKEN_TTL_HOURS", 7*24),

		BcryptCost: getInt("BCRYPT_COST", bcrypt.DefaultCost+2),

		AllowedOrigins: []string{get("ALLOWED_ORIGINS", "*")},
		AdminAPIKey:    get("ADMIN_API_KEY", ""),

		RateLimitEnabled: getBool("RATE_LIMIT_ENABLED", env == "production"),
		RedisAddr:        get("REDIS_ADDR", ""),
	}
}

func (c Config) IsProduction() bool { return c.AppEnv == "production" }

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

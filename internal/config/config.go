package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr         string
	BaseURL          string
	JWTSecret        string
	JWTIssuer        string
	SessionTTL       time.Duration
	VerifierMode     string
	AdminEmail       string
	AdminPassword    string
	RedisAddr        string
	RedisPassword    string
	StrictAdminExit  bool
	UploadDir        string
	MaxUploadBytes   int64
	DefaultLanguage  string
	LoginMaxFailures int
	LoginWindow      time.Duration
	ShutdownTimeout  time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:         getenv("HTTP_ADDR", ":8084"),
		BaseURL:          getenv("BASE_URL", "http://localhost:8084"),
		JWTSecret:        getenv("JWT_SECRET", "dev-secret"),
		JWTIssuer:        getenv("JWT_ISSUER", "sagarmatha-admin"),
		SessionTTL:       getenvDuration("SESSION_TTL", 12*time.Hour),
		VerifierMode:     getenv("VERIFIER_MODE", "format"),
		AdminEmail:       getenv("ADMIN_EMAIL", "admin@sagarmatha.edu.np"),
		AdminPassword:    getenv("ADMIN_PASSWORD", ""),
		RedisAddr:        getenv("REDIS_ADDR", ""),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		StrictAdminExit:  getenvBool("STRICT_ADMIN_EXIT", false),
		UploadDir:        getenv("UPLOAD_DIR", ""),
		MaxUploadBytes:   getenvInt64("MAX_UPLOAD_BYTES", 10<<20),
		DefaultLanguage:  getenv("DEFAULT_LANGUAGE", "en"),
		LoginMaxFailures: getenvInt("LOGIN_MAX_FAILURES", 5),
		LoginWindow:      getenvDuration("LOGIN_WINDOW", 15*time.Minute),
		ShutdownTimeout:  getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

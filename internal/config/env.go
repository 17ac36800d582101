package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr       string
	GinMode       string
	WebRoot       string
	LogDir        string
	LogLevel      string
	JWTSecret     string
	AdminUsername string
	AdminPassword string
}

// LoadEnv reads .env (when present) and then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	return Env{
		AppAddr:       appAddr,
		GinMode:       strings.TrimSpace(os.Getenv("GIN_MODE")),
		WebRoot:       getenv("WEB_ROOT", "wwwroot"),
		LogDir:        getenv("LOG_DIR", "Logs"),
		LogLevel:      getenv("LOG_LEVEL", "INFO"),
		JWTSecret:     getenv("JWT_SECRET", "change-me-imperial-vip"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return i
}

func parseBool(s string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return b
}

func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return d
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	BaseURL     string
	UploadDir   string
	MaxUploadMB int
	RandomSeed  int64
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		appConfig = &AppConfig{
			Name:        getEnv("APP_NAME", "Resume Analyzer"),
			Env:         env,
			Port:        getEnv("APP_PORT", ":8080"),
			BaseURL:     os.Getenv("APP_URL"),
			UploadDir:   getEnv("UPLOAD_DIR", "./uploads/resume/"),
			MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 5),
			RandomSeed:  int64(getEnvInt("RANDOM_SEED", 0)),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not a duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}

package config

import (
	"os"
	"sync"
	"time"
)

type AdminConfig struct {
	Username   string
	Password   string
	SessionTTL time.Duration
}

var (
	adminConfig *AdminConfig
	adminOnce   sync.Once
)

// LoadAdminConfig falls back to admin/admin123 outside production only.
func LoadAdminConfig() *AdminConfig {
	adminOnce.Do(func() {
		username := os.Getenv("ADMIN_USERNAME")
		password := os.Getenv("ADMIN_PASSWORD")
		if !LoadAppConfig().IsProduction() {
			if username == "" {
				username = "admin"
			}
			if password == "" {
				password = "admin123"
			}
		}
		adminConfig = &AdminConfig{
			Username:   username,
			Password:   password,
			SessionTTL: getEnvDuration("ADMIN_SESSION_TTL", 2*time.Hour),
		}
	})
	return adminConfig
}

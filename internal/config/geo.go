package config

import (
	"sync"
	"time"
)

type GeoConfig struct {
	Enabled    bool
	IPURL      string
	ReverseURL string
	UserAgent  string
	Timeout    time.Duration
}

var (
	geoConfig *GeoConfig
	geoOnce   sync.Once
)

func LoadGeoConfig() *GeoConfig {
	geoOnce.Do(func() {
		geoConfig = &GeoConfig{
			Enabled:    getEnvBool("GEO_ENABLED", true),
			IPURL:      getEnv("GEO_IP_URL", "http://ip-api.com/json"),
			ReverseURL: getEnv("GEO_REVERSE_URL", "https://nominatim.openstreetmap.org/reverse"),
			UserAgent:  getEnv("GEO_USER_AGENT", "resume-analyzer"),
			Timeout:    getEnvDuration("GEO_TIMEOUT", 5*time.Second),
		}
	})
	return geoConfig
}

package config

import (
	"os"
	"time"
)

// CacheConfig drives the Redis output cache in front of public GET routes.
type CacheConfig struct {
	Enabled      bool
	Prefix       string
	MaxBodyBytes int
	Policies     map[string]time.Duration
}

// Output cache policy names double as their eviction tags.
const (
	PolicyHomePage = "homepage"
	PolicyVehicles = "vehicles"
	PolicyRegions  = "regions"
	PolicyGallery  = "gallery"
	PolicyStatic   = "static"
)

func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      parseBool(os.Getenv("CACHE_ENABLED"), true),
		Prefix:       getenv("CACHE_PREFIX", "outcache"),
		MaxBodyBytes: atoi(os.Getenv("CACHE_MAX_BODY_BYTES"), 1<<20),
		Policies: map[string]time.Duration{
			PolicyHomePage: parseDur(os.Getenv("CACHE_TTL_HOMEPAGE"), 5*time.Minute),
			PolicyVehicles: parseDur(os.Getenv("CACHE_TTL_VEHICLES"), 15*time.Minute),
			PolicyRegions:  parseDur(os.Getenv("CACHE_TTL_REGIONS"), 30*time.Minute),
			PolicyGallery:  parseDur(os.Getenv("CACHE_TTL_GALLERY"), time.Hour),
			PolicyStatic:   parseDur(os.Getenv("CACHE_TTL_STATIC"), 24*time.Hour),
		},
	}
}

// TTL returns the policy duration, or five minutes for unknown policies.
func (c CacheConfig) TTL(policy string) time.Duration {
	if d, ok := c.Policies[policy]; ok && d > 0 {
		return d
	}
	return 5 * time.Minute
}

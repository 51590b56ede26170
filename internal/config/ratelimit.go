package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

type RateLimitConfig struct {
	Enabled bool
	MaxHits int
	Window  time.Duration
}

func GetRateLimitConfig(key string) RateLimitConfig {
	enabled := ParseEnvBool("RATELIMIT_ENABLED", false)

	configs := map[string]RateLimitConfig{
		"global": {
			Enabled: enabled,
			MaxHits: ParseEnvInt("RATELIMIT_GLOBAL", 1000), // 1000 requests per minute globally
			Window:  time.Minute,
		},
		"voice_stream": {
			Enabled: enabled,
			MaxHits: ParseEnvInt("RATELIMIT_VOICE_STREAM", 20), // streaming requests are expensive
			Window:  time.Minute,
		},
		"chat": {
			Enabled: enabled,
			MaxHits: ParseEnvInt("RATELIMIT_CHAT", 120),
			Window:  time.Minute,
		},
		"crud": {
			Enabled: enabled,
			MaxHits: ParseEnvInt("RATELIMIT_CRUD", 300),
			Window:  time.Minute,
		},
	}

	if config, exists := configs[key]; exists {
		return config
	}

	log.Warn().Str("key", key).Msg("No rate limit config found for key")
	return RateLimitConfig{Enabled: false}
}

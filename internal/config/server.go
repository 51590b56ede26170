package config

import "strings"

func GetPort() string {
	return GetEnvOrDefault("PORT", "8080")
}

func GetEnvironment() string {
	return GetEnvOrDefault("ENV", "development")
}

func GetLogLevel() string {
	return GetEnvOrDefault("LOG_LEVEL", "info")
}

// GetAllowedOrigins returns the CORS allow-list. "*" allows any origin.
func GetAllowedOrigins() []string {
	raw := GetEnvOrDefault("ALLOWED_ORIGINS", "*")
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

package config

// GetOpenAIKey returns the OpenAI API key, empty when not configured
func GetOpenAIKey() string {
	return GetEnvOrDefault("OPENAI_KEY", "")
}

// GetChatModel returns the chat completion model identifier
func GetChatModel() string {
	return GetEnvOrDefault("OPENAI_CHAT_MODEL", "gpt-4o-mini")
}

// GetBaseTemperature returns the base sampling temperature. The completion
// service jitters the effective temperature around this value on every call.
func GetBaseTemperature() float64 {
	return ParseEnvFloat("OPENAI_TEMPERATURE", 0.8)
}

// GetTemperatureJitter returns the half-width of the temperature band.
func GetTemperatureJitter() float64 {
	return ParseEnvFloat("OPENAI_TEMPERATURE_JITTER", 0.15)
}

// GetCompletionMaxRetries returns how many times the initial streaming request
// is attempted before giving up. Mid-stream failures are never retried.
func GetCompletionMaxRetries() int {
	return ParseEnvInt("OPENAI_MAX_RETRIES", 3)
}

package config

func GetDeepgramAPIKey() string {
	return GetEnvOrDefault("DEEPGRAM_API_KEY", "")
}

func GetDeepgramBaseURL() string {
	return GetEnvOrDefault("DEEPGRAM_BASE_URL", "https://api.deepgram.com")
}

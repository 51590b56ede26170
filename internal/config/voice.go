package config

// Voice chunking defaults. These are product tuning values, overridable per
// request via voiceSettings and per deployment via environment.

func GetDefaultVoiceModel() string {
	return GetEnvOrDefault("VOICE_MODEL", "aura-asteria-en")
}

// GetDefaultChunkSize returns the target words per speech chunk.
func GetDefaultChunkSize() int {
	return ParseEnvInt("VOICE_CHUNK_SIZE", 30)
}

// GetDefaultMinChunkSize returns the minimum words buffered before a natural
// break is honoured.
func GetDefaultMinChunkSize() int {
	return ParseEnvInt("VOICE_MIN_CHUNK_SIZE", 15)
}

// GetDefaultMaxChunkSize returns the hard cap forcing a chunk cut.
func GetDefaultMaxChunkSize() int {
	return ParseEnvInt("VOICE_MAX_CHUNK_SIZE", 60)
}

// GetStreamTimeout returns the whole-request timeout in seconds for the voice
// stream. Zero disables the timeout.
func GetStreamTimeout() int {
	return ParseEnvInt("VOICE_STREAM_TIMEOUT_SECONDS", 0)
}

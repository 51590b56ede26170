package handlers

import (
	"net/http"

	"github.com/graceway/shepherd/internal/config"
	"github.com/graceway/shepherd/internal/services"
)

// HandleHealthz reports process liveness and which optional dependencies
// are wired. It always answers 200; absent dependencies degrade features
// rather than fail the service.
func HandleHealthz(svcs *services.Services, w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"dependencies": map[string]bool{
			"completion": true,
			"speech":     svcs.SpeechConfigured(),
			"mongo":      svcs.GetMongoService() != nil,
			"redis":      svcs.GetRedisService() != nil,
		},
	})
}

// HandleSystemInfo exposes a fixed allow-list of runtime settings. Never
// extend this to dump environment variables.
func HandleSystemInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"environment": config.GetEnvironment(),
		"chatModel":   config.GetChatModel(),
		"voiceModel":  config.GetDefaultVoiceModel(),
	})
}

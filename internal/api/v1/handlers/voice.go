package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/graceway/shepherd/internal/config"
	"github.com/graceway/shepherd/internal/services/completion"
	"github.com/graceway/shepherd/internal/services/conversation"
	"github.com/graceway/shepherd/internal/services/session"
	"github.com/graceway/shepherd/internal/services/voice"
	"github.com/graceway/shepherd/pkg/httpext"
	"github.com/graceway/shepherd/pkg/sse"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// VoiceStreamRequest is the body of POST /api/v1/voice/stream.
type VoiceStreamRequest struct {
	Prompt        string         `json:"prompt" validate:"required"`
	Context       string         `json:"context,omitempty"`
	Category      string         `json:"category,omitempty"`
	SessionID     string         `json:"sessionId,omitempty"`
	VoiceSettings voice.Settings `json:"voiceSettings,omitempty"`
}

// HandleVoiceStream runs the full voice pipeline and streams the result as
// server-sent events. All request validation happens before the stream is
// opened so failures can still use plain JSON status responses.
func HandleVoiceStream(orchestrator *voice.Orchestrator, sessions *session.Service, conversations *conversation.Service, w http.ResponseWriter, r *http.Request) {
	var req VoiceStreamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		httpext.JsonErrorWithDetails(w, http.StatusBadRequest, httpext.ErrorResponse{
			Error:            "Validation failed",
			ErrorDescription: err.Error(),
		})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		httpext.JsonError(w, "Prompt must not be blank", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if timeout := config.GetStreamTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	var history []completion.ChatMessage
	if sessions != nil && req.SessionID != "" {
		history = sessions.History(ctx, req.SessionID)
	}

	writer, err := sse.NewWriter(w)
	if err != nil {
		log.Error().Err(err).Msg("Response writer does not support streaming")
		httpext.JsonError(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	result, err := orchestrator.Run(ctx, voice.Request{
		Prompt:   req.Prompt,
		Context:  req.Context,
		Category: req.Category,
		History:  history,
		Settings: req.VoiceSettings,
	}, writer)
	if err != nil {
		if errors.Is(err, voice.ErrChannelClosed) {
			log.Debug().Str("session_id", req.SessionID).Msg("Client disconnected mid-stream")
			return
		}
		// The stream already carried an error event; nothing more to write.
		log.Error().Err(err).Str("session_id", req.SessionID).Msg("Voice stream failed")
		return
	}

	if sessions != nil && req.SessionID != "" {
		sessions.Append(ctx, req.SessionID, req.Prompt, result.Reply)
	}
	if conversations != nil {
		conversations.Save(ctx, conversation.Record{
			SessionID:   req.SessionID,
			Category:    result.Category,
			Prompt:      req.Prompt,
			Reply:       result.Reply,
			Voice:       true,
			TotalTokens: result.TotalTokens,
			TotalChunks: result.TotalChunks,
		})
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/graceway/shepherd/internal/services/completion"
	"github.com/graceway/shepherd/internal/services/conversation"
	"github.com/graceway/shepherd/internal/services/session"
	"github.com/graceway/shepherd/pkg/httpext"
	"github.com/rs/zerolog/log"
)

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Prompt    string `json:"prompt" validate:"required"`
	Context   string `json:"context,omitempty"`
	Category  string `json:"category,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// HandleChat serves the text-only completion path. Same prompt assembly as
// the voice stream, single JSON response instead of events.
func HandleChat(completions *completion.Service, sessions *session.Service, conversations *conversation.Service, w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
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

	var history []completion.ChatMessage
	if sessions != nil && req.SessionID != "" {
		history = sessions.History(ctx, req.SessionID)
	}

	messages := []completion.ChatMessage{completion.GuidancePrompt(req.Category, req.Context)}
	messages = append(messages, history...)
	messages = append(messages, completion.ChatMessage{Role: completion.RoleUser, Content: req.Prompt})

	resp, err := completions.Complete(ctx, messages)
	if err != nil {
		var upstream *completion.UpstreamError
		if errors.As(err, &upstream) {
			log.Error().Err(err).Int("upstream_status", upstream.StatusCode).Msg("Completion failed")
			httpext.JsonError(w, "Upstream completion failed", http.StatusBadGateway)
			return
		}
		log.Error().Err(err).Msg("Completion failed")
		httpext.JsonError(w, "Failed to generate response", http.StatusInternalServerError)
		return
	}

	if sessions != nil && req.SessionID != "" {
		sessions.Append(ctx, req.SessionID, req.Prompt, resp.Reply)
	}
	if conversations != nil {
		conversations.Save(ctx, conversation.Record{
			SessionID: req.SessionID,
			Category:  completion.NormalizeCategory(req.Category),
			Prompt:    req.Prompt,
			Reply:     resp.Reply,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("Failed to encode chat response")
	}
}

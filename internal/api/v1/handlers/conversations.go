package handlers

import (
	"net/http"
	"strconv"

	"github.com/graceway/shepherd/internal/services/conversation"
	"github.com/graceway/shepherd/pkg/httpext"
	"github.com/rs/zerolog/log"
)

const (
	defaultConversationLimit = 20
	maxConversationLimit     = 100
)

// HandleRecentConversations returns the stored exchanges for a session,
// newest first.
func HandleRecentConversations(conversations *conversation.Service, w http.ResponseWriter, r *http.Request) {
	if conversations == nil {
		httpext.JsonError(w, "Conversation storage is not configured", http.StatusServiceUnavailable)
		return
	}

	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		httpext.JsonError(w, "sessionId is required", http.StatusBadRequest)
		return
	}

	limit := int64(defaultConversationLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			httpext.JsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		if parsed > maxConversationLimit {
			parsed = maxConversationLimit
		}
		limit = parsed
	}

	records, err := conversations.Recent(r.Context(), sessionID, limit)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to load conversation history")
		httpext.JsonError(w, "Failed to load conversation history", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []conversation.Record{}
	}

	writeJSON(w, http.StatusOK, records)
}

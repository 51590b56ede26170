package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/graceway/shepherd/internal/services/comments"
	"github.com/graceway/shepherd/pkg/httpext"
	"github.com/rs/zerolog/log"
)

// CommentRequest is the body for comment creation.
type CommentRequest struct {
	EventID string `json:"eventId,omitempty"`
	Author  string `json:"author" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

func HandleListComments(store comments.Store, w http.ResponseWriter, r *http.Request) {
	if store == nil {
		httpext.JsonError(w, "Comment storage is not configured", http.StatusServiceUnavailable)
		return
	}

	list, err := store.List(r.Context(), r.URL.Query().Get("eventId"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list comments")
		httpext.JsonError(w, "Failed to list comments", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []comments.Comment{}
	}

	writeJSON(w, http.StatusOK, list)
}

func HandleCreateComment(store comments.Store, w http.ResponseWriter, r *http.Request) {
	if store == nil {
		httpext.JsonError(w, "Comment storage is not configured", http.StatusServiceUnavailable)
		return
	}

	var req CommentRequest
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

	comment := &comments.Comment{
		EventID: req.EventID,
		Author:  req.Author,
		Body:    req.Body,
	}
	if err := store.Create(r.Context(), comment); err != nil {
		log.Error().Err(err).Msg("Failed to create comment")
		httpext.JsonError(w, "Failed to create comment", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

func HandleDeleteComment(store comments.Store, w http.ResponseWriter, r *http.Request) {
	if store == nil {
		httpext.JsonError(w, "Comment storage is not configured", http.StatusServiceUnavailable)
		return
	}

	id := mux.Vars(r)["id"]
	err := store.Delete(r.Context(), id)
	if errors.Is(err, comments.ErrNotFound) {
		httpext.JsonError(w, "Comment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("comment_id", id).Msg("Failed to delete comment")
		httpext.JsonError(w, "Failed to delete comment", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

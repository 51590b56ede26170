package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/graceway/shepherd/internal/services/events"
	"github.com/graceway/shepherd/pkg/httpext"
	"github.com/rs/zerolog/log"
)

// EventRequest is the body for event create and update.
type EventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
}

func HandleListEvents(store events.Store, w http.ResponseWriter, r *http.Request) {
	if store == nil {
		httpext.JsonError(w, "Event storage is not configured", http.StatusServiceUnavailable)
		return
	}

	list, err := store.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list events")
		httpext.JsonError(w, "Failed to list events", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []events.Event{}
	}

	writeJSON(w, http.StatusOK, list)
}

func HandleGetEvent(store events.Store, w http.ResponseWriter, r *http.Request) {
	if store == nil {
		httpext.JsonError(w, "Event storage is not configured", http.StatusServiceUnavailable)
		return
	}

	event, err := store.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, events.ErrNotFound) {
		httpext.JsonError(w, "Event not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to load event")
		httpext.JsonError(w, "Failed to load event", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func HandleCreateEvent(store events.Store, w http.ResponseWriter, r *http.Request) {
	if store == nil {
		httpext.JsonError(w, "Event storage is not configured", http.StatusServiceUnavailable)
		return
	}

	req, ok := decodeEventRequest(w, r)
	if !ok {
		return
	}

	event := &events.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
	}
	if err := store.Create(r.Context(), event); err != nil {
		log.Error().Err(err).Msg("Failed to create event")
		httpext.JsonError(w, "Failed to create event", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

func HandleUpdateEvent(store events.Store, w http.ResponseWriter, r *http.Request) {
	if store == nil {
		httpext.JsonError(w, "Event storage is not configured", http.StatusServiceUnavailable)
		return
	}

	req, ok := decodeEventRequest(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	event := &events.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
	}
	err := store.Update(r.Context(), id, event)
	if errors.Is(err, events.ErrNotFound) {
		httpext.JsonError(w, "Event not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("Failed to update event")
		httpext.JsonError(w, "Failed to update event", http.StatusInternalServerError)
		return
	}

	updated, err := store.Get(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("Failed to reload updated event")
		httpext.JsonError(w, "Failed to load event", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func HandleDeleteEvent(store events.Store, w http.ResponseWriter, r *http.Request) {
	if store == nil {
		httpext.JsonError(w, "Event storage is not configured", http.StatusServiceUnavailable)
		return
	}

	id := mux.Vars(r)["id"]
	err := store.Delete(r.Context(), id)
	if errors.Is(err, events.ErrNotFound) {
		httpext.JsonError(w, "Event not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("Failed to delete event")
		httpext.JsonError(w, "Failed to delete event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeEventRequest(w http.ResponseWriter, r *http.Request) (EventRequest, bool) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return req, false
	}
	if err := validate.Struct(req); err != nil {
		httpext.JsonErrorWithDetails(w, http.StatusBadRequest, httpext.ErrorResponse{
			Error:            "Validation failed",
			ErrorDescription: err.Error(),
		})
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

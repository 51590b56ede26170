package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	v1mware "github.com/graceway/shepherd/internal/api/v1/middleware"
	"github.com/graceway/shepherd/internal/services"
)

func RegisterV1Routes(router *mux.Router, svcs *services.Services) {
	v1 := router.PathPrefix("/api/v1").Subrouter()

	// Voice pipeline
	v1.Handle("/voice/stream", v1mware.RateLimit("voice_stream")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleVoiceStream(svcs.GetOrchestrator(), svcs.GetSessionService(), svcs.GetConversationService(), w, r)
	}))).Methods("POST")

	// Text-only completion
	v1.Handle("/chat", v1mware.RateLimit("chat")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleChat(svcs.GetCompletionService(), svcs.GetSessionService(), svcs.GetConversationService(), w, r)
	}))).Methods("POST")

	// Conversation history
	v1.Handle("/conversations", v1mware.RateLimit("crud")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleRecentConversations(svcs.GetConversationService(), w, r)
	}))).Methods("GET")

	// Community events
	eventsRouter := v1.PathPrefix("/events").Subrouter()
	eventsRouter.Use(v1mware.RateLimit("crud"))
	eventsRouter.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		HandleListEvents(svcs.GetEventStore(), w, r)
	}).Methods("GET")
	eventsRouter.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		HandleCreateEvent(svcs.GetEventStore(), w, r)
	}).Methods("POST")
	eventsRouter.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		HandleGetEvent(svcs.GetEventStore(), w, r)
	}).Methods("GET")
	eventsRouter.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		HandleUpdateEvent(svcs.GetEventStore(), w, r)
	}).Methods("PUT")
	eventsRouter.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		HandleDeleteEvent(svcs.GetEventStore(), w, r)
	}).Methods("DELETE")

	// Comments
	commentsRouter := v1.PathPrefix("/comments").Subrouter()
	commentsRouter.Use(v1mware.RateLimit("crud"))
	commentsRouter.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		HandleListComments(svcs.GetCommentStore(), w, r)
	}).Methods("GET")
	commentsRouter.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		HandleCreateComment(svcs.GetCommentStore(), w, r)
	}).Methods("POST")
	commentsRouter.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		HandleDeleteComment(svcs.GetCommentStore(), w, r)
	}).Methods("DELETE")

	// System
	v1.HandleFunc("/system/info", HandleSystemInfo).Methods("GET")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		HandleHealthz(svcs, w, r)
	}).Methods("GET")
}

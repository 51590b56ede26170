package services

import (
	"fmt"

	"github.com/graceway/shepherd/internal/infrastructure/deepgram"
	"github.com/graceway/shepherd/internal/infrastructure/mongo"
	"github.com/graceway/shepherd/internal/infrastructure/openai"
	"github.com/graceway/shepherd/internal/infrastructure/redis"
	"github.com/graceway/shepherd/internal/services/comments"
	"github.com/graceway/shepherd/internal/services/completion"
	"github.com/graceway/shepherd/internal/services/conversation"
	"github.com/graceway/shepherd/internal/services/events"
	"github.com/graceway/shepherd/internal/services/session"
	"github.com/graceway/shepherd/internal/services/speech"
	"github.com/graceway/shepherd/internal/services/voice"
	"github.com/rs/zerolog/log"
)

type Services struct {
	completionService   *completion.Service
	speechService       *speech.Service
	orchestrator        *voice.Orchestrator
	sessionService      *session.Service
	conversationService *conversation.Service
	eventStore          events.Store
	commentStore        comments.Store
	mongoService        *mongo.Service
	redisService        *redis.Service
	speechConfigured    bool
}

// InitializeServices wires every service from infrastructure clients.
// OpenAI is required; Deepgram, MongoDB and Redis are optional and their
// features degrade when absent.
func InitializeServices() (*Services, error) {
	log.Info().Msg("Initializing core services")

	// Optional infrastructure
	redisService := redis.NewService()
	mongoService := mongo.NewService()
	deepgramService := deepgram.NewService()

	// Required infrastructure
	openAIService := openai.NewService()
	if openAIService == nil {
		return nil, fmt.Errorf("OpenAI service is required for core functionality")
	}

	completionService, err := completion.NewService(openAIService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize completion service: %w", err)
	}

	speechService := speech.NewService(deepgramService)

	var synthesizer voice.Synthesizer
	if speechService != nil {
		synthesizer = speechService
	}
	orchestrator := voice.NewOrchestrator(completionService, synthesizer, completionService.Model())

	sessionService := session.NewService(redisService)
	conversationService := conversation.NewService(mongoService)

	// Store interfaces stay nil when MongoDB is absent; handlers answer 503.
	var eventStore events.Store
	if s := events.NewStore(mongoService); s != nil {
		eventStore = s
	}
	var commentStore comments.Store
	if s := comments.NewStore(mongoService); s != nil {
		commentStore = s
	}

	log.Info().
		Bool("speech", speechService != nil).
		Bool("mongo", mongoService != nil).
		Bool("redis", redisService != nil).
		Msg("All services initialized")

	return &Services{
		completionService:   completionService,
		speechService:       speechService,
		orchestrator:        orchestrator,
		sessionService:      sessionService,
		conversationService: conversationService,
		eventStore:          eventStore,
		commentStore:        commentStore,
		mongoService:        mongoService,
		redisService:        redisService,
		speechConfigured:    speechService != nil,
	}, nil
}

func (s *Services) GetCompletionService() *completion.Service {
	return s.completionService
}

func (s *Services) GetOrchestrator() *voice.Orchestrator {
	return s.orchestrator
}

func (s *Services) GetSessionService() *session.Service {
	return s.sessionService
}

func (s *Services) GetConversationService() *conversation.Service {
	return s.conversationService
}

func (s *Services) GetEventStore() events.Store {
	return s.eventStore
}

func (s *Services) GetCommentStore() comments.Store {
	return s.commentStore
}

func (s *Services) GetMongoService() *mongo.Service {
	return s.mongoService
}

func (s *Services) GetRedisService() *redis.Service {
	return s.redisService
}

// SpeechConfigured reports whether the voice leg is available.
func (s *Services) SpeechConfigured() bool {
	return s.speechConfigured
}

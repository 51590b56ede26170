package openai

import (
	"sync"

	"github.com/graceway/shepherd/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

type Service struct {
	mu     sync.RWMutex
	client *openai.Client
}

func NewService() *Service {
	key := config.GetOpenAIKey()

	if key == "" {
		log.Warn().Msg("OpenAI service not configured - OPENAI_KEY missing")
		return nil
	}

	log.Info().Msg("OpenAI service initialized")

	return &Service{
		mu:     sync.RWMutex{},
		client: openai.NewClient(key),
	}
}

func (s *Service) GetClient() *openai.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

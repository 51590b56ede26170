// Package session keeps short-lived conversation history per session so
// follow-up prompts carry context. Redis-backed when available, in-process
// otherwise.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/graceway/shepherd/internal/infrastructure/redis"
	"github.com/graceway/shepherd/internal/services/completion"
	"github.com/rs/zerolog/log"
)

const (
	historyLifetime    = 2 * time.Hour
	maxHistoryMessages = 20
	keyPrefix          = "shepherd:history:"
)

type HistoryStore interface {
	Get(ctx context.Context, sessionID string) ([]completion.ChatMessage, error)
	Set(ctx context.Context, sessionID string, messages []completion.ChatMessage) error
}

type Service struct {
	store HistoryStore
}

func NewService(redisService *redis.Service) *Service {
	if redisService != nil {
		if err := redisService.Ping(context.Background()); err == nil {
			return &Service{store: &RedisStore{redisService: redisService}}
		}
		log.Warn().Msg("Redis unreachable - session history falls back to memory")
	}
	return &Service{store: newMemoryStore()}
}

// History returns the stored conversation for a session, empty for unknown
// or blank session ids. Failures degrade to an empty history.
func (s *Service) History(ctx context.Context, sessionID string) []completion.ChatMessage {
	if sessionID == "" {
		return nil
	}

	messages, err := s.store.Get(ctx, sessionID)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to load session history")
		return nil
	}
	return messages
}

// Append records one user/assistant exchange, trimming to the most recent
// messages.
func (s *Service) Append(ctx context.Context, sessionID, prompt, reply string) {
	if sessionID == "" {
		return
	}

	messages := s.History(ctx, sessionID)
	messages = append(messages,
		completion.ChatMessage{Role: completion.RoleUser, Content: prompt},
		completion.ChatMessage{Role: completion.RoleAssistant, Content: reply},
	)
	if len(messages) > maxHistoryMessages {
		messages = messages[len(messages)-maxHistoryMessages:]
	}

	if err := s.store.Set(ctx, sessionID, messages); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to store session history")
	}
}

// RedisStore persists history in Redis with a TTL.
type RedisStore struct {
	redisService *redis.Service
}

func (rs *RedisStore) Get(ctx context.Context, sessionID string) ([]completion.ChatMessage, error) {
	data, err := rs.redisService.Get(ctx, keyPrefix+sessionID)
	if err != nil || data == "" {
		return nil, err
	}

	var messages []completion.ChatMessage
	if err := json.Unmarshal([]byte(data), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (rs *RedisStore) Set(ctx context.Context, sessionID string, messages []completion.ChatMessage) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	return rs.redisService.Set(ctx, keyPrefix+sessionID, string(data), historyLifetime)
}

// MemoryStore is the fallback when Redis is unavailable.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	messages []completion.ChatMessage
	expires  time.Time
}

func newMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (ms *MemoryStore) Get(_ context.Context, sessionID string) ([]completion.ChatMessage, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	entry, ok := ms.sessions[sessionID]
	if !ok || time.Now().After(entry.expires) {
		return nil, nil
	}
	return entry.messages, nil
}

func (ms *MemoryStore) Set(_ context.Context, sessionID string, messages []completion.ChatMessage) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	// Opportunistic purge of expired sessions.
	now := time.Now()
	for id, entry := range ms.sessions {
		if now.After(entry.expires) {
			delete(ms.sessions, id)
		}
	}

	ms.sessions[sessionID] = memoryEntry{
		messages: messages,
		expires:  now.Add(historyLifetime),
	}
	return nil
}

// Package conversation persists completed guidance exchanges to MongoDB.
// Persistence is best-effort: a write failure never fails the user request.
package conversation

import (
	"context"
	"time"

	infra "github.com/graceway/shepherd/internal/infrastructure/mongo"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "conversations"

// Record is one stored prompt/reply exchange.
type Record struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID   string             `bson:"session_id,omitempty" json:"sessionId,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Prompt      string             `bson:"prompt" json:"prompt"`
	Reply       string             `bson:"reply" json:"reply"`
	Voice       bool               `bson:"voice" json:"voice"`
	TotalTokens int                `bson:"total_tokens,omitempty" json:"totalTokens,omitempty"`
	TotalChunks int                `bson:"total_chunks,omitempty" json:"totalChunks,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

type Service struct {
	collection *mongo.Collection
}

func NewService(mongoService *infra.Service) *Service {
	if mongoService == nil {
		return nil
	}
	return &Service{collection: mongoService.Collection(collectionName)}
}

// Save stores one record. Best-effort: errors are logged, not returned, so
// callers never fail a served response over bookkeeping.
func (s *Service) Save(ctx context.Context, record Record) {
	record.CreatedAt = time.Now().UTC()

	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		log.Warn().Err(err).Str("session_id", record.SessionID).
			Msg("Failed to persist conversation record")
	}
}

// Recent returns the latest records for a session, newest first.
func (s *Service) Recent(ctx context.Context, sessionID string, limit int64) ([]Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.collection.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

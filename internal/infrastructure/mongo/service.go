package mongo

import (
	"context"
	"time"

	"github.com/graceway/shepherd/internal/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Service wraps the MongoDB client. Optional: callers must tolerate a nil
// service and degrade their feature rather than fail the process.
type Service struct {
	client   *mongo.Client
	database string
}

func NewService() *Service {
	uri := config.GetMongoURI()

	if uri == "" {
		log.Warn().Msg("MongoDB not configured - MONGO_URI missing, persistence unavailable")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create MongoDB client")
		return nil
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Error().Err(err).Msg("Failed to establish MongoDB connection")
		return nil
	}

	log.Info().Str("database", config.GetMongoDatabase()).Msg("MongoDB service initialized")

	return &Service{
		client:   client,
		database: config.GetMongoDatabase(),
	}
}

// Collection returns a handle to the named collection
func (s *Service) Collection(name string) *mongo.Collection {
	return s.client.Database(s.database).Collection(name)
}

// Ping checks if MongoDB is accessible
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client
func (s *Service) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

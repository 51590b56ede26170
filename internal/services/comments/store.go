// Package comments stores user comments attached to community events.
package comments

import (
	"context"
	"errors"
	"time"

	infra "github.com/graceway/shepherd/internal/infrastructure/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "comments"

var ErrNotFound = errors.New("comment not found")

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   string             `bson:"event_id,omitempty" json:"eventId,omitempty"`
	Author    string             `bson:"author" json:"author"`
	Body      string             `bson:"body" json:"body"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

type Store interface {
	List(ctx context.Context, eventID string) ([]Comment, error)
	Create(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id string) error
}

type MongoStore struct {
	collection *mongo.Collection
}

func NewStore(mongoService *infra.Service) *MongoStore {
	if mongoService == nil {
		return nil
	}
	return &MongoStore{collection: mongoService.Collection(collectionName)}
}

// List returns comments newest first, optionally filtered by event.
func (s *MongoStore) List(ctx context.Context, eventID string) ([]Comment, error) {
	filter := bson.M{}
	if eventID != "" {
		filter["event_id"] = eventID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *MongoStore) Create(ctx context.Context, comment *Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now().UTC()

	_, err := s.collection.InsertOne(ctx, comment)
	return err
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Package events stores community event documents (services, studies,
// gatherings) announced through the application.
package events

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

const collectionName = "events"

var ErrNotFound = errors.New("event not found")

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	StartsAt    time.Time          `bson:"starts_at" json:"startsAt"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Store is the persistence contract consumed by the HTTP handlers; tests
// substitute an in-memory implementation.
type Store interface {
	List(ctx context.Context) ([]Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, id string, event *Event) error
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

func (s *MongoStore) List(ctx context.Context) ([]Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var event Event
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *MongoStore) Create(ctx context.Context, event *Event) error {
	now := time.Now().UTC()
	event.ID = primitive.NewObjectID()
	event.CreatedAt = now
	event.UpdatedAt = now

	_, err := s.collection.InsertOne(ctx, event)
	return err
}

func (s *MongoStore) Update(ctx context.Context, id string, event *Event) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	event.UpdatedAt = time.Now().UTC()

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":       event.Title,
		"description": event.Description,
		"location":    event.Location,
		"starts_at":   event.StartsAt,
		"updated_at":  event.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
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

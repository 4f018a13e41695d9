package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kinetree/kinetree/pkg/model"
)

const (
	mongoDatabase   = "kinetree"
	mongoCollection = "models"
)

// MongoStore persists documents in a MongoDB collection, one document
// per model, keyed by the model name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the MongoDB instance at uri and verifies the
// connection with a ping.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(mongoDatabase).Collection(mongoCollection),
	}, nil
}

// Put upserts doc under doc.Name.
func (s *MongoStore) Put(ctx context.Context, doc *model.Document) error {
	filter := bson.M{"name": doc.Name}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, filter, doc, opts); err != nil {
		return fmt.Errorf("storing model %q: %w", doc.Name, err)
	}
	return nil
}

// Get returns the document stored under name.
func (s *MongoStore) Get(ctx context.Context, name string) (*model.Document, error) {
	var doc model.Document
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading model %q: %w", name, err)
	}
	return &doc, nil
}

// List returns the names of all stored documents, sorted.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var entry struct {
			Name string `bson:"name"`
		}
		if err := cursor.Decode(&entry); err != nil {
			return nil, fmt.Errorf("decoding model entry: %w", err)
		}
		names = append(names, entry.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the document stored under name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("deleting model %q: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return ErrModelNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)

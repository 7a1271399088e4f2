package database

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionRestaurants = "restaurants"
	CollectionGroupOrders = "groupOrders"
	CollectionHistory     = "history"
)

// ErrNoDocument is returned by Get when the id does not exist in the
// collection.
var ErrNoDocument = errors.New("document not found")

// Store is the document-store surface the controllers work against:
// id-keyed documents, whole-document overwrites on Set. There is no version
// token, so concurrent read-modify-write cycles on the same document are
// last-writer-wins.
type Store interface {
	Push(collection string) string
	Get(ctx context.Context, collection string, id string, out interface{}) error
	Set(ctx context.Context, collection string, id string, doc interface{}) error
	Remove(ctx context.Context, collection string, id string) error
	List(ctx context.Context, collection string, out interface{}) error
}

func Connect(ctx context.Context) (*mongo.Client, error) {
	mongoURL := os.Getenv("MONGODB_URL")
	if mongoURL == "" {
		mongoURL = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, err
	}

	log.Println("connected to mongodb")
	return client, nil
}

type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{db: client.Database(dbName)}
}

// Push generates a fresh opaque document key. Key generation is independent
// of the target collection; the argument is kept for contract symmetry with
// the other operations.
func (s *MongoStore) Push(collection string) string {
	return primitive.NewObjectID().Hex()
}

func (s *MongoStore) Get(ctx context.Context, collection string, id string, out interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoDocument
	}
	return err
}

func (s *MongoStore) Set(ctx context.Context, collection string, id string, doc interface{}) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, doc, opts)
	return err
}

func (s *MongoStore) Remove(ctx context.Context, collection string, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoStore) List(ctx context.Context, collection string, out interface{}) error {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

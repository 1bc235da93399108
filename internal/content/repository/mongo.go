package repository

import (
	"context"
	"errors"
	"time"

	"github.com/globalsolutions/website/backend/internal/content"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDoc is the stored shape. Payload is the JSON text, stored verbatim.
type mongoDoc struct {
	Key       string    `bson:"key"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoRepo implements Repository on a MongoDB collection, one document per section key.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection) (*MongoRepo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	idx := mongo.IndexModel{Keys: bson.D{{Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, err
	}
	return &MongoRepo{col: col}, nil
}

func (m *MongoRepo) Get(ctx context.Context, key string) (*content.Document, error) {
	var d mongoDoc
	if err := m.col.FindOne(ctx, bson.M{"key": key}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &content.Document{Key: d.Key, Payload: []byte(d.Payload), UpdatedAt: d.UpdatedAt}, nil
}

func (m *MongoRepo) Put(ctx context.Context, doc *content.Document) error {
	set := bson.M{"payload": string(doc.Payload), "updatedAt": doc.UpdatedAt}
	_, err := m.col.UpdateOne(ctx, bson.M{"key": doc.Key}, bson.M{"$set": set}, options.Update().SetUpsert(true))
	return err
}

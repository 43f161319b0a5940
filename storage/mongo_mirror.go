package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMirror is the online side of the write-through cache. Each
// collection is stored as a single document keyed by the collection
// name, so a replay replaces the remote copy wholesale and never needs
// record-level reconciliation.
type MongoMirror struct {
	collection *mongo.Collection
}

func NewMongoMirror(db *mongo.Database) *MongoMirror {
	return &MongoMirror{
		collection: db.Collection("collections"),
	}
}

func (m *MongoMirror) PushCollection(ctx context.Context, col Collection, records []byte, version uint64) error {
	var decoded interface{}
	if err := json.Unmarshal(records, &decoded); err != nil {
		return fmt.Errorf("failed to decode collection %s for mirroring: %w", col, err)
	}

	doc := bson.M{
		"_id":        string(col),
		"version":    int64(version),
		"records":    decoded,
		"updated_at": time.Now().UTC(),
	}

	_, err := m.collection.ReplaceOne(ctx,
		bson.M{"_id": string(col)},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to mirror collection %s: %w", col, err)
	}

	return nil
}

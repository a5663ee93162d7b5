package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kapurocks/directory/internal/infrastructure/store"
)

const defaultCollection = "kv"

// kvDocument is one persisted key. The value is the raw JSON document.
type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// KV keeps one MongoDB document per store key.
type KV struct {
	db   *mongo.Database
	coll *mongo.Collection
}

// NewKV stores documents in collection. An empty name falls back to "kv".
func NewKV(db *mongo.Database, collection string) *KV {
	if collection == "" {
		collection = defaultCollection
	}
	return &KV{db: db, coll: db.Collection(collection)}
}

func (k *KV) Load(ctx context.Context, key string) ([]byte, error) {
	var doc kvDocument
	err := k.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (k *KV) Save(ctx context.Context, key string, data []byte) error {
	doc := kvDocument{Key: key, Value: string(data), UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := k.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// Ping checks both the client connection and the selected database.
func (k *KV) Ping(ctx context.Context) error {
	if err := k.db.Client().Ping(ctx, nil); err != nil {
		return err
	}
	return k.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Close disconnects the underlying client.
func (k *KV) Close(ctx context.Context) error {
	return k.db.Client().Disconnect(ctx)
}

package views

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counter records that a menu item was viewed. Implementations are
// best-effort: a call never blocks the caller and failures are logged, not
// surfaced. View counts are an approximate popularity signal, so at-most-once
// is acceptable and nothing is retried.
type Counter interface {
	Add(itemID string)
}

const viewKeyPrefix = "views:"

/* =========================
   MONGO COUNTER
========================= */

// MongoCounter increments views directly on the menu_items document.
type MongoCounter struct {
	db *mongo.Database
}

func NewMongoCounter(db *mongo.Database) *MongoCounter {
	return &MongoCounter{db: db}
}

func (m *MongoCounter) Add(itemID string) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(itemID))
	if err != nil {
		log.Println("[VIEWS] dropping increment, invalid item id:", itemID)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := m.db.Collection("menu_items").UpdateOne(
			ctx,
			bson.M{"_id": objectID},
			bson.M{"$inc": bson.M{"views": 1}},
		)
		if err != nil {
			log.Println("[VIEWS] increment failed:", err)
		}
	}()
}

/* =========================
   REDIS COUNTER
========================= */

// RedisCounter buffers increments in Redis and flushes them into Mongo in
// batches, keeping the hot path off the database.
type RedisCounter struct {
	client *redis.Client
	db     *mongo.Database
}

func NewRedisCounter(client *redis.Client, db *mongo.Database) *RedisCounter {
	return &RedisCounter{client: client, db: db}
}

func (r *RedisCounter) Add(itemID string) {
	id := strings.TrimSpace(itemID)
	if id == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := r.client.Incr(ctx, viewKeyPrefix+id).Err(); err != nil {
			log.Println("[VIEWS] redis increment failed:", err)
		}
	}()
}

// Flush drains the buffered counts into menu_items. Counts that fail to
// apply are lost; views are not a billing-relevant quantity.
func (r *RedisCounter) Flush(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, viewKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		count, err := r.client.GetDel(ctx, key).Int64()
		if err != nil {
			if err != redis.Nil {
				log.Println("[VIEWS] flush read failed:", err)
			}
			continue
		}
		if count <= 0 {
			continue
		}

		objectID, err := primitive.ObjectIDFromHex(strings.TrimPrefix(key, viewKeyPrefix))
		if err != nil {
			log.Println("[VIEWS] flush skipping bad key:", key)
			continue
		}

		_, err = r.db.Collection("menu_items").UpdateOne(
			ctx,
			bson.M{"_id": objectID},
			bson.M{"$inc": bson.M{"views": count}},
		)
		if err != nil {
			log.Println("[VIEWS] flush write failed:", err)
		}
	}
	return iter.Err()
}

// Run flushes on a ticker until the context is cancelled.
func (r *RedisCounter) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			flushCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := r.Flush(flushCtx); err != nil {
				log.Println("[VIEWS] flush failed:", err)
			}
			cancel()
		}
	}
}

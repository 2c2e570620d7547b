package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// OpenMongo connects to the MongoDB deployment at uri and pings the primary.
func OpenMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// MongoUsage records command usage in a MongoDB collection.
type MongoUsage struct {
	coll *mongo.Collection
}

// NewMongoUsage stores usage documents in the command_usage collection of db.
func NewMongoUsage(db *mongo.Database) *MongoUsage {
	return &MongoUsage{coll: db.Collection("command_usage")}
}

// Record stores one invocation.
func (m *MongoUsage) Record(ctx context.Context, u Usage) error {
	if u.UsedAt.IsZero() {
		u.UsedAt = time.Now()
	}
	_, err := m.coll.InsertOne(ctx, bson.M{
		"user_id":  u.UserID,
		"guild_id": u.GuildID,
		"command":  u.Command,
		"used_at":  u.UsedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("record usage of %s: %w", u.Command, err)
	}
	return nil
}

package mongostore

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config holds the MongoDB connection settings.
type Config struct {
	URI      string
	Database string
}

// LoadConfig reads MONGO_URI and MONGO_DB.
func LoadConfig() Config {
	cfg := Config{URI: os.Getenv("MONGO_URI"), Database: os.Getenv("MONGO_DB")}
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "storefront"
	}
	return cfg
}

// Connect dials MongoDB, pings the primary, and returns the client with a Store
// on cfg.Database. The caller disconnects the client.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, New(client.Database(cfg.Database)), nil
}

// Package database owns the MongoDB connection lifecycle.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/aamirkhan2478/elite-market-backend/config"
)

// Connect dials MongoDB, verifies the connection with a ping, and returns
// the client together with the application database handle. The handle is
// passed down to repositories; nothing else in the app holds a global
// connection.
func Connect(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetServerSelectionTimeout(10 * time.Second).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("database: ping: %w", err)
	}

	return client, client.Database(config.MongoDatabase()), nil
}

// Disconnect closes the client, waiting up to five seconds for in-flight
// operations.
func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// Ping reports store liveness; used by health endpoints.
func Ping(client *mongo.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}

package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/eduspark-api/pkg/config"
)

// NewMongo connects to MongoDB using the Stable API v1 and verifies the deployment with a ping.
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(cfg.MongoURI()).
		SetServerAPIOptions(serverAPI)
	if cfg.Timeout > 0 {
		opts.SetConnectTimeout(cfg.Timeout).SetServerSelectionTimeout(cfg.Timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeoutOrDefault(cfg))
	defer cancel()

	if err := client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

func timeoutOrDefault(cfg config.MongoConfig) time.Duration {
	if cfg.Timeout > 0 {
		return cfg.Timeout
	}
	return 10 * time.Second
}

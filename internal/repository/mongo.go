package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/AdityaaTyagi56/Full-Stack-Website/internal/config"
)

// ErrNotFound is returned when a well-formed id matches no record.
var ErrNotFound = errors.New("not found")

// Connect builds the process-wide Mongo client. The initial ping is retried
// with exponential backoff up to cfg.ConnectMax; after that the driver's own
// topology monitor handles disconnects and reconnects.
func Connect(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			log.Warnw("mongo ping failed, retrying", "error", err)
			return err
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = cfg.ConnectMax
	if err := backoff.Retry(ping, backoff.WithContext(b, ctx)); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Infow("mongo connected", "database", cfg.Mongo.Database)
	return client, nil
}

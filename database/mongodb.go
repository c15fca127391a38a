package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"health-chatbot-backend/config"
)

// Database wraps the MongoDB client and the application's collections.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
	logger zerolog.Logger
}

// Connect establishes the MongoDB connection, verifies it with a ping and
// ensures indexes. Returns an error when the URI is unreachable; callers
// decide whether persistence is mandatory.
func Connect(cfg config.DatabaseConfig, logger zerolog.Logger) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(uint64(cfg.MaxConnections)).
		SetMinPoolSize(uint64(cfg.MinConnections)).
		SetMaxConnIdleTime(cfg.MaxIdleTime)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	d := &Database{
		client: client,
		db:     client.Database(cfg.Name),
		logger: logger,
	}

	if err := d.ensureIndexes(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to create indexes")
	}

	logger.Info().Str("database", cfg.Name).Msg("connected to MongoDB")
	return d, nil
}

// Disconnect closes the connection pool.
func (d *Database) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Messages returns the message-log repository.
func (d *Database) Messages() *MessageRepository {
	return &MessageRepository{coll: d.db.Collection("messages")}
}

// Users returns the user-account repository.
func (d *Database) Users() *UserRepository {
	return &UserRepository{coll: d.db.Collection("users")}
}

func (d *Database) ensureIndexes(ctx context.Context) error {
	_, err := d.db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
	if err != nil {
		return err
	}

	_, err = d.db.Collection("messages").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "phone", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	})
	return err
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/constants"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const mongoConnectTimeout = 10 * time.Second

// OpenMongo connects to MongoDB and returns the client together with the
// configured database handle.
func OpenMongo(ctx context.Context, cfg *config.DatabaseConfig, zapLogger *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.MongoConnectionURI())
	if cfg.MaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxOpenConns))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	zapLogger.Info("MongoDB connection established", zap.String("database", cfg.Name))
	return client, client.Database(cfg.Name), nil
}

// EnsureMongoIndexes creates the unique email index and the lookup indexes.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(constants.CollectionUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	if _, err := db.Collection(constants.CollectionTasks).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "projectId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create task indexes: %w", err)
	}
	return nil
}

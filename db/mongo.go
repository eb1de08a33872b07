package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"simply-blog/config"
	"simply-blog/logger"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database using config
// values. Callers only reach this when MONGODB_URI is set; a connection
// failure here is fatal to startup, not something to fall back from.
func Init(ctx context.Context) error {
	var initErr error
	clientOnce.Do(func() {
		cfg := config.GetConfig()
		uri := cfg.Mongo.URI
		dbName := cfg.Mongo.Database
		if dbName == "" {
			dbName = "simplyblog"
		}

		cl, err := mongo.NewClient(options.Client().ApplyURI(uri))
		if err != nil {
			initErr = err
			return
		}
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := cl.Connect(ctx); err != nil {
			initErr = err
			return
		}
		// Ping to verify connection
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			initErr = err
			return
		}
		client = cl
		db = client.Database(dbName)

		if err := ensureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		logger.Log.Info("MongoDB connected and indexes ensured")
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

// Ping verifies the connection is still alive, for health reporting.
func Ping(ctx context.Context) error {
	if client == nil {
		return mongo.ErrClientDisconnected
	}
	return client.Ping(ctx, readpref.Primary())
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	posts := d.Collection("posts")

	// (status, publish_date desc) serves the filtered listing path
	if _, err := posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "publish_date", Value: -1}},
		Options: options.Index().SetName("idx_status_publish_date"),
	}); err != nil {
		return err
	}
	// slug lookups; intentionally NOT unique, duplicate slugs are allowed
	if _, err := posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("idx_slug"),
	}); err != nil {
		return err
	}
	// category filter
	if _, err := posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}},
		Options: options.Index().SetName("idx_category"),
	}); err != nil {
		return err
	}
	return nil
}

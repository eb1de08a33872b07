package main

import (
	"context"
	"net/http"

	"simply-blog/api/router"
	"simply-blog/config"
	"simply-blog/db"
	"simply-blog/logger"
	"simply-blog/repositories"
	"simply-blog/services"
)

// Backend selection happens exactly once, here. A configured MONGODB_URI
// means the durable backend; failing to reach it at startup is fatal.
// Without a URI the process runs on the volatile in-memory store and
// loses all data on restart.
func newStore(ctx context.Context, cfg config.AppConfig) (repositories.PostStore, error) {
	if cfg.Mongo.URI == "" {
		logger.Log.Warn("MONGODB_URI not set, falling back to in-memory store; data will not survive a restart")
		return repositories.NewMemoryPostRepository(), nil
	}
	if err := db.Init(ctx); err != nil {
		return nil, err
	}
	return repositories.NewMongoPostRepository(db.Database()), nil
}

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	store, err := newStore(ctx, cfg)
	if err != nil {
		logger.Log.Errorf("failed to initialize storage backend: %v", err)
		panic(err)
	}
	defer store.Close(ctx)

	svc := services.NewPostService(store, cfg.Blog)
	r := router.New(svc)

	logger.Log.Infof("listening on %s (backend=%s)", cfg.Server.Addr, store.Kind())
	if err := r.Run(cfg.Server.Addr); err != nil && err != http.ErrServerClosed {
		logger.Log.Errorf("server stopped: %v", err)
		panic(err)
	}
}

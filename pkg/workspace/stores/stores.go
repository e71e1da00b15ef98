// Package stores opens the workspace store backend named by the
// configuration.
package stores

import (
	"context"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/config"
	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/workspace"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/workspace/memstore"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/workspace/mongostore"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/workspace/redisstore"
)

// Open creates the store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StoreConfig) (workspace.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return memstore.NewStore(), nil
	case "redis":
		return redisstore.NewStore(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case "mongo":
		return mongostore.NewStore(ctx, mongostore.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return nil, gverrors.New(gverrors.ErrCodeInvalidInput, "unknown store backend %q", cfg.Backend)
	}
}

// Package redisstore provides a Redis-backed workspace store for
// multi-instance deployments.
package redisstore

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/redis/go-redis/v9"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/workspace"
)

const (
	keyPrefix = "workspace:"
	indexKey  = "workspaces"
)

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Store persists workspaces as JSON values with a set index for
// listing.
type Store struct {
	client *redis.Client
}

// NewStore connects to Redis and verifies the connection.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "connect redis %s", cfg.Addr)
	}
	return &Store{client: client}, nil
}

var _ workspace.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, id string) (*workspace.Workspace, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, workspace.ErrNotFound(id)
	}
	if err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "get workspace %s", id)
	}
	var ws workspace.Workspace
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "decode workspace %s", id)
	}
	return &ws, nil
}

func (s *Store) Put(ctx context.Context, ws *workspace.Workspace) error {
	raw, err := json.Marshal(ws)
	if err != nil {
		return gverrors.Wrap(gverrors.ErrCodeInternal, err, "encode workspace %s", ws.ID)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, keyPrefix+ws.ID, raw, 0)
	pipe.SAdd(ctx, indexKey, ws.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return gverrors.Wrap(gverrors.ErrCodeInternal, err, "store workspace %s", ws.ID)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return gverrors.Wrap(gverrors.ErrCodeInternal, err, "delete workspace %s", id)
	}
	if removed == 0 {
		return workspace.ErrNotFound(id)
	}
	if err := s.client.SRem(ctx, indexKey, id).Err(); err != nil {
		return gverrors.Wrap(gverrors.ErrCodeInternal, err, "unindex workspace %s", id)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]*workspace.Workspace, error) {
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "list workspaces")
	}
	out := make([]*workspace.Workspace, 0, len(ids))
	for _, id := range ids {
		ws, err := s.Get(ctx, id)
		if gverrors.Is(err, gverrors.ErrCodeWorkspaceNotFound) {
			// Index entry outlived its value; drop it.
			_ = s.client.SRem(ctx, indexKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, ws)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) Close() error { return s.client.Close() }

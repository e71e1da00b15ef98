// Package mongostore provides a MongoDB-backed workspace store.
package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/workspace"
)

// Config holds MongoDB connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// Store persists workspaces in a single collection keyed by id.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "connect mongodb %s", cfg.URI)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "ping mongodb %s", cfg.URI)
	}
	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

var _ workspace.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, id string) (*workspace.Workspace, error) {
	var ws workspace.Workspace
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ws)
	if err == mongo.ErrNoDocuments {
		return nil, workspace.ErrNotFound(id)
	}
	if err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "get workspace %s", id)
	}
	return &ws, nil
}

func (s *Store) Put(ctx context.Context, ws *workspace.Workspace) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": ws.ID}, ws, opts); err != nil {
		return gverrors.Wrap(gverrors.ErrCodeInternal, err, "store workspace %s", ws.ID)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return gverrors.Wrap(gverrors.ErrCodeInternal, err, "delete workspace %s", id)
	}
	if res.DeletedCount == 0 {
		return workspace.ErrNotFound(id)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]*workspace.Workspace, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "list workspaces")
	}
	defer cur.Close(ctx)

	var out []*workspace.Workspace
	if err := cur.All(ctx, &out); err != nil {
		return nil, gverrors.Wrap(gverrors.ErrCodeInternal, err, "decode workspaces")
	}
	return out, nil
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

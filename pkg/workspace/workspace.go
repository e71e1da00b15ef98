// Package workspace persists named source documents between sessions.
//
// A workspace pairs a document with the datasource format it was
// loaded with, so the server can re-parse and re-render it on demand.
// The Store interface has three backends:
//   - memstore: in-memory, for development and tests
//   - redisstore: Redis, for multi-instance deployments
//   - mongostore: MongoDB, when workspaces should survive restarts
package workspace

import (
	"context"
	"time"

	"github.com/google/uuid"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
)

// Workspace is one saved document.
type Workspace struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Format    string    `json:"format" bson:"format"`
	Document  []byte    `json:"document" bson:"document"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// New creates a workspace with a fresh id and timestamps.
func New(name, format string, document []byte) *Workspace {
	now := time.Now().UTC()
	return &Workspace{
		ID:        uuid.NewString(),
		Name:      name,
		Format:    format,
		Document:  document,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the update timestamp.
func (w *Workspace) Touch() {
	w.UpdatedAt = time.Now().UTC()
}

// Store is the interface for workspace persistence backends.
type Store interface {
	// Get retrieves a workspace by id. An unknown id fails with a
	// WORKSPACE_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Workspace, error)

	// Put stores or replaces a workspace.
	Put(ctx context.Context, ws *Workspace) error

	// Delete removes a workspace. An unknown id fails with a
	// WORKSPACE_NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// List returns all workspaces ordered by creation time.
	List(ctx context.Context) ([]*Workspace, error)

	// Close releases backend resources.
	Close() error
}

// ErrNotFound builds the canonical error for an unknown workspace id.
func ErrNotFound(id string) error {
	return gverrors.New(gverrors.ErrCodeWorkspaceNotFound, "workspace %s not found", id)
}

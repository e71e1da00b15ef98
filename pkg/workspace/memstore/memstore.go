// Package memstore provides an in-memory workspace store for
// development and tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/NikolaOgnjenovic/Graph-visualizer/pkg/workspace"
)

// Store keeps workspaces in a map guarded by a mutex.
type Store struct {
	mu         sync.RWMutex
	workspaces map[string]*workspace.Workspace
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{workspaces: make(map[string]*workspace.Workspace)}
}

var _ workspace.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, id string) (*workspace.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[id]
	if !ok {
		return nil, workspace.ErrNotFound(id)
	}
	cp := *ws
	return &cp, nil
}

func (s *Store) Put(ctx context.Context, ws *workspace.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ws
	s.workspaces[ws.ID] = &cp
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workspaces[id]; !ok {
		return workspace.ErrNotFound(id)
	}
	delete(s.workspaces, id)
	return nil
}

func (s *Store) List(ctx context.Context) ([]*workspace.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*workspace.Workspace, 0, len(s.workspaces))
	for _, ws := range s.workspaces {
		cp := *ws
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) Close() error { return nil }

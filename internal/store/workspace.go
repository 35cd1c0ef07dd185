package store

import (
	"context"

	"github.com/kouprlabs/voltaview/internal/api"
)

type workspaceSource struct {
	client *api.Client
}

func (s workspaceSource) FetchPage(ctx context.Context, query string, page, size int) (Page[api.Workspace], error) {
	list, err := s.client.ListWorkspaces(ctx, query, api.ListOptions{
		Page:      page,
		Size:      size,
		SortBy:    api.SortByDateCreated,
		SortOrder: api.SortOrderDesc,
	})
	if err != nil {
		return Page[api.Workspace]{}, err
	}
	return pageOf(list), nil
}

func (s workspaceSource) FetchProbe(ctx context.Context, query string, size int) (Probe, error) {
	probe, err := s.client.ProbeWorkspaces(ctx, query, size)
	if err != nil {
		return Probe{}, err
	}
	return probeOf(probe), nil
}

// WorkspaceStore lists the user's workspaces and carries workspace
// mutations.
type WorkspaceStore struct {
	*List[api.Workspace, string]
	client *api.Client
}

// NewWorkspaceStore builds the workspace list store.
func NewWorkspaceStore(client *api.Client, opts Options) *WorkspaceStore {
	return &WorkspaceStore{
		List:   NewList[api.Workspace, string](workspaceSource{client: client}, opts),
		client: client,
	}
}

// Create creates a workspace; the next sync places it in the listing.
func (s *WorkspaceStore) Create(ctx context.Context, opts api.CreateWorkspaceOptions) (api.Workspace, error) {
	workspace, err := s.client.CreateWorkspace(ctx, opts)
	if err != nil {
		return api.Workspace{}, err
	}
	s.Sync(ctx)
	return workspace, nil
}

// Rename renames a workspace and substitutes it locally.
func (s *WorkspaceStore) Rename(ctx context.Context, id, name string) error {
	workspace, err := s.client.PatchWorkspaceName(ctx, id, name)
	if err != nil {
		return err
	}
	s.ApplyUpdated(workspace)
	return nil
}

// Delete deletes a workspace and removes it locally.
func (s *WorkspaceStore) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteWorkspace(ctx, id); err != nil {
		return err
	}
	s.ApplyDeleted(id)
	return nil
}

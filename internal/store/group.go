package store

import (
	"context"

	"github.com/kouprlabs/voltaview/internal/api"
)

type groupSource struct {
	client         *api.Client
	organizationID string
}

func (s groupSource) FetchPage(ctx context.Context, query string, page, size int) (Page[api.Group], error) {
	list, err := s.client.ListGroups(ctx, s.organizationID, query, api.ListOptions{
		Page:      page,
		Size:      size,
		SortBy:    api.SortByDateCreated,
		SortOrder: api.SortOrderDesc,
	})
	if err != nil {
		return Page[api.Group]{}, err
	}
	return pageOf(list), nil
}

func (s groupSource) FetchProbe(ctx context.Context, query string, size int) (Probe, error) {
	probe, err := s.client.ProbeGroups(ctx, s.organizationID, query, size)
	if err != nil {
		return Probe{}, err
	}
	return probeOf(probe), nil
}

// GroupStore lists groups, optionally scoped to one organization, and
// carries group mutations.
type GroupStore struct {
	*List[api.Group, string]
	client *api.Client
}

// NewGroupStore builds a group list store. An empty organizationID lists
// groups across all of the user's organizations.
func NewGroupStore(client *api.Client, organizationID string, opts Options) *GroupStore {
	src := groupSource{client: client, organizationID: organizationID}
	return &GroupStore{
		List:   NewList[api.Group, string](src, opts),
		client: client,
	}
}

// Create creates a group; the next sync places it in the listing.
func (s *GroupStore) Create(ctx context.Context, opts api.CreateGroupOptions) (api.Group, error) {
	group, err := s.client.CreateGroup(ctx, opts)
	if err != nil {
		return api.Group{}, err
	}
	s.Sync(ctx)
	return group, nil
}

// Rename renames a group and substitutes it locally.
func (s *GroupStore) Rename(ctx context.Context, id, name string) error {
	group, err := s.client.PatchGroupName(ctx, id, name)
	if err != nil {
		return err
	}
	s.ApplyUpdated(group)
	return nil
}

// Delete deletes a group and removes it locally.
func (s *GroupStore) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteGroup(ctx, id); err != nil {
		return err
	}
	s.ApplyDeleted(id)
	return nil
}

// AddMember adds a user to a group.
func (s *GroupStore) AddMember(ctx context.Context, id, userID string) error {
	return s.client.AddGroupMember(ctx, id, userID)
}

// RemoveMember removes a user from a group.
func (s *GroupStore) RemoveMember(ctx context.Context, id, userID string) error {
	return s.client.RemoveGroupMember(ctx, id, userID)
}

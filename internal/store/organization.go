package store

import (
	"context"

	"github.com/kouprlabs/voltaview/internal/api"
)

type organizationSource struct {
	client *api.Client
}

func (s organizationSource) FetchPage(ctx context.Context, query string, page, size int) (Page[api.Organization], error) {
	list, err := s.client.ListOrganizations(ctx, query, api.ListOptions{
		Page:      page,
		Size:      size,
		SortBy:    api.SortByDateCreated,
		SortOrder: api.SortOrderDesc,
	})
	if err != nil {
		return Page[api.Organization]{}, err
	}
	return pageOf(list), nil
}

func (s organizationSource) FetchProbe(ctx context.Context, query string, size int) (Probe, error) {
	probe, err := s.client.ProbeOrganizations(ctx, query, size)
	if err != nil {
		return Probe{}, err
	}
	return probeOf(probe), nil
}

// OrganizationStore lists the user's organizations and carries organization
// mutations.
type OrganizationStore struct {
	*List[api.Organization, string]
	client *api.Client
}

// NewOrganizationStore builds the organization list store.
func NewOrganizationStore(client *api.Client, opts Options) *OrganizationStore {
	return &OrganizationStore{
		List:   NewList[api.Organization, string](organizationSource{client: client}, opts),
		client: client,
	}
}

// Create creates an organization; the next sync places it in the listing.
func (s *OrganizationStore) Create(ctx context.Context, name string) (api.Organization, error) {
	organization, err := s.client.CreateOrganization(ctx, name)
	if err != nil {
		return api.Organization{}, err
	}
	s.Sync(ctx)
	return organization, nil
}

// Rename renames an organization and substitutes it locally.
func (s *OrganizationStore) Rename(ctx context.Context, id, name string) error {
	organization, err := s.client.PatchOrganizationName(ctx, id, name)
	if err != nil {
		return err
	}
	s.ApplyUpdated(organization)
	return nil
}

// Leave removes the current user from an organization; the organization
// disappears from the listing immediately.
func (s *OrganizationStore) Leave(ctx context.Context, id string) error {
	if err := s.client.LeaveOrganization(ctx, id); err != nil {
		return err
	}
	s.ApplyDeleted(id)
	return nil
}

// Delete deletes an organization and removes it locally.
func (s *OrganizationStore) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteOrganization(ctx, id); err != nil {
		return err
	}
	s.ApplyDeleted(id)
	return nil
}

// RemoveMember removes a member from an organization. Member listings are
// owned by a separate UserStore, which picks the change up on its next
// sync.
func (s *OrganizationStore) RemoveMember(ctx context.Context, id, userID string) error {
	return s.client.RemoveOrganizationMember(ctx, id, userID)
}

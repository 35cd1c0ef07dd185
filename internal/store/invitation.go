package store

import (
	"context"

	"github.com/kouprlabs/voltaview/internal/api"
)

// invitationScope selects which side of the invitation flow a store lists:
// incoming (addressed to the user) or outgoing (sent by one organization).
type invitationScope struct {
	organizationID string // empty means incoming
}

type invitationSource struct {
	client *api.Client
}

func (s invitationSource) FetchPage(ctx context.Context, scope invitationScope, page, size int) (Page[api.Invitation], error) {
	opts := api.ListOptions{
		Page:      page,
		Size:      size,
		SortBy:    api.SortByDateCreated,
		SortOrder: api.SortOrderDesc,
	}
	var (
		list api.List[api.Invitation]
		err  error
	)
	if scope.organizationID == "" {
		list, err = s.client.ListIncomingInvitations(ctx, opts)
	} else {
		list, err = s.client.ListOutgoingInvitations(ctx, scope.organizationID, opts)
	}
	if err != nil {
		return Page[api.Invitation]{}, err
	}
	return pageOf(list), nil
}

func (s invitationSource) FetchProbe(ctx context.Context, scope invitationScope, size int) (Probe, error) {
	var (
		probe api.ProbeResult
		err   error
	)
	if scope.organizationID == "" {
		probe, err = s.client.ProbeIncomingInvitations(ctx, size)
	} else {
		probe, err = s.client.ProbeOutgoingInvitations(ctx, scope.organizationID, size)
	}
	if err != nil {
		return Probe{}, err
	}
	return probeOf(probe), nil
}

// InvitationStore lists incoming or outgoing invitations and carries
// invitation actions.
type InvitationStore struct {
	*List[api.Invitation, invitationScope]
	client *api.Client
}

// NewIncomingInvitationStore lists invitations addressed to the user.
func NewIncomingInvitationStore(client *api.Client, opts Options) *InvitationStore {
	return newInvitationStore(client, invitationScope{}, opts)
}

// NewOutgoingInvitationStore lists invitations sent by an organization.
func NewOutgoingInvitationStore(client *api.Client, organizationID string, opts Options) *InvitationStore {
	return newInvitationStore(client, invitationScope{organizationID: organizationID}, opts)
}

func newInvitationStore(client *api.Client, scope invitationScope, opts Options) *InvitationStore {
	s := &InvitationStore{
		List:   NewList[api.Invitation, invitationScope](invitationSource{client: client}, opts),
		client: client,
	}
	s.List.query = scope
	return s
}

// Invite sends invitations for the given emails from the scoped
// organization.
func (s *InvitationStore) Invite(ctx context.Context, emails []string) error {
	scope := s.Query()
	if _, err := s.client.CreateInvitations(ctx, scope.organizationID, emails); err != nil {
		return err
	}
	s.Sync(ctx)
	return nil
}

// Accept accepts an incoming invitation and removes it from the listing.
func (s *InvitationStore) Accept(ctx context.Context, id string) error {
	if err := s.client.AcceptInvitation(ctx, id); err != nil {
		return err
	}
	s.ApplyDeleted(id)
	return nil
}

// Decline declines an incoming invitation and removes it from the listing.
func (s *InvitationStore) Decline(ctx context.Context, id string) error {
	if err := s.client.DeclineInvitation(ctx, id); err != nil {
		return err
	}
	s.ApplyDeleted(id)
	return nil
}

// Resend re-sends an outgoing invitation email.
func (s *InvitationStore) Resend(ctx context.Context, id string) error {
	return s.client.ResendInvitation(ctx, id)
}

// Delete deletes an outgoing invitation and removes it from the listing.
func (s *InvitationStore) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteInvitation(ctx, id); err != nil {
		return err
	}
	s.ApplyDeleted(id)
	return nil
}

package store

import (
	"context"

	"github.com/kouprlabs/voltaview/internal/api"
)

type userPermissionSource struct {
	client *api.Client
	fileID string
}

func (s userPermissionSource) FetchPage(ctx context.Context, _ struct{}, page, size int) (Page[api.UserPermission], error) {
	list, err := s.client.ListUserPermissions(ctx, s.fileID, api.ListOptions{Page: page, Size: size})
	if err != nil {
		return Page[api.UserPermission]{}, err
	}
	return pageOf(list), nil
}

func (s userPermissionSource) FetchProbe(ctx context.Context, _ struct{}, size int) (Probe, error) {
	probe, err := s.client.ProbeUserPermissions(ctx, s.fileID, size)
	if err != nil {
		return Probe{}, err
	}
	return probeOf(probe), nil
}

type groupPermissionSource struct {
	client *api.Client
	fileID string
}

func (s groupPermissionSource) FetchPage(ctx context.Context, _ struct{}, page, size int) (Page[api.GroupPermission], error) {
	list, err := s.client.ListGroupPermissions(ctx, s.fileID, api.ListOptions{Page: page, Size: size})
	if err != nil {
		return Page[api.GroupPermission]{}, err
	}
	return pageOf(list), nil
}

func (s groupPermissionSource) FetchProbe(ctx context.Context, _ struct{}, size int) (Probe, error) {
	probe, err := s.client.ProbeGroupPermissions(ctx, s.fileID, size)
	if err != nil {
		return Probe{}, err
	}
	return probeOf(probe), nil
}

// SharingStore lists one file's user and group permission grants and
// carries grant/revoke operations. Both grant lists refresh after every
// mutation so revoked rows never linger.
type SharingStore struct {
	Users  *List[api.UserPermission, struct{}]
	Groups *List[api.GroupPermission, struct{}]

	client *api.Client
	fileID string
}

// NewSharingStore builds the sharing store for one file.
func NewSharingStore(client *api.Client, fileID string, opts Options) *SharingStore {
	return &SharingStore{
		Users:  NewList[api.UserPermission, struct{}](userPermissionSource{client: client, fileID: fileID}, opts),
		Groups: NewList[api.GroupPermission, struct{}](groupPermissionSource{client: client, fileID: fileID}, opts),
		client: client,
		fileID: fileID,
	}
}

// StartSync starts background synchronization of both grant lists.
func (s *SharingStore) StartSync(ctx context.Context) {
	s.Users.StartSync(ctx)
	s.Groups.StartSync(ctx)
}

// StopSync stops background synchronization of both grant lists.
func (s *SharingStore) StopSync() {
	s.Users.StopSync()
	s.Groups.StopSync()
}

// GrantUser grants a user the given permission on the file.
func (s *SharingStore) GrantUser(ctx context.Context, userID, permission string) error {
	if err := s.client.GrantUserPermission(ctx, []string{s.fileID}, userID, permission); err != nil {
		return err
	}
	s.Users.Sync(ctx)
	return nil
}

// RevokeUser revokes a user's permission on the file.
func (s *SharingStore) RevokeUser(ctx context.Context, userID string) error {
	if err := s.client.RevokeUserPermission(ctx, []string{s.fileID}, userID); err != nil {
		return err
	}
	s.Users.Sync(ctx)
	return nil
}

// GrantGroup grants a group the given permission on the file.
func (s *SharingStore) GrantGroup(ctx context.Context, groupID, permission string) error {
	if err := s.client.GrantGroupPermission(ctx, []string{s.fileID}, groupID, permission); err != nil {
		return err
	}
	s.Groups.Sync(ctx)
	return nil
}

// RevokeGroup revokes a group's permission on the file.
func (s *SharingStore) RevokeGroup(ctx context.Context, groupID string) error {
	if err := s.client.RevokeGroupPermission(ctx, []string{s.fileID}, groupID); err != nil {
		return err
	}
	s.Groups.Sync(ctx)
	return nil
}

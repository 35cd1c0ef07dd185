package store

import (
	"context"

	"github.com/kouprlabs/voltaview/internal/api"
)

type userSource struct {
	client *api.Client
	scope  api.UserScope
}

func (s userSource) FetchPage(ctx context.Context, query string, page, size int) (Page[api.User], error) {
	list, err := s.client.ListUsers(ctx, s.scope, query, api.ListOptions{
		Page:      page,
		Size:      size,
		SortBy:    api.SortByEmail,
		SortOrder: api.SortOrderAsc,
	})
	if err != nil {
		return Page[api.User]{}, err
	}
	return pageOf(list), nil
}

func (s userSource) FetchProbe(ctx context.Context, query string, size int) (Probe, error) {
	probe, err := s.client.ProbeUsers(ctx, s.scope, query, size)
	if err != nil {
		return Probe{}, err
	}
	return probeOf(probe), nil
}

// UserStore lists members of an organization or group. It is read-only;
// membership changes go through the organization and group stores and show
// up here on the next sync.
type UserStore struct {
	*List[api.User, string]
}

// NewUserStore builds a member list store for the given scope.
func NewUserStore(client *api.Client, scope api.UserScope, opts Options) *UserStore {
	return &UserStore{
		List: NewList[api.User, string](userSource{client: client, scope: scope}, opts),
	}
}

package api

import (
	"context"
	"net/url"
)

// User is a platform account, as listed for organization or group
// membership screens.
type User struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	FullName   string  `json:"fullName"`
	Picture    *string `json:"picture,omitempty"`
	CreateTime string  `json:"createTime"`
	UpdateTime *string `json:"updateTime,omitempty"`
}

// EntityID implements store identity.
func (u User) EntityID() string { return u.ID }

// UserScope restricts a user listing to an organization or group. At most
// one of the fields is set; both empty lists nothing (the console API has no
// global user listing).
type UserScope struct {
	OrganizationID string
	GroupID        string
	// NonGroupMembersOf lists organization members NOT in the given group,
	// for add-member pickers.
	NonGroupMembersOf string
}

func (s UserScope) values() (url.Values, error) {
	values := url.Values{}
	switch {
	case s.GroupID != "":
		values.Set("group_id", s.GroupID)
	case s.NonGroupMembersOf != "":
		values.Set("non_group_members_of", s.NonGroupMembersOf)
	case s.OrganizationID != "":
		values.Set("organization_id", s.OrganizationID)
	default:
		return nil, validationError("a user scope is required")
	}
	return values, nil
}

// ListUsers retrieves one page of users in the given scope.
func (c *Client) ListUsers(ctx context.Context, scope UserScope, query string, opts ListOptions) (List[User], error) {
	values, err := scope.values()
	if err != nil {
		return List[User]{}, err
	}
	for key, vals := range opts.values() {
		values[key] = vals
	}
	if query != "" {
		values.Set("query", query)
	}
	return fetchList[User](ctx, c, "/v3/users", values)
}

// ProbeUsers retrieves refreshed totals for a scoped user listing.
func (c *Client) ProbeUsers(ctx context.Context, scope UserScope, query string, size int) (ProbeResult, error) {
	values, err := scope.values()
	if err != nil {
		return ProbeResult{}, err
	}
	if query != "" {
		values.Set("query", query)
	}
	return c.fetchProbe(ctx, "/v3/users/probe", values, size)
}

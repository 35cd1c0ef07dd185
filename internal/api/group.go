package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Group is a named set of users inside an organization.
type Group struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Permission   string       `json:"permission"`
	Organization Organization `json:"organization"`
	CreateTime   string       `json:"createTime"`
	UpdateTime   *string      `json:"updateTime,omitempty"`
}

// EntityID implements store identity.
func (g Group) EntityID() string { return g.ID }

// ListGroups retrieves one page of groups, optionally scoped to an
// organization.
func (c *Client) ListGroups(ctx context.Context, organizationID, query string, opts ListOptions) (List[Group], error) {
	values := opts.values()
	if organizationID != "" {
		values.Set("organization_id", organizationID)
	}
	if query != "" {
		values.Set("query", query)
	}
	return fetchList[Group](ctx, c, "/v3/groups", values)
}

// ProbeGroups retrieves refreshed totals for the group listing.
func (c *Client) ProbeGroups(ctx context.Context, organizationID, query string, size int) (ProbeResult, error) {
	values := url.Values{}
	if organizationID != "" {
		values.Set("organization_id", organizationID)
	}
	if query != "" {
		values.Set("query", query)
	}
	return c.fetchProbe(ctx, "/v3/groups/probe", values, size)
}

// GetGroup retrieves a single group.
func (c *Client) GetGroup(ctx context.Context, id string) (Group, error) {
	if id == "" {
		return Group{}, validationError("group ID is required")
	}
	var payload Group
	if err := c.get(ctx, "/v3/groups/"+id, nil, &payload); err != nil {
		return Group{}, err
	}
	return payload, nil
}

// CreateGroupOptions describe a new group.
type CreateGroupOptions struct {
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId"`
}

// CreateGroup creates a group.
func (c *Client) CreateGroup(ctx context.Context, opts CreateGroupOptions) (Group, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return Group{}, validationError("group name is required")
	}
	if opts.OrganizationID == "" {
		return Group{}, validationError("organization ID is required")
	}
	var payload Group
	if err := c.send(ctx, http.MethodPost, "/v3/groups", opts, &payload); err != nil {
		return Group{}, err
	}
	return payload, nil
}

// PatchGroupName renames a group.
func (c *Client) PatchGroupName(ctx context.Context, id, name string) (Group, error) {
	if id == "" {
		return Group{}, validationError("group ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return Group{}, validationError("name is required")
	}
	var payload Group
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := c.send(ctx, http.MethodPatch, "/v3/groups/"+id+"/name", body, &payload); err != nil {
		return Group{}, err
	}
	return payload, nil
}

// DeleteGroup deletes a group.
func (c *Client) DeleteGroup(ctx context.Context, id string) error {
	if id == "" {
		return validationError("group ID is required")
	}
	return c.send(ctx, http.MethodDelete, "/v3/groups/"+id, nil, nil)
}

// AddGroupMember adds a user to a group.
func (c *Client) AddGroupMember(ctx context.Context, id, userID string) error {
	return c.groupMember(ctx, http.MethodPost, id, userID)
}

// RemoveGroupMember removes a user from a group.
func (c *Client) RemoveGroupMember(ctx context.Context, id, userID string) error {
	return c.groupMember(ctx, http.MethodDelete, id, userID)
}

func (c *Client) groupMember(ctx context.Context, method, id, userID string) error {
	if id == "" {
		return validationError("group ID is required")
	}
	if userID == "" {
		return validationError("user ID is required")
	}
	body := struct {
		UserID string `json:"userId"`
	}{UserID: userID}
	return c.send(ctx, method, "/v3/groups/"+id+"/members", body, nil)
}

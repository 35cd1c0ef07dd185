package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Organization is a tenant grouping workspaces, groups, and members.
type Organization struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Permission string  `json:"permission"`
	CreateTime string  `json:"createTime"`
	UpdateTime *string `json:"updateTime,omitempty"`
}

// EntityID implements store identity.
func (o Organization) EntityID() string { return o.ID }

// ListOrganizations retrieves one page of organizations the user belongs to.
func (c *Client) ListOrganizations(ctx context.Context, query string, opts ListOptions) (List[Organization], error) {
	values := opts.values()
	if query != "" {
		values.Set("query", query)
	}
	return fetchList[Organization](ctx, c, "/v3/organizations", values)
}

// ProbeOrganizations retrieves refreshed totals for the organization listing.
func (c *Client) ProbeOrganizations(ctx context.Context, query string, size int) (ProbeResult, error) {
	values := url.Values{}
	if query != "" {
		values.Set("query", query)
	}
	return c.fetchProbe(ctx, "/v3/organizations/probe", values, size)
}

// GetOrganization retrieves a single organization.
func (c *Client) GetOrganization(ctx context.Context, id string) (Organization, error) {
	if id == "" {
		return Organization{}, validationError("organization ID is required")
	}
	var payload Organization
	if err := c.get(ctx, "/v3/organizations/"+id, nil, &payload); err != nil {
		return Organization{}, err
	}
	return payload, nil
}

// CreateOrganization creates an organization.
func (c *Client) CreateOrganization(ctx context.Context, name string) (Organization, error) {
	if strings.TrimSpace(name) == "" {
		return Organization{}, validationError("organization name is required")
	}
	var payload Organization
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := c.send(ctx, http.MethodPost, "/v3/organizations", body, &payload); err != nil {
		return Organization{}, err
	}
	return payload, nil
}

// PatchOrganizationName renames an organization.
func (c *Client) PatchOrganizationName(ctx context.Context, id, name string) (Organization, error) {
	if id == "" {
		return Organization{}, validationError("organization ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return Organization{}, validationError("name is required")
	}
	var payload Organization
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := c.send(ctx, http.MethodPatch, "/v3/organizations/"+id+"/name", body, &payload); err != nil {
		return Organization{}, err
	}
	return payload, nil
}

// LeaveOrganization removes the current user from an organization.
func (c *Client) LeaveOrganization(ctx context.Context, id string) error {
	if id == "" {
		return validationError("organization ID is required")
	}
	return c.send(ctx, http.MethodPost, "/v3/organizations/"+id+"/leave", nil, nil)
}

// DeleteOrganization deletes an organization.
func (c *Client) DeleteOrganization(ctx context.Context, id string) error {
	if id == "" {
		return validationError("organization ID is required")
	}
	return c.send(ctx, http.MethodDelete, "/v3/organizations/"+id, nil, nil)
}

// RemoveOrganizationMember removes a member from an organization.
func (c *Client) RemoveOrganizationMember(ctx context.Context, id, userID string) error {
	if id == "" {
		return validationError("organization ID is required")
	}
	if userID == "" {
		return validationError("user ID is required")
	}
	body := struct {
		UserID string `json:"userId"`
	}{UserID: userID}
	return c.send(ctx, http.MethodDelete, "/v3/organizations/"+id+"/members", body, nil)
}

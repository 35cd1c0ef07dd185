package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Workspace is a storage workspace inside an organization.
type Workspace struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Permission      string       `json:"permission"`
	StorageCapacity int64        `json:"storageCapacity"`
	RootID          string       `json:"rootId"`
	Organization    Organization `json:"organization"`
	CreateTime      string       `json:"createTime"`
	UpdateTime      *string      `json:"updateTime,omitempty"`
}

// EntityID implements store identity.
func (w Workspace) EntityID() string { return w.ID }

// ListWorkspaces retrieves one page of workspaces visible to the user.
func (c *Client) ListWorkspaces(ctx context.Context, query string, opts ListOptions) (List[Workspace], error) {
	values := opts.values()
	if query != "" {
		values.Set("query", query)
	}
	return fetchList[Workspace](ctx, c, "/v3/workspaces", values)
}

// ProbeWorkspaces retrieves refreshed totals for the workspace listing.
func (c *Client) ProbeWorkspaces(ctx context.Context, query string, size int) (ProbeResult, error) {
	values := url.Values{}
	if query != "" {
		values.Set("query", query)
	}
	return c.fetchProbe(ctx, "/v3/workspaces/probe", values, size)
}

// GetWorkspace retrieves a single workspace.
func (c *Client) GetWorkspace(ctx context.Context, id string) (Workspace, error) {
	if id == "" {
		return Workspace{}, validationError("workspace ID is required")
	}
	var payload Workspace
	if err := c.get(ctx, "/v3/workspaces/"+id, nil, &payload); err != nil {
		return Workspace{}, err
	}
	return payload, nil
}

// CreateWorkspaceOptions describe a new workspace.
type CreateWorkspaceOptions struct {
	Name            string `json:"name"`
	OrganizationID  string `json:"organizationId"`
	StorageCapacity int64  `json:"storageCapacity"`
}

// CreateWorkspace creates a workspace.
func (c *Client) CreateWorkspace(ctx context.Context, opts CreateWorkspaceOptions) (Workspace, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return Workspace{}, validationError("workspace name is required")
	}
	if opts.OrganizationID == "" {
		return Workspace{}, validationError("organization ID is required")
	}
	var payload Workspace
	if err := c.send(ctx, http.MethodPost, "/v3/workspaces", opts, &payload); err != nil {
		return Workspace{}, err
	}
	return payload, nil
}

// PatchWorkspaceName renames a workspace.
func (c *Client) PatchWorkspaceName(ctx context.Context, id, name string) (Workspace, error) {
	if id == "" {
		return Workspace{}, validationError("workspace ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return Workspace{}, validationError("name is required")
	}
	var payload Workspace
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := c.send(ctx, http.MethodPatch, "/v3/workspaces/"+id+"/name", body, &payload); err != nil {
		return Workspace{}, err
	}
	return payload, nil
}

// DeleteWorkspace deletes a workspace.
func (c *Client) DeleteWorkspace(ctx context.Context, id string) error {
	if id == "" {
		return validationError("workspace ID is required")
	}
	return c.send(ctx, http.MethodDelete, "/v3/workspaces/"+id, nil, nil)
}

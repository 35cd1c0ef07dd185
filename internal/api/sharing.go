package api

import (
	"context"
	"net/http"
	"net/url"
)

// Permission levels, weakest to strongest.
const (
	PermissionViewer = "viewer"
	PermissionEditor = "editor"
	PermissionOwner  = "owner"
)

var permissionRank = map[string]int{
	PermissionViewer: 1,
	PermissionEditor: 2,
	PermissionOwner:  3,
}

// PermissionAtLeast reports whether have grants at least want.
func PermissionAtLeast(have, want string) bool {
	return permissionRank[have] >= permissionRank[want]
}

// UserPermission is a sharing grant of a file to a user.
type UserPermission struct {
	ID         string `json:"id"`
	User       User   `json:"user"`
	Permission string `json:"permission"`
}

// EntityID implements store identity.
func (p UserPermission) EntityID() string { return p.ID }

// GroupPermission is a sharing grant of a file to a group.
type GroupPermission struct {
	ID         string `json:"id"`
	Group      Group  `json:"group"`
	Permission string `json:"permission"`
}

// EntityID implements store identity.
func (p GroupPermission) EntityID() string { return p.ID }

// ListUserPermissions retrieves one page of a file's user grants.
func (c *Client) ListUserPermissions(ctx context.Context, fileID string, opts ListOptions) (List[UserPermission], error) {
	if fileID == "" {
		return List[UserPermission]{}, validationError("file ID is required")
	}
	return fetchList[UserPermission](ctx, c, "/v3/files/"+fileID+"/user_permissions", opts.values())
}

// ProbeUserPermissions retrieves refreshed totals for a file's user grants.
func (c *Client) ProbeUserPermissions(ctx context.Context, fileID string, size int) (ProbeResult, error) {
	if fileID == "" {
		return ProbeResult{}, validationError("file ID is required")
	}
	return c.fetchProbe(ctx, "/v3/files/"+fileID+"/user_permissions/probe", url.Values{}, size)
}

// ListGroupPermissions retrieves one page of a file's group grants.
func (c *Client) ListGroupPermissions(ctx context.Context, fileID string, opts ListOptions) (List[GroupPermission], error) {
	if fileID == "" {
		return List[GroupPermission]{}, validationError("file ID is required")
	}
	return fetchList[GroupPermission](ctx, c, "/v3/files/"+fileID+"/group_permissions", opts.values())
}

// ProbeGroupPermissions retrieves refreshed totals for a file's group
// grants.
func (c *Client) ProbeGroupPermissions(ctx context.Context, fileID string, size int) (ProbeResult, error) {
	if fileID == "" {
		return ProbeResult{}, validationError("file ID is required")
	}
	return c.fetchProbe(ctx, "/v3/files/"+fileID+"/group_permissions/probe", url.Values{}, size)
}

// GrantUserPermission grants a user the given permission on the files.
func (c *Client) GrantUserPermission(ctx context.Context, fileIDs []string, userID, permission string) error {
	if len(fileIDs) == 0 {
		return validationError("at least one file ID is required")
	}
	if userID == "" {
		return validationError("user ID is required")
	}
	if _, ok := permissionRank[permission]; !ok {
		return validationError("unknown permission " + permission)
	}
	body := struct {
		IDs        []string `json:"ids"`
		UserID     string   `json:"userId"`
		Permission string   `json:"permission"`
	}{IDs: fileIDs, UserID: userID, Permission: permission}
	return c.send(ctx, http.MethodPost, "/v3/files/grant_user_permission", body, nil)
}

// RevokeUserPermission revokes a user's permission on the files.
func (c *Client) RevokeUserPermission(ctx context.Context, fileIDs []string, userID string) error {
	if len(fileIDs) == 0 {
		return validationError("at least one file ID is required")
	}
	if userID == "" {
		return validationError("user ID is required")
	}
	body := struct {
		IDs    []string `json:"ids"`
		UserID string   `json:"userId"`
	}{IDs: fileIDs, UserID: userID}
	return c.send(ctx, http.MethodPost, "/v3/files/revoke_user_permission", body, nil)
}

// GrantGroupPermission grants a group the given permission on the files.
func (c *Client) GrantGroupPermission(ctx context.Context, fileIDs []string, groupID, permission string) error {
	if len(fileIDs) == 0 {
		return validationError("at least one file ID is required")
	}
	if groupID == "" {
		return validationError("group ID is required")
	}
	if _, ok := permissionRank[permission]; !ok {
		return validationError("unknown permission " + permission)
	}
	body := struct {
		IDs        []string `json:"ids"`
		GroupID    string   `json:"groupId"`
		Permission string   `json:"permission"`
	}{IDs: fileIDs, GroupID: groupID, Permission: permission}
	return c.send(ctx, http.MethodPost, "/v3/files/grant_group_permission", body, nil)
}

// RevokeGroupPermission revokes a group's permission on the files.
func (c *Client) RevokeGroupPermission(ctx context.Context, fileIDs []string, groupID string) error {
	if len(fileIDs) == 0 {
		return validationError("at least one file ID is required")
	}
	if groupID == "" {
		return validationError("group ID is required")
	}
	body := struct {
		IDs     []string `json:"ids"`
		GroupID string   `json:"groupId"`
	}{IDs: fileIDs, GroupID: groupID}
	return c.send(ctx, http.MethodPost, "/v3/files/revoke_group_permission", body, nil)
}

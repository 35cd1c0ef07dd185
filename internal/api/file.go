package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// File type discriminators.
const (
	FileTypeFile   = "file"
	FileTypeFolder = "folder"
)

// File is a file or folder entity.
type File struct {
	ID          string  `json:"id"`
	WorkspaceID string  `json:"workspaceId"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	ParentID    string  `json:"parentId"`
	Permission  string  `json:"permission"`
	IsShared    bool    `json:"isShared"`
	CreateTime  string  `json:"createTime"`
	UpdateTime  *string `json:"updateTime,omitempty"`
}

// EntityID implements store identity.
func (f File) EntityID() string { return f.ID }

// IsFolder reports whether the entity is a folder.
func (f File) IsFolder() bool { return f.Type == FileTypeFolder }

// FileQuery is the structured filter for file listings. It travels
// base64url-encoded in the query parameter.
type FileQuery struct {
	Text string `json:"text,omitempty"`
	Type string `json:"type,omitempty"`
}

func (q FileQuery) isZero() bool {
	return q.Text == "" && q.Type == ""
}

// ListFiles retrieves one page of a folder's children.
func (c *Client) ListFiles(ctx context.Context, folderID string, query FileQuery, opts ListOptions) (List[File], error) {
	if folderID == "" {
		return List[File]{}, validationError("folder ID is required")
	}
	values := opts.values()
	if !query.isZero() {
		encoded, err := encodeStructuredQuery(query)
		if err != nil {
			return List[File]{}, &Error{Kind: KindValidation, Message: "encode file query", Err: err}
		}
		values.Set("query", encoded)
	}
	return fetchList[File](ctx, c, "/v3/files/"+folderID+"/list", values)
}

// ProbeFiles retrieves refreshed totals for a folder listing.
func (c *Client) ProbeFiles(ctx context.Context, folderID string, query FileQuery, size int) (ProbeResult, error) {
	if folderID == "" {
		return ProbeResult{}, validationError("folder ID is required")
	}
	values := url.Values{}
	if !query.isZero() {
		encoded, err := encodeStructuredQuery(query)
		if err != nil {
			return ProbeResult{}, &Error{Kind: KindValidation, Message: "encode file query", Err: err}
		}
		values.Set("query", encoded)
	}
	return c.fetchProbe(ctx, "/v3/files/"+folderID+"/probe", values, size)
}

// GetFile retrieves a single file or folder.
func (c *Client) GetFile(ctx context.Context, id string) (File, error) {
	if id == "" {
		return File{}, validationError("file ID is required")
	}
	var payload File
	if err := c.get(ctx, "/v3/files/"+id, nil, &payload); err != nil {
		return File{}, err
	}
	return payload, nil
}

// CreateFolderOptions name a folder inside a workspace.
type CreateFolderOptions struct {
	WorkspaceID string `json:"workspaceId"`
	ParentID    string `json:"parentId"`
	Name        string `json:"name"`
}

// CreateFolder creates a folder.
func (c *Client) CreateFolder(ctx context.Context, opts CreateFolderOptions) (File, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return File{}, validationError("folder name is required")
	}
	if opts.WorkspaceID == "" {
		return File{}, validationError("workspace ID is required")
	}
	var payload File
	if err := c.send(ctx, http.MethodPost, "/v3/files/create_folder", opts, &payload); err != nil {
		return File{}, err
	}
	return payload, nil
}

// PatchFileName renames a file or folder.
func (c *Client) PatchFileName(ctx context.Context, id, name string) (File, error) {
	if id == "" {
		return File{}, validationError("file ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return File{}, validationError("name is required")
	}
	var payload File
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := c.send(ctx, http.MethodPatch, "/v3/files/"+id+"/name", body, &payload); err != nil {
		return File{}, err
	}
	return payload, nil
}

// BatchResult reports which items of a bulk operation went through.
type BatchResult struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}

type transferOptions struct {
	SourceIDs []string `json:"sourceIds"`
	TargetID  string   `json:"targetId"`
}

// CopyFiles copies the sources into the target folder.
func (c *Client) CopyFiles(ctx context.Context, sourceIDs []string, targetID string) (BatchResult, error) {
	return c.transferFiles(ctx, "/v3/files/copy", sourceIDs, targetID)
}

// MoveFiles moves the sources into the target folder.
func (c *Client) MoveFiles(ctx context.Context, sourceIDs []string, targetID string) (BatchResult, error) {
	return c.transferFiles(ctx, "/v3/files/move", sourceIDs, targetID)
}

func (c *Client) transferFiles(ctx context.Context, path string, sourceIDs []string, targetID string) (BatchResult, error) {
	if len(sourceIDs) == 0 {
		return BatchResult{}, validationError("at least one source ID is required")
	}
	if targetID == "" {
		return BatchResult{}, validationError("target ID is required")
	}
	var payload BatchResult
	body := transferOptions{SourceIDs: sourceIDs, TargetID: targetID}
	if err := c.send(ctx, http.MethodPost, path, body, &payload); err != nil {
		return BatchResult{}, err
	}
	return payload, nil
}

// DeleteFiles deletes the given files and folders.
func (c *Client) DeleteFiles(ctx context.Context, ids []string) (BatchResult, error) {
	if len(ids) == 0 {
		return BatchResult{}, validationError("at least one file ID is required")
	}
	var payload BatchResult
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}
	if err := c.send(ctx, http.MethodDelete, "/v3/files", body, &payload); err != nil {
		return BatchResult{}, err
	}
	return payload, nil
}

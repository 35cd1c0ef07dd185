package store

import (
	"context"
	"sync"

	"github.com/kouprlabs/voltaview/internal/api"
)

// FilePageSize is smaller than the default because file rows carry heavier
// payloads and the browser prefetches aggressively while scrolling.
const FilePageSize = 10

type fileSource struct {
	client    *api.Client
	folderID  string
	sortBy    string
	sortOrder string
}

func (s fileSource) FetchPage(ctx context.Context, query api.FileQuery, page, size int) (Page[api.File], error) {
	list, err := s.client.ListFiles(ctx, s.folderID, query, api.ListOptions{
		Page:      page,
		Size:      size,
		SortBy:    s.sortBy,
		SortOrder: s.sortOrder,
	})
	if err != nil {
		return Page[api.File]{}, err
	}
	return pageOf(list), nil
}

func (s fileSource) FetchProbe(ctx context.Context, query api.FileQuery, size int) (Probe, error) {
	probe, err := s.client.ProbeFiles(ctx, s.folderID, query, size)
	if err != nil {
		return Probe{}, err
	}
	return probeOf(probe), nil
}

// FileStore lists the children of one folder and carries file mutations.
// Navigation creates a fresh FileStore per folder; the store never changes
// folders in place.
type FileStore struct {
	*List[api.File, api.FileQuery]
	client *api.Client

	mu      sync.Mutex
	current api.File
}

// NewFileStore builds a store over the given folder's children.
func NewFileStore(client *api.Client, folder api.File, opts Options) *FileStore {
	if opts.PageSize <= 0 {
		opts.PageSize = FilePageSize
	}
	src := fileSource{
		client:    client,
		folderID:  folder.ID,
		sortBy:    api.SortByKind,
		sortOrder: api.SortOrderAsc,
	}
	s := &FileStore{
		List:    NewList[api.File, api.FileQuery](src, opts),
		client:  client,
		current: folder,
	}
	// Each sync tick also re-fetches the folder itself, so a breadcrumb
	// built from Current picks up server-side renames.
	s.List.syncHook = func(ctx context.Context) {
		if err := s.RefreshCurrent(ctx); err != nil {
			s.List.log.Debug().Err(err).Msg("folder refresh failed")
		}
	}
	return s
}

// Current returns the folder this store lists.
func (s *FileStore) Current() api.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// RefreshCurrent re-fetches the folder itself, picking up renames and
// permission changes.
func (s *FileStore) RefreshCurrent(ctx context.Context) error {
	folder, err := s.client.GetFile(ctx, s.Current().ID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = folder
	s.mu.Unlock()
	return nil
}

// CreateFolder creates a child folder and reflects it locally.
func (s *FileStore) CreateFolder(ctx context.Context, name string) (api.File, error) {
	current := s.Current()
	folder, err := s.client.CreateFolder(ctx, api.CreateFolderOptions{
		WorkspaceID: current.WorkspaceID,
		ParentID:    current.ID,
		Name:        name,
	})
	if err != nil {
		return api.File{}, err
	}
	// The listing is kind-sorted server side, so placement of the new row
	// comes from a refresh rather than a local append.
	s.Sync(ctx)
	return folder, nil
}

// Rename renames a file or folder and substitutes it locally.
func (s *FileStore) Rename(ctx context.Context, id, name string) error {
	file, err := s.client.PatchFileName(ctx, id, name)
	if err != nil {
		return err
	}
	s.ApplyUpdated(file)
	return nil
}

// Delete deletes the given files. Entities the server confirmed are removed
// locally; when some items fail the returned error reports partial versus
// full failure.
func (s *FileStore) Delete(ctx context.Context, ids ...string) error {
	result, err := s.client.DeleteFiles(ctx, ids)
	if err != nil {
		return err
	}
	s.ApplyDeleted(result.Succeeded...)
	return batchError("delete", result)
}

// Move moves the given files into the target folder. Moved entities leave
// this folder's listing immediately.
func (s *FileStore) Move(ctx context.Context, ids []string, targetID string) error {
	result, err := s.client.MoveFiles(ctx, ids, targetID)
	if err != nil {
		return err
	}
	if targetID != s.Current().ID {
		s.ApplyDeleted(result.Succeeded...)
	}
	return batchError("move", result)
}

// Copy copies the given files into the target folder. The next sync picks
// up copies landing in the current folder.
func (s *FileStore) Copy(ctx context.Context, ids []string, targetID string) error {
	result, err := s.client.CopyFiles(ctx, ids, targetID)
	if err != nil {
		return err
	}
	if targetID == s.Current().ID {
		s.Sync(ctx)
	}
	return batchError("copy", result)
}

package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kouprlabs/voltaview/internal/api"
)

// groupServer backs a GroupStore and records membership calls.
type groupServer struct {
	mu          sync.Mutex
	groups      []api.Group
	memberCalls []string
}

func (s *groupServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/v3/groups" && r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(api.List[api.Group]{
				Data:          s.groups,
				TotalPages:    1,
				TotalElements: len(s.groups),
				Page:          1,
				Size:          len(s.groups),
			})

		case r.URL.Path == "/v3/groups/probe":
			_ = json.NewEncoder(w).Encode(api.ProbeResult{
				TotalPages:    1,
				TotalElements: len(s.groups),
			})

		case r.URL.Path == "/v3/groups" && r.Method == http.MethodPost:
			var body api.CreateGroupOptions
			_ = json.NewDecoder(r.Body).Decode(&body)
			group := api.Group{ID: "g" + body.Name, Name: body.Name}
			s.groups = append(s.groups, group)
			_ = json.NewEncoder(w).Encode(group)

		case strings.HasSuffix(r.URL.Path, "/name") && r.Method == http.MethodPatch:
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v3/groups/"), "/name")
			var body struct {
				Name string `json:"name"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			for i := range s.groups {
				if s.groups[i].ID == id {
					s.groups[i].Name = body.Name
					_ = json.NewEncoder(w).Encode(s.groups[i])
					return
				}
			}
			http.NotFound(w, r)

		case strings.HasSuffix(r.URL.Path, "/members"):
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v3/groups/"), "/members")
			var body struct {
				UserID string `json:"userId"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			s.memberCalls = append(s.memberCalls, r.Method+" "+id+" "+body.UserID)
			w.WriteHeader(http.StatusNoContent)

		case r.Method == http.MethodDelete:
			id := strings.TrimPrefix(r.URL.Path, "/v3/groups/")
			kept := s.groups[:0]
			for _, g := range s.groups {
				if g.ID != id {
					kept = append(kept, g)
				}
			}
			s.groups = kept
			w.WriteHeader(http.StatusNoContent)

		default:
			http.NotFound(w, r)
		}
	})
}

func newGroupFixture(t *testing.T, groups []api.Group) (*GroupStore, *groupServer) {
	server := &groupServer{groups: groups}
	ts := httptest.NewServer(server.handler())
	t.Cleanup(ts.Close)

	client, err := api.NewClient(api.Config{BaseURL: ts.URL})
	require.NoError(t, err)
	return NewGroupStore(client, "o1", Options{PageSize: 10}), server
}

func TestGroupStore_CreatePlacesViaSync(t *testing.T) {
	s, _ := newGroupFixture(t, []api.Group{{ID: "g1", Name: "one"}})

	ctx := context.Background()
	require.NoError(t, s.FetchNextPage(ctx, false))

	group, err := s.Create(ctx, api.CreateGroupOptions{Name: "two", OrganizationID: "o1"})
	require.NoError(t, err)
	require.Equal(t, "two", group.Name)

	names := []string{}
	for _, g := range s.Snapshot().Entities {
		names = append(names, g.Name)
	}
	require.Contains(t, names, "two")
}

func TestGroupStore_RenameSubstitutes(t *testing.T) {
	s, _ := newGroupFixture(t, []api.Group{{ID: "g1", Name: "one"}})

	ctx := context.Background()
	require.NoError(t, s.FetchNextPage(ctx, false))
	require.NoError(t, s.Rename(ctx, "g1", "renamed"))
	require.Equal(t, "renamed", s.Snapshot().Entities[0].Name)
}

func TestGroupStore_DeleteRemovesImmediately(t *testing.T) {
	s, _ := newGroupFixture(t, []api.Group{
		{ID: "g1", Name: "one"},
		{ID: "g2", Name: "two"},
	})

	ctx := context.Background()
	require.NoError(t, s.FetchNextPage(ctx, false))
	require.NoError(t, s.Delete(ctx, "g1"))

	snap := s.Snapshot()
	require.Len(t, snap.Entities, 1)
	require.Equal(t, "g2", snap.Entities[0].ID)
}

func TestGroupStore_MemberChangesReachServer(t *testing.T) {
	s, server := newGroupFixture(t, []api.Group{{ID: "g1", Name: "one"}})

	ctx := context.Background()
	require.NoError(t, s.AddMember(ctx, "g1", "u1"))
	require.NoError(t, s.RemoveMember(ctx, "g1", "u1"))

	server.mu.Lock()
	calls := append([]string{}, server.memberCalls...)
	server.mu.Unlock()
	require.Equal(t, []string{"POST g1 u1", "DELETE g1 u1"}, calls)
}

package endpoints

import (
	"errors"
	"net/http"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server"
	"github.com/vidzel/vidzel/pkg/server/store"
)

const (
	msgOrganizationsOnly = "Only organizations can do this"
	msgOwnerOnly         = "Only the project owner can do this"
	msgNotParticipant    = "You are not a member of this workspace"
	msgWorkspaceArchived = "Workspace is archived"
)

// loadOwnedProject fetches a project and checks the caller owns it. On
// failure the response has already been written.
func loadOwnedProject(s *server.Server, w http.ResponseWriter, r *http.Request, projectID string) (*model.Project, bool) {
	project, err := s.Stores.Projects.GetProject(r.Context(), projectID)
	if err != nil {
		respondWithStoreError(s, w, r, err)
		return nil, false
	}
	if !project.OwnedBy(caller(r).Account()) {
		respondWithError(w, http.StatusForbidden, msgOwnerOnly)
		return nil, false
	}
	return project, true
}

// workspaceAccess is the caller's standing in a workspace.
type workspaceAccess struct {
	Workspace *model.Workspace
	Owner     bool
	// Member is nil for the owning organization
	Member *model.WorkspaceMember
}

// loadWorkspace enforces the access rule: the owning organization or a
// member. Everybody else gets 403.
func loadWorkspace(s *server.Server, w http.ResponseWriter, r *http.Request, workspaceID string) (*workspaceAccess, bool) {
	ctx := r.Context()
	id := caller(r)

	ws, err := s.Stores.Workspaces.GetWorkspace(ctx, workspaceID)
	if err != nil {
		respondWithStoreError(s, w, r, err)
		return nil, false
	}
	if ws.OwnedBy(id.Account()) {
		return &workspaceAccess{Workspace: ws, Owner: true}, true
	}

	member, err := s.Stores.Workspaces.GetMember(ctx, ws.ID, id.AccountID)
	if errors.Is(err, store.ErrMemberNotFound) {
		respondWithError(w, http.StatusForbidden, msgNotParticipant)
		return nil, false
	}
	if err != nil {
		respondWithInternalError(s, w, r, err)
		return nil, false
	}
	return &workspaceAccess{Workspace: ws, Member: member}, true
}

// writable rejects writes to archived workspaces.
func (a *workspaceAccess) writable(w http.ResponseWriter) bool {
	if a.Workspace.IsArchived() {
		respondWithError(w, http.StatusConflict, msgWorkspaceArchived)
		return false
	}
	return true
}

func (a *workspaceAccess) ownerOnly(w http.ResponseWriter) bool {
	if !a.Owner {
		respondWithError(w, http.StatusForbidden, msgOwnerOnly)
		return false
	}
	return true
}

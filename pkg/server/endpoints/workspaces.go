package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server"
)

// WorkspaceList splits the caller's workspaces by status
type WorkspaceList struct {
	Active    []model.Workspace `json:"active"`
	Completed []model.Workspace `json:"completed"`
}

// WorkspaceDetail is a workspace with its members
type WorkspaceDetail struct {
	*model.Workspace
	Members []model.WorkspaceMember `json:"members"`
	IsOwner bool                    `json:"isOwner"`
}

// RegisterWorkspacesEndpoints registers the workspace endpoints, including
// the content endpoints nested below a workspace.
func RegisterWorkspacesEndpoints(s *server.Server) {
	workspaces := s.Router.PathPrefix("/workspaces").Subrouter()
	workspaces.Use(s.AuthMiddleware.Middleware)

	workspaces.HandleFunc("", handleListWorkspaces(s)).Methods("GET")
	workspaces.HandleFunc("/{id}", handleGetWorkspace(s)).Methods("GET")
	workspaces.HandleFunc("/{id}/complete", handleCompleteWorkspace(s)).Methods("POST")

	workspaces.HandleFunc("/{id}/tasks", handleListTasks(s)).Methods("GET")
	workspaces.HandleFunc("/{id}/tasks", handleCreateTask(s)).Methods("POST")
	workspaces.HandleFunc("/{id}/tasks/{taskId}", handleUpdateTask(s)).Methods("PATCH")

	workspaces.HandleFunc("/{id}/resources", handleListResources(s)).Methods("GET")
	workspaces.HandleFunc("/{id}/resources", handleCreateResource(s)).Methods("POST")

	workspaces.HandleFunc("/{id}/messages", handleListMessages(s)).Methods("GET")
	workspaces.HandleFunc("/{id}/messages", handleCreateMessage(s)).Methods("POST")

	workspaces.HandleFunc("/{id}/submissions", handleListSubmissions(s)).Methods("GET")
	workspaces.HandleFunc("/{id}/submissions", handleSubmit(s)).Methods("POST")
	workspaces.HandleFunc("/{id}/submissions/{submissionId}/versions/{version}/feedback", handleFeedback(s)).Methods("POST")
}

func handleListWorkspaces(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)

		var (
			all []model.Workspace
			err error
		)
		if id.IsOrganization() {
			all, err = s.Stores.Workspaces.ListOrganizationWorkspaces(r.Context(), id.Account())
		} else {
			all, err = s.Stores.Workspaces.ListMemberWorkspaces(r.Context(), id.AccountID)
		}
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}

		list := WorkspaceList{Active: []model.Workspace{}, Completed: []model.Workspace{}}
		for _, ws := range all {
			if ws.IsArchived() {
				list.Completed = append(list.Completed, ws)
			} else {
				list.Active = append(list.Active, ws)
			}
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleGetWorkspace(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access, ok := loadWorkspace(s, w, r, mux.Vars(r)["id"])
		if !ok {
			return
		}

		members, err := s.Stores.Workspaces.ListMembers(r.Context(), access.Workspace.ID)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if members == nil {
			members = []model.WorkspaceMember{}
		}
		respondWithJSON(w, http.StatusOK, WorkspaceDetail{
			Workspace: access.Workspace,
			Members:   members,
			IsOwner:   access.Owner,
		})
	}
}

func handleCompleteWorkspace(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access, ok := loadWorkspace(s, w, r, mux.Vars(r)["id"])
		if !ok || !access.ownerOnly(w) {
			return
		}
		completeProject(s, w, r, access.Workspace.ProjectID)
	}
}

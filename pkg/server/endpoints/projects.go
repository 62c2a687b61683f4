package endpoints

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/yuin/goldmark"

	"github.com/vidzel/vidzel/pkg/audit"
	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server"
	"github.com/vidzel/vidzel/pkg/server/store"
)

type projectRequest struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Tasks                string   `json:"tasks"`
	Status               string   `json:"status"`
	CauseAreas           []string `json:"causeAreas"`
	CollaborationFormats []string `json:"collaborationFormats"`
	Languages            []string `json:"languages"`
	ProblemFocus         []string `json:"problemFocus"`
	OutcomeGoals         []string `json:"outcomeGoals"`
	ResourcesNeeded      []string `json:"resourcesNeeded"`
	Activities           []string `json:"activities"`
	Links                []string `json:"links"`
}

// ProjectDetail is a single project with its rendered description
type ProjectDetail struct {
	*model.Project
	DescriptionHTML string `json:"descriptionHtml"`
}

// CompletionResponse is returned when a project is completed
type CompletionResponse struct {
	Project   *model.Project   `json:"project"`
	Workspace *model.Workspace `json:"workspace,omitempty"`
}

// RegisterProjectsEndpoints registers project endpoints
func RegisterProjectsEndpoints(s *server.Server) {
	projects := s.Router.PathPrefix("/projects").Subrouter()
	projects.Use(s.AuthMiddleware.Middleware)

	projects.HandleFunc("", handleCreateProject(s)).Methods("POST")
	projects.HandleFunc("", handleListProjects(s)).Methods("GET")
	projects.HandleFunc("/completed", handleListCompletedProjects(s)).Methods("GET")
	projects.HandleFunc("/{id}", handleGetProject(s)).Methods("GET")
	projects.HandleFunc("/{id}", handleDeleteProject(s)).Methods("DELETE")
	projects.HandleFunc("/{id}/complete", handleCompleteProject(s)).Methods("POST")
	projects.HandleFunc("/{id}/workspace", handleOpenWorkspace(s)).Methods("POST")
	projects.HandleFunc("/{id}/applications", handleApply(s)).Methods("POST")
	projects.HandleFunc("/{id}/applications", handleListProjectApplications(s)).Methods("GET")
	projects.HandleFunc("/{id}/invitations", handleInvite(s)).Methods("POST")
}

// cleanList trims entries and drops empty ones
func cleanList(values []string) pq.StringArray {
	out := pq.StringArray{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func handleCreateProject(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)
		if !id.IsOrganization() {
			respondWithError(w, http.StatusForbidden, "Only organizations can create projects")
			return
		}

		var req projectRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			respondWithError(w, http.StatusBadRequest, "Title is required")
			return
		}

		status := model.ProjectStatusActive
		if strings.EqualFold(strings.TrimSpace(req.Status), model.ProjectStatusDraft.String()) {
			status = model.ProjectStatusDraft
		}

		project := &model.Project{
			OrganizationID:       id.AccountID,
			OrganizationName:     id.Name,
			OrganizationEmail:    id.Email,
			Title:                req.Title,
			Description:          req.Description,
			Tasks:                req.Tasks,
			Status:               status,
			CauseAreas:           cleanList(req.CauseAreas),
			CollaborationFormats: cleanList(req.CollaborationFormats),
			Languages:            cleanList(req.Languages),
			ProblemFocus:         cleanList(req.ProblemFocus),
			OutcomeGoals:         cleanList(req.OutcomeGoals),
			ResourcesNeeded:      cleanList(req.ResourcesNeeded),
			Activities:           cleanList(req.Activities),
			Links:                cleanList(req.Links),
			CreatedAt:            now(),
		}

		if err := s.Stores.Projects.CreateProject(r.Context(), project); err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}

		audit.Log(audit.ProjectEvent{
			UserID:    id.AccountID,
			ClientIP:  id.ClientIP(),
			ProjectID: project.ID,
			Action:    "create",
			Success:   true,
		})
		respondWithJSON(w, http.StatusCreated, project)
	}
}

func handleListProjects(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)

		if id.IsOrganization() {
			projects, err := s.Stores.Projects.ListOrganizationProjects(r.Context(), id.Account())
			if err != nil {
				respondWithStoreError(s, w, r, err)
				return
			}
			if projects == nil {
				projects = []model.Project{}
			}
			respondWithJSON(w, http.StatusOK, projects)
			return
		}

		projects, err := s.Stores.Projects.ListExploreProjects(r.Context(), id.Account(), listLimit(s))
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if projects == nil {
			projects = []store.ExploreProject{}
		}
		respondWithJSON(w, http.StatusOK, projects)
	}
}

func handleListCompletedProjects(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := s.Stores.Projects.ListCompletedProjects(r.Context(), caller(r).Account())
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if projects == nil {
			projects = []model.Project{}
		}
		respondWithJSON(w, http.StatusOK, projects)
	}
}

func handleGetProject(s *server.Server) http.HandlerFunc {
	md := goldmark.New()

	return func(w http.ResponseWriter, r *http.Request) {
		project, err := s.Stores.Projects.GetProject(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if project.Status == model.ProjectStatusDraft && !project.OwnedBy(caller(r).Account()) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}

		var buf bytes.Buffer
		if err := md.Convert([]byte(project.Description), &buf); err != nil {
			respondWithInternalError(s, w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, ProjectDetail{Project: project, DescriptionHTML: buf.String()})
	}
}

func handleDeleteProject(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := loadOwnedProject(s, w, r, mux.Vars(r)["id"])
		if !ok {
			return
		}

		if err := s.Stores.Projects.DeleteProject(r.Context(), project.ID); err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}

		id := caller(r)
		audit.Log(audit.ProjectEvent{
			UserID:    id.AccountID,
			ClientIP:  id.ClientIP(),
			ProjectID: project.ID,
			Action:    "delete",
			Success:   true,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleCompleteProject(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := loadOwnedProject(s, w, r, mux.Vars(r)["id"])
		if !ok {
			return
		}
		completeProject(s, w, r, project.ID)
	}
}

// completeProject backs both project and workspace completion
func completeProject(s *server.Server, w http.ResponseWriter, r *http.Request, projectID string) {
	id := caller(r)
	project, ws, err := s.Stores.Projects.CompleteProject(r.Context(), projectID, now())
	if err != nil {
		audit.Log(audit.ProjectEvent{
			UserID:       id.AccountID,
			ClientIP:     id.ClientIP(),
			ProjectID:    projectID,
			Action:       "complete",
			ErrorMessage: err.Error(),
		})
		respondWithStoreError(s, w, r, err)
		return
	}

	audit.Log(audit.ProjectEvent{
		UserID:    id.AccountID,
		ClientIP:  id.ClientIP(),
		ProjectID: project.ID,
		Action:    "complete",
		Success:   true,
	})
	respondWithJSON(w, http.StatusOK, CompletionResponse{Project: project, Workspace: ws})
}

func handleOpenWorkspace(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := loadOwnedProject(s, w, r, mux.Vars(r)["id"])
		if !ok {
			return
		}

		ws, err := s.Stores.Workspaces.EnsureWorkspace(r.Context(), project)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, ws)
	}
}

package endpoints

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vidzel/vidzel/pkg/audit"
	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server"
	"github.com/vidzel/vidzel/pkg/server/store"
)

type applyRequest struct {
	Message string `json:"message"`
}

type decideRequest struct {
	Status string `json:"status"`
}

// DecisionResponse is returned when an application is accepted or rejected
type DecisionResponse struct {
	Application *model.Application `json:"application"`
	Workspace   *model.Workspace   `json:"workspace,omitempty"`
}

// RegisterApplicationsEndpoints registers the cross-project application
// endpoints. Per-project routes live with the projects.
func RegisterApplicationsEndpoints(s *server.Server) {
	applications := s.Router.PathPrefix("/applications").Subrouter()
	applications.Use(s.AuthMiddleware.Middleware)

	applications.HandleFunc("", handleListApplications(s)).Methods("GET")
	applications.HandleFunc("/{id}", handleDecideApplication(s)).Methods("PATCH")
}

func handleApply(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := caller(r)
		if id.IsOrganization() {
			respondWithError(w, http.StatusForbidden, "Organizations cannot apply")
			return
		}

		var req applyRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		project, err := s.Stores.Projects.GetProject(ctx, mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if project.Status != model.ProjectStatusActive {
			respondWithError(w, http.StatusConflict, "Project is not accepting applications")
			return
		}

		appliedAt := now()
		app := &model.Application{
			ProjectID:      project.ID,
			ProjectTitle:   project.Title,
			ApplicantID:    id.AccountID,
			ApplicantName:  id.Name,
			ApplicantEmail: id.Email,
			ApplicantRole:  id.Role,
			Message:        strings.TrimSpace(req.Message),
			Status:         model.ApplicationStatusPending,
			AppliedAt:      appliedAt,
		}
		notice := model.ApplicationReceived(project.OrganizationID, app, appliedAt)

		if err := s.Stores.Applications.CreateApplication(ctx, app, notice); err != nil {
			audit.Log(audit.ApplicationEvent{
				UserID:       id.AccountID,
				ClientIP:     id.ClientIP(),
				ProjectID:    project.ID,
				Action:       "apply",
				ErrorMessage: err.Error(),
			})
			respondWithStoreError(s, w, r, err)
			return
		}

		s.Metrics.Application(app.Status.String())
		audit.Log(audit.ApplicationEvent{
			UserID:        id.AccountID,
			ClientIP:      id.ClientIP(),
			ApplicationID: app.ID,
			ProjectID:     project.ID,
			Action:        "apply",
			Success:       true,
		})
		respondWithJSON(w, http.StatusCreated, app)
	}
}

func handleListProjectApplications(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := loadOwnedProject(s, w, r, mux.Vars(r)["id"])
		if !ok {
			return
		}

		query := r.URL.Query()
		filter := store.ApplicationFilter{
			Roles:    model.ParseRoles(query.Get("role")),
			Statuses: model.ParseApplicationStatuses(query.Get("status")),
			Query:    strings.TrimSpace(query.Get("q")),
		}

		apps, err := s.Stores.Applications.ListProjectApplications(r.Context(), project.ID, filter)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if apps == nil {
			apps = []model.Application{}
		}
		respondWithJSON(w, http.StatusOK, apps)
	}
}

func handleListApplications(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)

		if id.IsOrganization() {
			apps, err := s.Stores.Applications.ListOrganizationApplications(r.Context(), id.Account())
			if err != nil {
				respondWithStoreError(s, w, r, err)
				return
			}
			if apps == nil {
				apps = []store.ApplicationWithApplicant{}
			}
			respondWithJSON(w, http.StatusOK, apps)
			return
		}

		apps, err := s.Stores.Applications.ListApplicantApplications(r.Context(), id.AccountID)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if apps == nil {
			apps = []model.Application{}
		}
		respondWithJSON(w, http.StatusOK, apps)
	}
}

func handleDecideApplication(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := caller(r)

		var req decideRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		status, err := model.ApplicationStatusString(strings.ToLower(strings.TrimSpace(req.Status)))
		if err != nil || status == model.ApplicationStatusPending {
			respondWithError(w, http.StatusBadRequest, "Status must be accepted or rejected")
			return
		}

		app, err := s.Stores.Applications.GetApplication(ctx, mux.Vars(r)["id"])
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if _, ok := loadOwnedProject(s, w, r, app.ProjectID); !ok {
			return
		}

		action := "reject"
		if status == model.ApplicationStatusAccepted {
			action = "accept"
		}

		decided, ws, err := s.Stores.Applications.DecideApplication(ctx, app.ID, status, now())
		if err != nil {
			audit.Log(audit.ApplicationEvent{
				UserID:        id.AccountID,
				ClientIP:      id.ClientIP(),
				ApplicationID: app.ID,
				ProjectID:     app.ProjectID,
				Action:        action,
				ErrorMessage:  err.Error(),
			})
			respondWithStoreError(s, w, r, err)
			return
		}

		s.Metrics.Application(status.String())
		audit.Log(audit.ApplicationEvent{
			UserID:        id.AccountID,
			ClientIP:      id.ClientIP(),
			ApplicationID: app.ID,
			ProjectID:     app.ProjectID,
			Action:        action,
			Success:       true,
		})
		respondWithJSON(w, http.StatusOK, DecisionResponse{Application: decided, Workspace: ws})
	}
}

package endpoints

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server"
	"github.com/vidzel/vidzel/pkg/server/store"
)

type submitRequest struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

type feedbackRequest struct {
	Comment string `json:"comment"`
	Status  string `json:"status"`
}

// SubmitResponse is returned after a version is submitted
type SubmitResponse struct {
	Submission *model.Submission        `json:"submission"`
	Version    *model.SubmissionVersion `json:"version"`
}

// notify stores a notification outside of a store transaction. A failure
// is logged and does not fail the request.
func notify(s *server.Server, r *http.Request, n *model.Notification) {
	if n == nil || n.UserID == "" {
		return
	}
	if err := s.Stores.Notifications.CreateNotification(r.Context(), n); err != nil {
		s.Logger.Warn("failed to store notification",
			zap.String("user_id", n.UserID),
			zap.String("title", n.Title),
			zap.Error(err),
		)
	}
}

func handleSubmit(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)
		access, ok := loadWorkspace(s, w, r, mux.Vars(r)["id"])
		if !ok {
			return
		}
		if access.Owner || id.IsOrganization() {
			respondWithError(w, http.StatusForbidden, "Only members can submit work")
			return
		}
		if !access.writable(w) {
			return
		}

		var req submitRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		trimAll(&req.Title, &req.Link, &req.Description)
		if req.Title == "" || req.Link == "" {
			respondWithError(w, http.StatusBadRequest, "Title and link are required")
			return
		}

		submittedAt := now()
		sub, version, err := s.Stores.Submissions.SubmitVersion(r.Context(), access.Workspace.ID, id.Account(), store.NewVersion{
			Title:       req.Title,
			Link:        req.Link,
			Description: req.Description,
		}, submittedAt)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}

		s.Metrics.Submission()
		notify(s, r, model.SubmissionReceived(access.Workspace.OrganizationID, access.Workspace, sub, version.Version, submittedAt))
		respondWithJSON(w, http.StatusCreated, SubmitResponse{Submission: sub, Version: version})
	}
}

func handleListSubmissions(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access, ok := loadWorkspace(s, w, r, mux.Vars(r)["id"])
		if !ok {
			return
		}

		userID := ""
		if !access.Owner {
			userID = caller(r).AccountID
		}

		subs, err := s.Stores.Submissions.ListSubmissions(r.Context(), access.Workspace.ID, userID)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if subs == nil {
			subs = []model.Submission{}
		}
		respondWithJSON(w, http.StatusOK, subs)
	}
}

func handleFeedback(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		access, ok := loadWorkspace(s, w, r, vars["id"])
		if !ok || !access.ownerOnly(w) || !access.writable(w) {
			return
		}

		version, err := strconv.Atoi(vars["version"])
		if err != nil || version < 1 {
			respondWithError(w, http.StatusBadRequest, "Invalid version")
			return
		}

		var req feedbackRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		trimAll(&req.Comment, &req.Status)
		if req.Comment == "" {
			respondWithError(w, http.StatusBadRequest, "Comment is required")
			return
		}
		status := model.FeedbackStatusReviewed
		if req.Status != "" {
			st, err := model.FeedbackStatusString(strings.ToLower(req.Status))
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "Status must be reviewed, approved or needs_changes")
				return
			}
			status = st
		}

		ctx := r.Context()
		sub, err := s.Stores.Submissions.GetSubmission(ctx, access.Workspace.ID, vars["submissionId"])
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}

		reviewer := caller(r).Name
		reviewedAt := now()
		v, err := s.Stores.Submissions.AddFeedback(ctx, sub.ID, version, store.Feedback{
			Comment:    req.Comment,
			Status:     status,
			ReviewedBy: reviewer,
		}, reviewedAt)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}

		notify(s, r, model.FeedbackReceived(sub, v, access.Workspace, reviewedAt))
		respondWithJSON(w, http.StatusOK, v)
	}
}

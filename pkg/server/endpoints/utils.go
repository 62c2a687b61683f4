package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vidzel/vidzel/pkg/identity"
	"github.com/vidzel/vidzel/pkg/server"
	"github.com/vidzel/vidzel/pkg/server/middleware"
	"github.com/vidzel/vidzel/pkg/server/store"
)

const maxJSONBody = 1 << 20

var now = func() time.Time { return time.Now().UTC() }

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// decodeJSON reads a JSON request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

type storeErrorResponse struct {
	err     error
	code    int
	message string
}

var storeErrorResponses = []storeErrorResponse{
	{store.ErrAccountNotFound, http.StatusNotFound, "Account not found"},
	{store.ErrProfileNotFound, http.StatusNotFound, "Profile not found"},
	{store.ErrProjectNotFound, http.StatusNotFound, "Project not found"},
	{store.ErrWorkspaceNotFound, http.StatusNotFound, "Workspace not found"},
	{store.ErrMemberNotFound, http.StatusNotFound, "Member not found"},
	{store.ErrApplicationNotFound, http.StatusNotFound, "Application not found"},
	{store.ErrInvitationNotFound, http.StatusNotFound, "Invitation not found"},
	{store.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
	{store.ErrSubmissionNotFound, http.StatusNotFound, "Submission not found"},
	{store.ErrNotificationNotFound, http.StatusNotFound, "Notification not found"},
	{store.ErrEmailTaken, http.StatusConflict, "Email already registered"},
	{store.ErrAlreadyApplied, http.StatusConflict, "Already applied"},
	{store.ErrAlreadyInvited, http.StatusConflict, "User already invited"},
	{store.ErrNotPending, http.StatusConflict, "Already responded"},
	{store.ErrAlreadyCompleted, http.StatusConflict, "Project already completed"},
	{store.ErrSubmissionConflict, http.StatusConflict, "Submission was updated concurrently, try again"},
}

// respondWithStoreError maps store sentinels onto HTTP answers. Anything
// else is logged and reported as a bare 500.
func respondWithStoreError(s *server.Server, w http.ResponseWriter, r *http.Request, err error) {
	for _, resp := range storeErrorResponses {
		if errors.Is(err, resp.err) {
			respondWithError(w, resp.code, resp.message)
			return
		}
	}
	respondWithInternalError(s, w, r, err)
}

func respondWithInternalError(s *server.Server, w http.ResponseWriter, r *http.Request, err error) {
	s.Logger.Error("request failed",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}

// caller returns the authenticated identity. Routes using it sit behind the
// session token middleware.
func caller(r *http.Request) *identity.Identity {
	id, ok := identity.Get(r.Context())
	if !ok {
		return &identity.Identity{}
	}
	return id
}

func listLimit(s *server.Server) int {
	if s.Config != nil && s.Config.APIListLimitMax > 0 {
		return s.Config.APIListLimitMax
	}
	return 1000
}

// acceptsHTML reports whether the client prefers an HTML rendering.
func acceptsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}

func trimAll(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}

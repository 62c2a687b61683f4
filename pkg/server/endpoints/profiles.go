package endpoints

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server"
	"github.com/vidzel/vidzel/pkg/server/store"
)

type profileRequest struct {
	FullName       string `json:"fullName"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Skills         string `json:"skills"`
	Availability   string `json:"availability"`
	Education      string `json:"education"`
	Experience     string `json:"experience"`
	ResumeFileName string `json:"resumeFileName"`
	ResumeURL      string `json:"resumeUrl"`
}

// ProfileInvitation is the state of an organization's invitation to the
// profile owner for one of its projects.
type ProfileInvitation struct {
	InvitationID string                 `json:"invitationId"`
	ProjectID    string                 `json:"projectId"`
	ProjectTitle string                 `json:"projectTitle"`
	Status       model.InvitationStatus `json:"status"`
}

// ProfileResponse is a profile as seen by an organization or its owner
type ProfileResponse struct {
	*model.ProfileWithAccount
	Invitations []ProfileInvitation `json:"invitations,omitempty"`
}

// RegisterProfilesEndpoints registers profile endpoints
func RegisterProfilesEndpoints(s *server.Server) {
	profiles := s.Router.NewRoute().Subrouter()
	profiles.Use(s.AuthMiddleware.Middleware)

	profiles.HandleFunc("/profile", handleGetOwnProfile(s)).Methods("GET")
	profiles.HandleFunc("/profile", handleSaveProfile(s)).Methods("PUT")
	profiles.HandleFunc("/profiles", handleListProfiles(s)).Methods("GET")
	profiles.HandleFunc("/profiles/{userId}", handleGetProfile(s)).Methods("GET")
}

func handleGetOwnProfile(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)
		if id.IsOrganization() {
			respondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}

		profile, err := s.Stores.Profiles.GetProfile(r.Context(), id.AccountID)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, profile)
	}
}

func handleSaveProfile(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)
		if id.IsOrganization() {
			respondWithError(w, http.StatusForbidden, "Organizations do not have profiles")
			return
		}

		var req profileRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		trimAll(&req.FullName, &req.Location, &req.Skills, &req.Availability, &req.ResumeFileName, &req.ResumeURL)

		profile := &model.Profile{
			UserID:         id.AccountID,
			FullName:       req.FullName,
			Location:       req.Location,
			Bio:            req.Bio,
			Skills:         req.Skills,
			Availability:   req.Availability,
			Education:      req.Education,
			Experience:     req.Experience,
			ResumeFileName: req.ResumeFileName,
			ResumeURL:      req.ResumeURL,
			UpdatedAt:      now(),
		}
		if err := s.Stores.Profiles.SaveProfile(r.Context(), profile); err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, profile)
	}
}

func handleListProfiles(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !caller(r).IsOrganization() {
			respondWithError(w, http.StatusForbidden, msgOrganizationsOnly)
			return
		}

		query := r.URL.Query()
		filter := store.ProfileFilter{
			Roles: model.ParseRoles(query.Get("role")),
			Query: strings.TrimSpace(query.Get("q")),
			Limit: listLimit(s),
		}

		profiles, err := s.Stores.Profiles.ListProfiles(r.Context(), filter)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if profiles == nil {
			profiles = []model.ProfileWithAccount{}
		}
		respondWithJSON(w, http.StatusOK, profiles)
	}
}

func handleGetProfile(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := caller(r)
		userID := mux.Vars(r)["userId"]

		if !id.IsOrganization() && id.AccountID != userID {
			respondWithError(w, http.StatusForbidden, "You can only view your own profile")
			return
		}

		profile, err := s.Stores.Profiles.GetProfile(ctx, userID)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}

		resp := ProfileResponse{ProfileWithAccount: profile}
		if id.IsOrganization() {
			sent, err := s.Stores.Invitations.ListSentInvitations(ctx, id.Account())
			if err != nil {
				respondWithStoreError(s, w, r, err)
				return
			}
			resp.Invitations = []ProfileInvitation{}
			for _, inv := range sent {
				if inv.InvitedUserID != userID {
					continue
				}
				resp.Invitations = append(resp.Invitations, ProfileInvitation{
					InvitationID: inv.ID,
					ProjectID:    inv.ProjectID,
					ProjectTitle: inv.ProjectTitle,
					Status:       inv.Status,
				})
			}
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

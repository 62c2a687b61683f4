package endpoints

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vidzel/vidzel/pkg/audit"
	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server"
)

type inviteRequest struct {
	UserID string `json:"userId"`
}

// RegisterInvitationsEndpoints registers invitation endpoints. Sending an
// invitation is a project route.
func RegisterInvitationsEndpoints(s *server.Server) {
	invitations := s.Router.PathPrefix("/invitations").Subrouter()
	invitations.Use(s.AuthMiddleware.Middleware)

	invitations.HandleFunc("", handleListInvitations(s)).Methods("GET")
	invitations.HandleFunc("/{id}/accept", handleAcceptInvitation(s)).Methods("POST")
	invitations.HandleFunc("/{id}/decline", handleDeclineInvitation(s)).Methods("POST")
}

func handleInvite(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := caller(r)

		project, ok := loadOwnedProject(s, w, r, mux.Vars(r)["id"])
		if !ok {
			return
		}
		if project.IsCompleted() {
			respondWithError(w, http.StatusConflict, "Project is completed")
			return
		}

		var req inviteRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.UserID = strings.TrimSpace(req.UserID)
		if req.UserID == "" {
			respondWithError(w, http.StatusBadRequest, "userId is required")
			return
		}

		invitee, err := s.Stores.Accounts.FindAccountByID(ctx, req.UserID)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if invitee.IsOrganization() {
			respondWithError(w, http.StatusBadRequest, "Organizations cannot be invited")
			return
		}

		createdAt := now()
		inv := &model.Invitation{
			ProjectID:         project.ID,
			ProjectTitle:      project.Title,
			InvitedUserID:     invitee.ID,
			InvitedUserName:   invitee.Name,
			InvitedUserRole:   invitee.Role,
			InvitedByOrgID:    id.AccountID,
			InvitedByOrgEmail: id.Email,
			Status:            model.InvitationStatusPending,
			CreatedAt:         createdAt,
		}
		orgName := project.OrganizationName
		if orgName == "" {
			orgName = id.Name
		}
		notice := model.InvitationReceived(inv, orgName, createdAt)

		if err := s.Stores.Invitations.CreateInvitation(ctx, inv, notice); err != nil {
			audit.Log(audit.InvitationEvent{
				UserID:       id.AccountID,
				ClientIP:     id.ClientIP(),
				ProjectID:    project.ID,
				Action:       "send",
				ErrorMessage: err.Error(),
			})
			respondWithStoreError(s, w, r, err)
			return
		}

		s.Metrics.Invitation(inv.Status.String())
		audit.Log(audit.InvitationEvent{
			UserID:       id.AccountID,
			ClientIP:     id.ClientIP(),
			InvitationID: inv.ID,
			ProjectID:    project.ID,
			Action:       "send",
			Success:      true,
		})
		respondWithJSON(w, http.StatusCreated, inv)
	}
}

func handleListInvitations(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)

		var (
			invitations []model.Invitation
			err         error
		)
		if id.IsOrganization() {
			invitations, err = s.Stores.Invitations.ListSentInvitations(r.Context(), id.Account())
		} else {
			invitations, err = s.Stores.Invitations.ListReceivedInvitations(r.Context(), id.AccountID)
		}
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if invitations == nil {
			invitations = []model.Invitation{}
		}
		respondWithJSON(w, http.StatusOK, invitations)
	}
}

// loadInvitation fetches an invitation addressed to the caller
func loadInvitation(s *server.Server, w http.ResponseWriter, r *http.Request) (*model.Invitation, bool) {
	inv, err := s.Stores.Invitations.GetInvitation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondWithStoreError(s, w, r, err)
		return nil, false
	}
	if inv.InvitedUserID != caller(r).AccountID {
		respondWithError(w, http.StatusForbidden, "Only the invited user can respond")
		return nil, false
	}
	return inv, true
}

func handleAcceptInvitation(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)
		inv, ok := loadInvitation(s, w, r)
		if !ok {
			return
		}

		ws, err := s.Stores.Invitations.AcceptInvitation(r.Context(), inv.ID, id.Account(), now())
		if err != nil {
			audit.Log(audit.InvitationEvent{
				UserID:       id.AccountID,
				ClientIP:     id.ClientIP(),
				InvitationID: inv.ID,
				ProjectID:    inv.ProjectID,
				Action:       "accept",
				ErrorMessage: err.Error(),
			})
			respondWithStoreError(s, w, r, err)
			return
		}

		s.Metrics.Invitation(model.InvitationStatusAccepted.String())
		audit.Log(audit.InvitationEvent{
			UserID:       id.AccountID,
			ClientIP:     id.ClientIP(),
			InvitationID: inv.ID,
			ProjectID:    inv.ProjectID,
			Action:       "accept",
			Success:      true,
		})
		respondWithJSON(w, http.StatusOK, ws)
	}
}

func handleDeclineInvitation(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := caller(r)
		inv, ok := loadInvitation(s, w, r)
		if !ok {
			return
		}

		respondedAt := now()
		if err := s.Stores.Invitations.DeclineInvitation(r.Context(), inv.ID, respondedAt); err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}

		s.Metrics.Invitation(model.InvitationStatusDeclined.String())
		audit.Log(audit.InvitationEvent{
			UserID:       id.AccountID,
			ClientIP:     id.ClientIP(),
			InvitationID: inv.ID,
			ProjectID:    inv.ProjectID,
			Action:       "decline",
			Success:      true,
		})

		inv.Status = model.InvitationStatusDeclined
		inv.RespondedAt = &respondedAt
		respondWithJSON(w, http.StatusOK, inv)
	}
}

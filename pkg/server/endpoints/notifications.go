package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server"
)

// NotificationList is the caller's inbox
type NotificationList struct {
	Notifications []model.Notification `json:"notifications"`
	Unread        int64                `json:"unread"`
}

// RegisterNotificationsEndpoints registers notification endpoints
func RegisterNotificationsEndpoints(s *server.Server) {
	notifications := s.Router.PathPrefix("/notifications").Subrouter()
	notifications.Use(s.AuthMiddleware.Middleware)

	notifications.HandleFunc("", handleListNotifications(s)).Methods("GET")
	notifications.HandleFunc("/read-all", handleMarkAllRead(s)).Methods("POST")
	notifications.HandleFunc("/{id}/read", handleMarkRead(s)).Methods("POST")
}

func handleListNotifications(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := caller(r).AccountID

		notifications, err := s.Stores.Notifications.ListNotifications(ctx, userID, listLimit(s))
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		unread, err := s.Stores.Notifications.CountUnread(ctx, userID)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if notifications == nil {
			notifications = []model.Notification{}
		}
		respondWithJSON(w, http.StatusOK, NotificationList{Notifications: notifications, Unread: unread})
	}
}

func handleMarkRead(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Stores.Notifications.MarkRead(r.Context(), caller(r).AccountID, mux.Vars(r)["id"]); err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleMarkAllRead(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Stores.Notifications.MarkAllRead(r.Context(), caller(r).AccountID); err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

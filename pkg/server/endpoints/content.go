package endpoints

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server"
)

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type taskUpdateRequest struct {
	Completed *bool `json:"completed"`
}

type resourceRequest struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Value string `json:"value"`
}

type messageRequest struct {
	Content string `json:"content"`
}

func handleListTasks(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access, ok := loadWorkspace(s, w, r, mux.Vars(r)["id"])
		if !ok {
			return
		}

		tasks, err := s.Stores.Tasks.ListTasks(r.Context(), access.Workspace.ID)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if tasks == nil {
			tasks = []model.Task{}
		}
		respondWithJSON(w, http.StatusOK, tasks)
	}
}

func handleCreateTask(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access, ok := loadWorkspace(s, w, r, mux.Vars(r)["id"])
		if !ok || !access.ownerOnly(w) || !access.writable(w) {
			return
		}

		var req taskRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		trimAll(&req.Title, &req.Description)
		if req.Title == "" {
			respondWithError(w, http.StatusBadRequest, "Title is required")
			return
		}

		task := &model.Task{
			WorkspaceID: access.Workspace.ID,
			Title:       req.Title,
			Description: req.Description,
			CreatedBy:   caller(r).AccountID,
			CreatedAt:   now(),
		}
		if err := s.Stores.Tasks.CreateTask(r.Context(), task); err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, task)
	}
}

func handleUpdateTask(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		access, ok := loadWorkspace(s, w, r, vars["id"])
		if !ok || !access.writable(w) {
			return
		}

		var req taskUpdateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Completed == nil {
			respondWithError(w, http.StatusBadRequest, "completed is required")
			return
		}

		task, err := s.Stores.Tasks.SetTaskCompleted(r.Context(), access.Workspace.ID, vars["taskId"], *req.Completed)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, task)
	}
}

func handleListResources(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access, ok := loadWorkspace(s, w, r, mux.Vars(r)["id"])
		if !ok {
			return
		}

		resources, err := s.Stores.Resources.ListResources(r.Context(), access.Workspace.ID)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if resources == nil {
			resources = []model.Resource{}
		}
		respondWithJSON(w, http.StatusOK, resources)
	}
}

func handleCreateResource(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access, ok := loadWorkspace(s, w, r, mux.Vars(r)["id"])
		if !ok || !access.ownerOnly(w) || !access.writable(w) {
			return
		}

		var req resourceRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		trimAll(&req.Type, &req.Title, &req.Value)
		if req.Title == "" || req.Value == "" {
			respondWithError(w, http.StatusBadRequest, "Title and value are required")
			return
		}

		resourceType := model.ResourceTypeLink
		if req.Type != "" {
			t, err := model.ResourceTypeString(strings.ToLower(req.Type))
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "Type must be one of file, link, video or note")
				return
			}
			resourceType = t
		}

		resource := &model.Resource{
			WorkspaceID: access.Workspace.ID,
			Type:        resourceType,
			Title:       req.Title,
			Value:       req.Value,
			CreatedBy:   caller(r).AccountID,
			CreatedAt:   now(),
		}
		if err := s.Stores.Resources.CreateResource(r.Context(), resource); err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, resource)
	}
}

func handleListMessages(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access, ok := loadWorkspace(s, w, r, mux.Vars(r)["id"])
		if !ok {
			return
		}

		messages, err := s.Stores.Messages.ListMessages(r.Context(), access.Workspace.ID)
		if err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		if messages == nil {
			messages = []model.Message{}
		}
		respondWithJSON(w, http.StatusOK, messages)
	}
}

func handleCreateMessage(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access, ok := loadWorkspace(s, w, r, mux.Vars(r)["id"])
		if !ok || !access.writable(w) {
			return
		}

		var req messageRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Content = strings.TrimSpace(req.Content)
		if req.Content == "" {
			respondWithError(w, http.StatusBadRequest, "Message cannot be empty")
			return
		}

		id := caller(r)
		msg := &model.Message{
			WorkspaceID: access.Workspace.ID,
			AuthorID:    id.AccountID,
			AuthorName:  id.Name,
			AuthorRole:  id.Role,
			Content:     req.Content,
			CreatedAt:   now(),
		}
		if err := s.Stores.Messages.CreateMessage(r.Context(), msg); err != nil {
			respondWithStoreError(s, w, r, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, msg)
	}
}

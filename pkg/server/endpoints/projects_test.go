package endpoints

import (
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

func TestCreateProject(t *testing.T) {
	t.Run("organization creates an active project", func(t *testing.T) {
		env := newTestEnv(t)
		env.projects.On("CreateProject", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
			return p.OrganizationID == testOrg.ID &&
				p.OrganizationEmail == testOrg.Email &&
				p.Title == "River Cleanup" &&
				p.Status == model.ProjectStatusActive &&
				assert.ObjectsAreEqual(pq.StringArray{"Environment"}, p.CauseAreas) &&
				len(p.Links) == 0
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Project).ID = "proj-1"
		}).Return(nil)

		w := env.do(t, "POST", "/projects", map[string]interface{}{
			"title":      "  River Cleanup ",
			"causeAreas": []string{" Environment ", ""},
			"links":      []string{"  "},
		}, testOrg)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var resp model.Project
		decodeBody(t, w, &resp)
		assert.Equal(t, "proj-1", resp.ID)
		assert.Equal(t, model.ProjectStatusActive, resp.Status)
		env.assertExpectations(t)
	})

	t.Run("draft status", func(t *testing.T) {
		env := newTestEnv(t)
		env.projects.On("CreateProject", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
			return p.Status == model.ProjectStatusDraft
		})).Return(nil)

		w := env.do(t, "POST", "/projects", map[string]string{"title": "Idea", "status": "Draft"}, testOrg)
		assert.Equal(t, http.StatusCreated, w.Code)
		env.assertExpectations(t)
	})

	t.Run("title is required", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, "POST", "/projects", map[string]string{"title": "  "}, testOrg)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Title is required", errorMessage(t, w))
	})

	t.Run("only organizations", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, "POST", "/projects", map[string]string{"title": "Mine"}, testStudent)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Only organizations can create projects", errorMessage(t, w))
	})
}

func TestListProjects(t *testing.T) {
	t.Run("organizations see their own", func(t *testing.T) {
		env := newTestEnv(t)
		env.projects.On("ListOrganizationProjects", mock.Anything, testOrg).Return(nil, nil)

		w := env.do(t, "GET", "/projects", nil, testOrg)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("everybody else explores", func(t *testing.T) {
		env := newTestEnv(t)
		env.projects.On("ListExploreProjects", mock.Anything, testStudent, 1000).Return([]store.ExploreProject{
			{Project: *activeProject(), Applied: true},
		}, nil)

		w := env.do(t, "GET", "/projects", nil, testStudent)
		require.Equal(t, http.StatusOK, w.Code)
		var resp []store.ExploreProject
		decodeBody(t, w, &resp)
		require.Len(t, resp, 1)
		assert.True(t, resp[0].Applied)
	})

	t.Run("completed", func(t *testing.T) {
		env := newTestEnv(t)
		completed := activeProject()
		completed.Status = model.ProjectStatusCompleted
		env.projects.On("ListCompletedProjects", mock.Anything, testStudent).Return([]model.Project{*completed}, nil)

		w := env.do(t, "GET", "/projects/completed", nil, testStudent)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"completed"`)
	})
}

func TestGetProject(t *testing.T) {
	t.Run("renders the description", func(t *testing.T) {
		env := newTestEnv(t)
		env.projects.On("GetProject", mock.Anything, "proj-1").Return(activeProject(), nil)

		w := env.do(t, "GET", "/projects/proj-1", nil, testStudent)

		require.Equal(t, http.StatusOK, w.Code)
		var resp ProjectDetail
		decodeBody(t, w, &resp)
		assert.Equal(t, "River Cleanup", resp.Title)
		assert.Contains(t, resp.DescriptionHTML, "<strong>clean</strong>")
	})

	t.Run("drafts are hidden from others", func(t *testing.T) {
		env := newTestEnv(t)
		draft := activeProject()
		draft.Status = model.ProjectStatusDraft
		env.projects.On("GetProject", mock.Anything, "proj-1").Return(draft, nil)

		assert.Equal(t, http.StatusNotFound, env.do(t, "GET", "/projects/proj-1", nil, testStudent).Code)
		assert.Equal(t, http.StatusOK, env.do(t, "GET", "/projects/proj-1", nil, testOrg).Code)
	})

	t.Run("unknown project", func(t *testing.T) {
		env := newTestEnv(t)
		env.projects.On("GetProject", mock.Anything, "nope").Return(nil, store.ErrProjectNotFound)

		w := env.do(t, "GET", "/projects/nope", nil, testStudent)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Project not found", errorMessage(t, w))
	})
}

func TestDeleteProject(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		env := newTestEnv(t)
		env.projects.On("GetProject", mock.Anything, "proj-1").Return(activeProject(), nil)
		env.projects.On("DeleteProject", mock.Anything, "proj-1").Return(nil)

		w := env.do(t, "DELETE", "/projects/proj-1", nil, testOrg)
		assert.Equal(t, http.StatusNoContent, w.Code)
		env.assertExpectations(t)
	})

	t.Run("other organizations cannot", func(t *testing.T) {
		env := newTestEnv(t)
		env.projects.On("GetProject", mock.Anything, "proj-1").Return(activeProject(), nil)

		w := env.do(t, "DELETE", "/projects/proj-1", nil, otherOrg)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, msgOwnerOnly, errorMessage(t, w))
		env.projects.AssertNotCalled(t, "DeleteProject", mock.Anything, mock.Anything)
	})
}

func TestCompleteProject(t *testing.T) {
	t.Run("completes project and workspace", func(t *testing.T) {
		env := newTestEnv(t)
		completedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		done := activeProject()
		done.Status = model.ProjectStatusCompleted
		done.CompletedAt = &completedAt
		ws := archivedWorkspace()

		env.projects.On("GetProject", mock.Anything, "proj-1").Return(activeProject(), nil)
		env.projects.On("CompleteProject", mock.Anything, "proj-1", mock.Anything).Return(done, ws, nil)

		w := env.do(t, "POST", "/projects/proj-1/complete", nil, testOrg)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp CompletionResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, model.ProjectStatusCompleted, resp.Project.Status)
		require.NotNil(t, resp.Workspace)
		assert.Equal(t, model.WorkspaceStatusCompleted, resp.Workspace.Status)
	})

	t.Run("twice", func(t *testing.T) {
		env := newTestEnv(t)
		env.projects.On("GetProject", mock.Anything, "proj-1").Return(activeProject(), nil)
		env.projects.On("CompleteProject", mock.Anything, "proj-1", mock.Anything).Return(nil, nil, store.ErrAlreadyCompleted)

		w := env.do(t, "POST", "/projects/proj-1/complete", nil, testOrg)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Project already completed", errorMessage(t, w))
	})
}

func TestOpenWorkspace(t *testing.T) {
	env := newTestEnv(t)
	project := activeProject()
	env.projects.On("GetProject", mock.Anything, "proj-1").Return(project, nil)
	env.workspaces.On("EnsureWorkspace", mock.Anything, project).Return(activeWorkspace(), nil)

	w := env.do(t, "POST", "/projects/proj-1/workspace", nil, testOrg)

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.Workspace
	decodeBody(t, w, &resp)
	assert.Equal(t, "ws-1", resp.ID)
	env.assertExpectations(t)
}

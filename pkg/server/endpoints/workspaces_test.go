package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

// asMember makes testStudent a member of ws-1
func (e *testEnv) asMember(ws *model.Workspace) {
	e.workspaces.On("GetWorkspace", mock.Anything, ws.ID).Return(ws, nil)
	e.workspaces.On("GetMember", mock.Anything, ws.ID, testStudent.ID).Return(studentMember(), nil)
}

// asOutsider makes testMentor unknown to ws-1
func (e *testEnv) asOutsider(ws *model.Workspace) {
	e.workspaces.On("GetWorkspace", mock.Anything, ws.ID).Return(ws, nil)
	e.workspaces.On("GetMember", mock.Anything, ws.ID, testMentor.ID).Return(nil, store.ErrMemberNotFound)
}

func TestListWorkspaces(t *testing.T) {
	env := newTestEnv(t)
	env.workspaces.On("ListOrganizationWorkspaces", mock.Anything, testOrg).
		Return([]model.Workspace{*activeWorkspace(), *archivedWorkspace()}, nil)
	env.workspaces.On("ListMemberWorkspaces", mock.Anything, testStudent.ID).Return(nil, nil)

	w := env.do(t, "GET", "/workspaces", nil, testOrg)
	require.Equal(t, http.StatusOK, w.Code)
	var list WorkspaceList
	decodeBody(t, w, &list)
	assert.Len(t, list.Active, 1)
	assert.Len(t, list.Completed, 1)

	w = env.do(t, "GET", "/workspaces", nil, testStudent)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"active":[],"completed":[]}`, w.Body.String())
}

func TestGetWorkspace(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		env := newTestEnv(t)
		env.workspaces.On("GetWorkspace", mock.Anything, "ws-1").Return(activeWorkspace(), nil)
		env.workspaces.On("ListMembers", mock.Anything, "ws-1").Return([]model.WorkspaceMember{*studentMember()}, nil)

		w := env.do(t, "GET", "/workspaces/ws-1", nil, testOrg)

		require.Equal(t, http.StatusOK, w.Code)
		var resp WorkspaceDetail
		decodeBody(t, w, &resp)
		assert.True(t, resp.IsOwner)
		assert.Len(t, resp.Members, 1)
		env.workspaces.AssertNotCalled(t, "GetMember", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("member", func(t *testing.T) {
		env := newTestEnv(t)
		env.asMember(activeWorkspace())
		env.workspaces.On("ListMembers", mock.Anything, "ws-1").Return(nil, nil)

		w := env.do(t, "GET", "/workspaces/ws-1", nil, testStudent)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"isOwner":false`)
		assert.Contains(t, w.Body.String(), `"members":[]`)
	})

	t.Run("outsiders are refused", func(t *testing.T) {
		env := newTestEnv(t)
		env.asOutsider(activeWorkspace())

		w := env.do(t, "GET", "/workspaces/ws-1", nil, testMentor)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, msgNotParticipant, errorMessage(t, w))
	})

	t.Run("other organizations are outsiders too", func(t *testing.T) {
		env := newTestEnv(t)
		env.workspaces.On("GetWorkspace", mock.Anything, "ws-1").Return(activeWorkspace(), nil)
		env.workspaces.On("GetMember", mock.Anything, "ws-1", otherOrg.ID).Return(nil, store.ErrMemberNotFound)

		w := env.do(t, "GET", "/workspaces/ws-1", nil, otherOrg)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown", func(t *testing.T) {
		env := newTestEnv(t)
		env.workspaces.On("GetWorkspace", mock.Anything, "nope").Return(nil, store.ErrWorkspaceNotFound)

		w := env.do(t, "GET", "/workspaces/nope", nil, testOrg)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCompleteWorkspace(t *testing.T) {
	t.Run("owner completes the project", func(t *testing.T) {
		env := newTestEnv(t)
		done := activeProject()
		done.Status = model.ProjectStatusCompleted
		env.workspaces.On("GetWorkspace", mock.Anything, "ws-1").Return(activeWorkspace(), nil)
		env.projects.On("CompleteProject", mock.Anything, "proj-1", mock.Anything).Return(done, archivedWorkspace(), nil)

		w := env.do(t, "POST", "/workspaces/ws-1/complete", nil, testOrg)
		assert.Equal(t, http.StatusOK, w.Code)
		env.assertExpectations(t)
	})

	t.Run("members cannot", func(t *testing.T) {
		env := newTestEnv(t)
		env.asMember(activeWorkspace())

		w := env.do(t, "POST", "/workspaces/ws-1/complete", nil, testStudent)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestTasks(t *testing.T) {
	t.Run("owner creates", func(t *testing.T) {
		env := newTestEnv(t)
		env.workspaces.On("GetWorkspace", mock.Anything, "ws-1").Return(activeWorkspace(), nil)
		env.tasks.On("CreateTask", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
			return task.WorkspaceID == "ws-1" && task.Title == "Map the banks" && task.CreatedBy == testOrg.ID
		})).Return(nil)

		w := env.do(t, "POST", "/workspaces/ws-1/tasks", map[string]string{"title": " Map the banks "}, testOrg)
		assert.Equal(t, http.StatusCreated, w.Code)
		env.assertExpectations(t)
	})

	t.Run("members cannot create", func(t *testing.T) {
		env := newTestEnv(t)
		env.asMember(activeWorkspace())

		w := env.do(t, "POST", "/workspaces/ws-1/tasks", map[string]string{"title": "Mine"}, testStudent)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("title is required", func(t *testing.T) {
		env := newTestEnv(t)
		env.workspaces.On("GetWorkspace", mock.Anything, "ws-1").Return(activeWorkspace(), nil)

		w := env.do(t, "POST", "/workspaces/ws-1/tasks", map[string]string{"title": ""}, testOrg)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("members toggle completion", func(t *testing.T) {
		env := newTestEnv(t)
		env.asMember(activeWorkspace())
		env.tasks.On("SetTaskCompleted", mock.Anything, "ws-1", "task-1", true).
			Return(&model.Task{ID: "task-1", WorkspaceID: "ws-1", Completed: true}, nil)

		w := env.do(t, "PATCH", "/workspaces/ws-1/tasks/task-1", map[string]bool{"completed": true}, testStudent)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"completed":true`)
	})

	t.Run("completed is required", func(t *testing.T) {
		env := newTestEnv(t)
		env.asMember(activeWorkspace())

		w := env.do(t, "PATCH", "/workspaces/ws-1/tasks/task-1", map[string]string{}, testStudent)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("task outside the workspace", func(t *testing.T) {
		env := newTestEnv(t)
		env.asMember(activeWorkspace())
		env.tasks.On("SetTaskCompleted", mock.Anything, "ws-1", "task-9", false).Return(nil, store.ErrTaskNotFound)

		w := env.do(t, "PATCH", "/workspaces/ws-1/tasks/task-9", map[string]bool{"completed": false}, testStudent)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("archived workspaces are read-only", func(t *testing.T) {
		env := newTestEnv(t)
		env.asMember(archivedWorkspace())
		env.tasks.On("ListTasks", mock.Anything, "ws-1").Return([]model.Task{{ID: "task-1"}}, nil)

		w := env.do(t, "PATCH", "/workspaces/ws-1/tasks/task-1", map[string]bool{"completed": true}, testStudent)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, msgWorkspaceArchived, errorMessage(t, w))

		w = env.do(t, "GET", "/workspaces/ws-1/tasks", nil, testStudent)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestResources(t *testing.T) {
	t.Run("defaults to link", func(t *testing.T) {
		env := newTestEnv(t)
		env.workspaces.On("GetWorkspace", mock.Anything, "ws-1").Return(activeWorkspace(), nil)
		env.resources.On("CreateResource", mock.Anything, mock.MatchedBy(func(r *model.Resource) bool {
			return r.Type == model.ResourceTypeLink && r.Value == "https://example.org/map"
		})).Return(nil)

		w := env.do(t, "POST", "/workspaces/ws-1/resources", map[string]string{
			"title": "Map", "value": "https://example.org/map",
		}, testOrg)
		assert.Equal(t, http.StatusCreated, w.Code)
		env.assertExpectations(t)
	})

	t.Run("explicit type", func(t *testing.T) {
		env := newTestEnv(t)
		env.workspaces.On("GetWorkspace", mock.Anything, "ws-1").Return(activeWorkspace(), nil)
		env.resources.On("CreateResource", mock.Anything, mock.MatchedBy(func(r *model.Resource) bool {
			return r.Type == model.ResourceTypeVideo
		})).Return(nil)

		w := env.do(t, "POST", "/workspaces/ws-1/resources", map[string]string{
			"type": "Video", "title": "Intro", "value": "https://example.org/v",
		}, testOrg)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unknown type", func(t *testing.T) {
		env := newTestEnv(t)
		env.workspaces.On("GetWorkspace", mock.Anything, "ws-1").Return(activeWorkspace(), nil)

		w := env.do(t, "POST", "/workspaces/ws-1/resources", map[string]string{
			"type": "podcast", "title": "Intro", "value": "x",
		}, testOrg)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Type must be one of file, link, video or note", errorMessage(t, w))
	})

	t.Run("members read", func(t *testing.T) {
		env := newTestEnv(t)
		env.asMember(activeWorkspace())
		env.resources.On("ListResources", mock.Anything, "ws-1").Return(nil, nil)

		w := env.do(t, "GET", "/workspaces/ws-1/resources", nil, testStudent)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestMessages(t *testing.T) {
	t.Run("any participant posts", func(t *testing.T) {
		env := newTestEnv(t)
		env.asMember(activeWorkspace())
		env.messages.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m *model.Message) bool {
			return m.AuthorID == testStudent.ID && m.AuthorRole == model.RoleStudent && m.Content == "Hello team"
		})).Return(nil)

		w := env.do(t, "POST", "/workspaces/ws-1/messages", map[string]string{"content": " Hello team "}, testStudent)
		assert.Equal(t, http.StatusCreated, w.Code)
		env.assertExpectations(t)
	})

	t.Run("empty", func(t *testing.T) {
		env := newTestEnv(t)
		env.workspaces.On("GetWorkspace", mock.Anything, "ws-1").Return(activeWorkspace(), nil)

		w := env.do(t, "POST", "/workspaces/ws-1/messages", map[string]string{"content": "   "}, testOrg)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Message cannot be empty", errorMessage(t, w))
	})

	t.Run("archived", func(t *testing.T) {
		env := newTestEnv(t)
		env.workspaces.On("GetWorkspace", mock.Anything, "ws-1").Return(archivedWorkspace(), nil)

		w := env.do(t, "POST", "/workspaces/ws-1/messages", map[string]string{"content": "late"}, testOrg)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("outsiders cannot read", func(t *testing.T) {
		env := newTestEnv(t)
		env.asOutsider(activeWorkspace())

		w := env.do(t, "GET", "/workspaces/ws-1/messages", nil, testMentor)
		assert.Equal(t, http.StatusForbidden, w.Code)
		env.messages.AssertNotCalled(t, "ListMessages", mock.Anything, mock.Anything)
	})
}

package endpoints

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

// MockAccountsStore implements store.AccountsStore for testing using testify/mock
type MockAccountsStore struct {
	mock.Mock
}

func NewMockAccountsStore() *MockAccountsStore {
	return &MockAccountsStore{}
}

func (m *MockAccountsStore) CreateAccount(ctx context.Context, account *model.Account, profile *model.Profile) error {
	args := m.Called(ctx, account, profile)
	return args.Error(0)
}

func (m *MockAccountsStore) FindAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountsStore) FindAccountByID(ctx context.Context, id string) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountsStore) ListAccounts(ctx context.Context) ([]model.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockAccountsStore) DeleteAccount(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockProfilesStore implements store.ProfilesStore for testing using testify/mock
type MockProfilesStore struct {
	mock.Mock
}

func NewMockProfilesStore() *MockProfilesStore {
	return &MockProfilesStore{}
}

func (m *MockProfilesStore) GetProfile(ctx context.Context, userID string) (*model.ProfileWithAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileWithAccount), args.Error(1)
}

func (m *MockProfilesStore) SaveProfile(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfilesStore) ListProfiles(ctx context.Context, filter store.ProfileFilter) ([]model.ProfileWithAccount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProfileWithAccount), args.Error(1)
}

// MockProjectsStore implements store.ProjectsStore for testing using testify/mock
type MockProjectsStore struct {
	mock.Mock
}

func NewMockProjectsStore() *MockProjectsStore {
	return &MockProjectsStore{}
}

func (m *MockProjectsStore) CreateProject(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectsStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectsStore) ListOrganizationProjects(ctx context.Context, org *model.Account) ([]model.Project, error) {
	args := m.Called(ctx, org)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectsStore) ListExploreProjects(ctx context.Context, applicant *model.Account, limit int) ([]store.ExploreProject, error) {
	args := m.Called(ctx, applicant, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ExploreProject), args.Error(1)
}

func (m *MockProjectsStore) ListCompletedProjects(ctx context.Context, account *model.Account) ([]model.Project, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectsStore) DeleteProject(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectsStore) CompleteProject(ctx context.Context, id string, now time.Time) (*model.Project, *model.Workspace, error) {
	args := m.Called(ctx, id, now)
	var p *model.Project
	if v := args.Get(0); v != nil {
		p = v.(*model.Project)
	}
	var ws *model.Workspace
	if v := args.Get(1); v != nil {
		ws = v.(*model.Workspace)
	}
	return p, ws, args.Error(2)
}

// MockWorkspacesStore implements store.WorkspacesStore for testing using testify/mock
type MockWorkspacesStore struct {
	mock.Mock
}

func NewMockWorkspacesStore() *MockWorkspacesStore {
	return &MockWorkspacesStore{}
}

func (m *MockWorkspacesStore) EnsureWorkspace(ctx context.Context, project *model.Project) (*model.Workspace, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspacesStore) GetWorkspace(ctx context.Context, id string) (*model.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspacesStore) GetProjectWorkspace(ctx context.Context, projectID string) (*model.Workspace, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspacesStore) ListOrganizationWorkspaces(ctx context.Context, org *model.Account) ([]model.Workspace, error) {
	args := m.Called(ctx, org)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Workspace), args.Error(1)
}

func (m *MockWorkspacesStore) ListMemberWorkspaces(ctx context.Context, userID string) ([]model.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Workspace), args.Error(1)
}

func (m *MockWorkspacesStore) ListMembers(ctx context.Context, workspaceID string) ([]model.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspacesStore) GetMember(ctx context.Context, workspaceID, userID string) (*model.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspacesStore) ListMemberships(ctx context.Context, userID string) ([]model.WorkspaceMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WorkspaceMember), args.Error(1)
}

// MockApplicationsStore implements store.ApplicationsStore for testing using testify/mock
type MockApplicationsStore struct {
	mock.Mock
}

func NewMockApplicationsStore() *MockApplicationsStore {
	return &MockApplicationsStore{}
}

func (m *MockApplicationsStore) CreateApplication(ctx context.Context, app *model.Application, notice *model.Notification) error {
	args := m.Called(ctx, app, notice)
	return args.Error(0)
}

func (m *MockApplicationsStore) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationsStore) ListProjectApplications(ctx context.Context, projectID string, filter store.ApplicationFilter) ([]model.Application, error) {
	args := m.Called(ctx, projectID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationsStore) ListOrganizationApplications(ctx context.Context, org *model.Account) ([]store.ApplicationWithApplicant, error) {
	args := m.Called(ctx, org)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ApplicationWithApplicant), args.Error(1)
}

func (m *MockApplicationsStore) ListApplicantApplications(ctx context.Context, applicantID string) ([]model.Application, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationsStore) DecideApplication(ctx context.Context, id string, status model.ApplicationStatus, now time.Time) (*model.Application, *model.Workspace, error) {
	args := m.Called(ctx, id, status, now)
	var app *model.Application
	if v := args.Get(0); v != nil {
		app = v.(*model.Application)
	}
	var ws *model.Workspace
	if v := args.Get(1); v != nil {
		ws = v.(*model.Workspace)
	}
	return app, ws, args.Error(2)
}

// MockInvitationsStore implements store.InvitationsStore for testing using testify/mock
type MockInvitationsStore struct {
	mock.Mock
}

func NewMockInvitationsStore() *MockInvitationsStore {
	return &MockInvitationsStore{}
}

func (m *MockInvitationsStore) CreateInvitation(ctx context.Context, inv *model.Invitation, notice *model.Notification) error {
	args := m.Called(ctx, inv, notice)
	return args.Error(0)
}

func (m *MockInvitationsStore) GetInvitation(ctx context.Context, id string) (*model.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *MockInvitationsStore) ListReceivedInvitations(ctx context.Context, userID string) ([]model.Invitation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Invitation), args.Error(1)
}

func (m *MockInvitationsStore) ListSentInvitations(ctx context.Context, org *model.Account) ([]model.Invitation, error) {
	args := m.Called(ctx, org)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Invitation), args.Error(1)
}

func (m *MockInvitationsStore) AcceptInvitation(ctx context.Context, id string, invitee *model.Account, now time.Time) (*model.Workspace, error) {
	args := m.Called(ctx, id, invitee, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockInvitationsStore) DeclineInvitation(ctx context.Context, id string, now time.Time) error {
	args := m.Called(ctx, id, now)
	return args.Error(0)
}

// MockTasksStore implements store.TasksStore for testing using testify/mock
type MockTasksStore struct {
	mock.Mock
}

func NewMockTasksStore() *MockTasksStore {
	return &MockTasksStore{}
}

func (m *MockTasksStore) ListTasks(ctx context.Context, workspaceID string) ([]model.Task, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTasksStore) CreateTask(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTasksStore) SetTaskCompleted(ctx context.Context, workspaceID, taskID string, completed bool) (*model.Task, error) {
	args := m.Called(ctx, workspaceID, taskID, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

// MockResourcesStore implements store.ResourcesStore for testing using testify/mock
type MockResourcesStore struct {
	mock.Mock
}

func NewMockResourcesStore() *MockResourcesStore {
	return &MockResourcesStore{}
}

func (m *MockResourcesStore) ListResources(ctx context.Context, workspaceID string) ([]model.Resource, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *MockResourcesStore) CreateResource(ctx context.Context, resource *model.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

// MockMessagesStore implements store.MessagesStore for testing using testify/mock
type MockMessagesStore struct {
	mock.Mock
}

func NewMockMessagesStore() *MockMessagesStore {
	return &MockMessagesStore{}
}

func (m *MockMessagesStore) ListMessages(ctx context.Context, workspaceID string) ([]model.Message, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessagesStore) CreateMessage(ctx context.Context, msg *model.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockSubmissionsStore implements store.SubmissionsStore for testing using testify/mock
type MockSubmissionsStore struct {
	mock.Mock
}

func NewMockSubmissionsStore() *MockSubmissionsStore {
	return &MockSubmissionsStore{}
}

func (m *MockSubmissionsStore) SubmitVersion(ctx context.Context, workspaceID string, user *model.Account, v store.NewVersion, now time.Time) (*model.Submission, *model.SubmissionVersion, error) {
	args := m.Called(ctx, workspaceID, user, v, now)
	var sub *model.Submission
	if x := args.Get(0); x != nil {
		sub = x.(*model.Submission)
	}
	var version *model.SubmissionVersion
	if x := args.Get(1); x != nil {
		version = x.(*model.SubmissionVersion)
	}
	return sub, version, args.Error(2)
}

func (m *MockSubmissionsStore) ListSubmissions(ctx context.Context, workspaceID, userID string) ([]model.Submission, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Submission), args.Error(1)
}

func (m *MockSubmissionsStore) GetSubmission(ctx context.Context, workspaceID, submissionID string) (*model.Submission, error) {
	args := m.Called(ctx, workspaceID, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Submission), args.Error(1)
}

func (m *MockSubmissionsStore) AddFeedback(ctx context.Context, submissionID string, version int, fb store.Feedback, now time.Time) (*model.SubmissionVersion, error) {
	args := m.Called(ctx, submissionID, version, fb, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmissionVersion), args.Error(1)
}

// MockNotificationsStore implements store.NotificationsStore for testing using testify/mock
type MockNotificationsStore struct {
	mock.Mock
}

func NewMockNotificationsStore() *MockNotificationsStore {
	return &MockNotificationsStore{}
}

func (m *MockNotificationsStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationsStore) ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationsStore) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationsStore) MarkRead(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockNotificationsStore) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var (
	_ store.AccountsStore      = (*MockAccountsStore)(nil)
	_ store.ProfilesStore      = (*MockProfilesStore)(nil)
	_ store.ProjectsStore      = (*MockProjectsStore)(nil)
	_ store.WorkspacesStore    = (*MockWorkspacesStore)(nil)
	_ store.ApplicationsStore  = (*MockApplicationsStore)(nil)
	_ store.InvitationsStore   = (*MockInvitationsStore)(nil)
	_ store.TasksStore         = (*MockTasksStore)(nil)
	_ store.ResourcesStore     = (*MockResourcesStore)(nil)
	_ store.MessagesStore      = (*MockMessagesStore)(nil)
	_ store.SubmissionsStore   = (*MockSubmissionsStore)(nil)
	_ store.NotificationsStore = (*MockNotificationsStore)(nil)
	_ store.HealthStore        = (*MockHealthStore)(nil)
)

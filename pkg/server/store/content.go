package store

import (
	"context"
	"time"

	"github.com/vidzel/vidzel/pkg/model"
)

// TasksStore abstracts workspace task storage
type TasksStore interface {
	// ListTasks returns tasks in creation order
	ListTasks(ctx context.Context, workspaceID string) ([]model.Task, error)
	CreateTask(ctx context.Context, task *model.Task) error
	// SetTaskCompleted returns ErrTaskNotFound when the task is not in the workspace
	SetTaskCompleted(ctx context.Context, workspaceID, taskID string, completed bool) (*model.Task, error)
}

// ResourcesStore abstracts shared workspace resource storage
type ResourcesStore interface {
	// ListResources returns resources newest first
	ListResources(ctx context.Context, workspaceID string) ([]model.Resource, error)
	CreateResource(ctx context.Context, resource *model.Resource) error
}

// MessagesStore abstracts the workspace message thread
type MessagesStore interface {
	// ListMessages returns messages oldest first
	ListMessages(ctx context.Context, workspaceID string) ([]model.Message, error)
	CreateMessage(ctx context.Context, msg *model.Message) error
}

// NewVersion is the content of a submitted revision
type NewVersion struct {
	Title       string
	Link        string
	Description string
}

// Feedback is an organization's review of one submission version
type Feedback struct {
	Comment    string
	Status     model.FeedbackStatus
	ReviewedBy string
}

// SubmissionsStore abstracts versioned work submissions
type SubmissionsStore interface {
	// SubmitVersion appends a version to the user's submission in the
	// workspace, creating the submission with version 1 on first use.
	SubmitVersion(ctx context.Context, workspaceID string, user *model.Account, v NewVersion, now time.Time) (*model.Submission, *model.SubmissionVersion, error)

	// ListSubmissions returns submissions with their versions. A non-empty
	// userID restricts the result to that user.
	ListSubmissions(ctx context.Context, workspaceID, userID string) ([]model.Submission, error)

	// GetSubmission returns ErrSubmissionNotFound when the submission is not
	// in the workspace.
	GetSubmission(ctx context.Context, workspaceID, submissionID string) (*model.Submission, error)

	// AddFeedback reviews one version. Returns ErrSubmissionNotFound when
	// the version does not exist.
	AddFeedback(ctx context.Context, submissionID string, version int, fb Feedback, now time.Time) (*model.SubmissionVersion, error)
}

// NotificationsStore abstracts per-user notifications
type NotificationsStore interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	// ListNotifications returns the user's notifications newest first
	ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkRead returns ErrNotificationNotFound unless the notification
	// belongs to the user.
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// HealthStore provides health check operations
type HealthStore interface {
	// CheckConnectivity verifies database connectivity
	CheckConnectivity(ctx context.Context) error
}

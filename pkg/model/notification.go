package model

import (
	"fmt"
	"time"
)

type Notification struct {
	ID          string           `gorm:"column:id;primaryKey" json:"id"`
	UserID      string           `gorm:"column:user_id;not null" json:"userId"`
	Type        NotificationType `gorm:"column:type;type:text;not null" json:"type"`
	Title       string           `gorm:"column:title;not null" json:"title"`
	Message     string           `gorm:"column:message" json:"message"`
	WorkspaceID string           `gorm:"column:workspace_id" json:"workspaceId,omitempty"`
	ProjectID   string           `gorm:"column:project_id" json:"projectId,omitempty"`
	IsRead      bool             `gorm:"column:is_read" json:"isRead"`
	CreatedAt   time.Time        `gorm:"column:created_at" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

// InvitationReceived notifies a user that an organization invited them.
func InvitationReceived(inv *Invitation, orgName string, now time.Time) *Notification {
	return &Notification{
		UserID:    inv.InvitedUserID,
		Type:      NotificationTypeInvitation,
		Title:     "New Project Invitation",
		Message:   fmt.Sprintf("%s invited you to join %q", orgName, inv.ProjectTitle),
		ProjectID: inv.ProjectID,
		CreatedAt: now,
	}
}

// InvitationAccepted confirms to the invitee that they joined the workspace.
func InvitationAccepted(userID string, p *Project, ws *Workspace, now time.Time) *Notification {
	return &Notification{
		UserID:      userID,
		Type:        NotificationTypeInvitation,
		Title:       "Project Invitation Accepted",
		Message:     fmt.Sprintf("You’ve joined the project %q", p.Title),
		WorkspaceID: ws.ID,
		ProjectID:   p.ID,
		CreatedAt:   now,
	}
}

// ApplicationReceived tells the project owner somebody applied.
func ApplicationReceived(ownerID string, app *Application, now time.Time) *Notification {
	return &Notification{
		UserID:    ownerID,
		Type:      NotificationTypeApplication,
		Title:     "New Application",
		Message:   fmt.Sprintf("%s applied to %q", app.ApplicantName, app.ProjectTitle),
		ProjectID: app.ProjectID,
		CreatedAt: now,
	}
}

// ApplicationDecided tells the applicant whether they were accepted. ws is
// only set for accepted applications.
func ApplicationDecided(app *Application, ws *Workspace, now time.Time) *Notification {
	n := &Notification{
		UserID:    app.ApplicantID,
		Type:      NotificationTypeApplication,
		ProjectID: app.ProjectID,
		CreatedAt: now,
	}
	if app.Status == ApplicationStatusAccepted {
		n.Title = "Application Accepted"
		n.Message = fmt.Sprintf("You’ve joined the project %q", app.ProjectTitle)
		if ws != nil {
			n.WorkspaceID = ws.ID
		}
	} else {
		n.Title = "Application Rejected"
		n.Message = fmt.Sprintf("Your application to %q was not accepted", app.ProjectTitle)
	}
	return n
}

// ProjectCompleted tells a member the project they worked on is done.
func ProjectCompleted(m *WorkspaceMember, ws *Workspace, now time.Time) *Notification {
	return &Notification{
		UserID:      m.UserID,
		Type:        NotificationTypeProject,
		Title:       "Project Completed",
		Message:     fmt.Sprintf("%q is complete. Your certificate is ready.", ws.ProjectTitle),
		WorkspaceID: ws.ID,
		ProjectID:   ws.ProjectID,
		CreatedAt:   now,
	}
}

// SubmissionReceived tells the workspace owner about a new version.
func SubmissionReceived(ownerID string, ws *Workspace, sub *Submission, version int, now time.Time) *Notification {
	return &Notification{
		UserID:      ownerID,
		Type:        NotificationTypeProject,
		Title:       "New Submission",
		Message:     fmt.Sprintf("%s submitted version %d in %q", sub.UserName, version, ws.ProjectTitle),
		WorkspaceID: ws.ID,
		ProjectID:   ws.ProjectID,
		CreatedAt:   now,
	}
}

// FeedbackReceived tells a submitter their version was reviewed.
func FeedbackReceived(sub *Submission, v *SubmissionVersion, ws *Workspace, now time.Time) *Notification {
	status := FeedbackStatusReviewed
	if v.FeedbackStatus != nil {
		status = *v.FeedbackStatus
	}
	return &Notification{
		UserID:      sub.UserID,
		Type:        NotificationTypeProject,
		Title:       "Submission Feedback",
		Message:     fmt.Sprintf("Version %d of your submission was marked %s", v.Version, status),
		WorkspaceID: ws.ID,
		ProjectID:   ws.ProjectID,
		CreatedAt:   now,
	}
}

package model

import "time"

// Invitation is an organization's request for a user to join a project.
type Invitation struct {
	ID                string           `gorm:"column:id;primaryKey" json:"id"`
	ProjectID         string           `gorm:"column:project_id;not null" json:"projectId"`
	ProjectTitle      string           `gorm:"column:project_title" json:"projectTitle"`
	InvitedUserID     string           `gorm:"column:invited_user_id;not null" json:"invitedUserId"`
	InvitedUserName   string           `gorm:"column:invited_user_name" json:"invitedUserName"`
	InvitedUserRole   Role             `gorm:"column:invited_user_role;type:text" json:"invitedUserRole"`
	InvitedByOrgID    string           `gorm:"column:invited_by_org_id" json:"invitedByOrgId"`
	InvitedByOrgEmail string           `gorm:"column:invited_by_org_email" json:"invitedByOrgEmail"`
	Status            InvitationStatus `gorm:"column:status;type:text;not null" json:"status"`
	CreatedAt         time.Time        `gorm:"column:created_at" json:"createdAt"`
	RespondedAt       *time.Time       `gorm:"column:responded_at" json:"respondedAt,omitempty"`
}

func (Invitation) TableName() string {
	return "invitations"
}

package model

import "time"

// Application is a user's request to join a project.
type Application struct {
	ID             string            `gorm:"column:id;primaryKey" json:"id"`
	ProjectID      string            `gorm:"column:project_id;not null" json:"projectId"`
	ProjectTitle   string            `gorm:"column:project_title" json:"projectTitle"`
	ApplicantID    string            `gorm:"column:applicant_id;not null" json:"applicantId"`
	ApplicantName  string            `gorm:"column:applicant_name" json:"applicantName"`
	ApplicantEmail string            `gorm:"column:applicant_email" json:"applicantEmail"`
	ApplicantRole  Role              `gorm:"column:applicant_role;type:text" json:"applicantRole"`
	Message        string            `gorm:"column:message" json:"message,omitempty"`
	Status         ApplicationStatus `gorm:"column:status;type:text;not null" json:"status"`
	AppliedAt      time.Time         `gorm:"column:applied_at" json:"appliedAt"`
	DecidedAt      *time.Time        `gorm:"column:decided_at" json:"decidedAt,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}

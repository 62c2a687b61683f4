package model

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// Project is an organization-authored project definition.
type Project struct {
	ID                   string         `gorm:"column:id;primaryKey" json:"id"`
	OrganizationID       string         `gorm:"column:organization_id;not null" json:"organizationId"`
	OrganizationName     string         `gorm:"column:organization_name" json:"organizationName"`
	OrganizationEmail    string         `gorm:"column:organization_email" json:"organizationEmail"`
	Title                string         `gorm:"column:title;not null" json:"title"`
	Description          string         `gorm:"column:description" json:"description"`
	Tasks                string         `gorm:"column:tasks" json:"tasks"`
	CauseAreas           pq.StringArray `gorm:"column:cause_areas;type:text[]" json:"causeAreas"`
	CollaborationFormats pq.StringArray `gorm:"column:collaboration_formats;type:text[]" json:"collaborationFormats"`
	Languages            pq.StringArray `gorm:"column:languages;type:text[]" json:"languages"`
	ProblemFocus         pq.StringArray `gorm:"column:problem_focus;type:text[]" json:"problemFocus"`
	OutcomeGoals         pq.StringArray `gorm:"column:outcome_goals;type:text[]" json:"outcomeGoals"`
	ResourcesNeeded      pq.StringArray `gorm:"column:resources_needed;type:text[]" json:"resourcesNeeded"`
	Activities           pq.StringArray `gorm:"column:activities;type:text[]" json:"activities"`
	Links                pq.StringArray `gorm:"column:links;type:text[]" json:"links"`
	Status               ProjectStatus  `gorm:"column:status;type:text;not null" json:"status"`
	CreatedAt            time.Time      `gorm:"column:created_at" json:"createdAt"`
	CompletedAt          *time.Time     `gorm:"column:completed_at" json:"completedAt,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// IsCompleted reports whether the project has been marked completed.
func (p *Project) IsCompleted() bool {
	return p.Status == ProjectStatusCompleted
}

// OwnedBy reports whether the account is the project's organization. Email
// comparison covers seeded rows whose organization id was assigned later.
func (p *Project) OwnedBy(a *Account) bool {
	if a == nil {
		return false
	}
	if p.OrganizationID != "" && p.OrganizationID == a.ID {
		return true
	}
	return p.OrganizationEmail != "" && strings.EqualFold(p.OrganizationEmail, a.Email)
}

package model

import "time"

// Submission groups every version a user submitted in one workspace.
type Submission struct {
	ID          string              `gorm:"column:id;primaryKey" json:"id"`
	WorkspaceID string              `gorm:"column:workspace_id;not null" json:"workspaceId"`
	UserID      string              `gorm:"column:user_id;not null" json:"userId"`
	UserName    string              `gorm:"column:user_name" json:"userName"`
	CreatedAt   time.Time           `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time           `gorm:"column:updated_at" json:"updatedAt"`
	Versions    []SubmissionVersion `gorm:"foreignKey:SubmissionID" json:"versions"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Latest returns the most recent version, or nil for an empty submission.
func (s *Submission) Latest() *SubmissionVersion {
	if len(s.Versions) == 0 {
		return nil
	}
	latest := &s.Versions[0]
	for i := range s.Versions {
		if s.Versions[i].Version > latest.Version {
			latest = &s.Versions[i]
		}
	}
	return latest
}

// SubmissionVersion is one submitted revision and the organization's
// feedback on it.
type SubmissionVersion struct {
	ID              string          `gorm:"column:id;primaryKey" json:"id"`
	SubmissionID    string          `gorm:"column:submission_id;not null" json:"submissionId"`
	Version         int             `gorm:"column:version;not null" json:"version"`
	Title           string          `gorm:"column:title;not null" json:"title"`
	Link            string          `gorm:"column:link;not null" json:"link"`
	Description     string          `gorm:"column:description" json:"description,omitempty"`
	SubmittedAt     time.Time       `gorm:"column:submitted_at" json:"submittedAt"`
	FeedbackComment string          `gorm:"column:feedback_comment" json:"feedbackComment,omitempty"`
	FeedbackStatus  *FeedbackStatus `gorm:"column:feedback_status;type:text" json:"feedbackStatus,omitempty"`
	ReviewedAt      *time.Time      `gorm:"column:reviewed_at" json:"reviewedAt,omitempty"`
	ReviewedBy      string          `gorm:"column:reviewed_by" json:"reviewedBy,omitempty"`
}

func (SubmissionVersion) TableName() string {
	return "submission_versions"
}

package model

import "time"

// Resource is a file, link, video or note shared in a workspace.
type Resource struct {
	ID          string       `gorm:"column:id;primaryKey" json:"id"`
	WorkspaceID string       `gorm:"column:workspace_id;not null" json:"workspaceId"`
	Type        ResourceType `gorm:"column:type;type:text;not null" json:"type"`
	Title       string       `gorm:"column:title;not null" json:"title"`
	Value       string       `gorm:"column:value;not null" json:"value"`
	CreatedBy   string       `gorm:"column:created_by" json:"createdBy"`
	CreatedAt   time.Time    `gorm:"column:created_at" json:"createdAt"`
}

func (Resource) TableName() string {
	return "resources"
}

package model

import "time"

type Task struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	WorkspaceID string    `gorm:"column:workspace_id;not null" json:"workspaceId"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	Completed   bool      `gorm:"column:completed" json:"completed"`
	CreatedBy   string    `gorm:"column:created_by" json:"createdBy"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Task) TableName() string {
	return "tasks"
}

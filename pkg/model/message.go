package model

import "time"

type Message struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	WorkspaceID string    `gorm:"column:workspace_id;not null" json:"workspaceId"`
	AuthorID    string    `gorm:"column:author_id;not null" json:"authorId"`
	AuthorName  string    `gorm:"column:author_name" json:"authorName"`
	AuthorRole  Role      `gorm:"column:author_role;type:text" json:"authorRole"`
	Content     string    `gorm:"column:content;not null" json:"content"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Message) TableName() string {
	return "workspace_messages"
}

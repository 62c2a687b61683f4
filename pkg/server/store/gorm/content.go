package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

var (
	_ store.TasksStore     = (*TasksStore)(nil)
	_ store.ResourcesStore = (*ResourcesStore)(nil)
	_ store.MessagesStore  = (*MessagesStore)(nil)
)

// TasksStore implements store.TasksStore using GORM
type TasksStore struct {
	db *gorm.DB
}

func NewTasksStore(db *gorm.DB) *TasksStore {
	return &TasksStore{db: db}
}

func (s *TasksStore) ListTasks(ctx context.Context, workspaceID string) ([]model.Task, error) {
	var tasks []model.Task
	if err := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TasksStore) CreateTask(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = newID()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(task).Error
}

func (s *TasksStore) SetTaskCompleted(ctx context.Context, workspaceID, taskID string, completed bool) (*model.Task, error) {
	var task model.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND workspace_id = ?", taskID, workspaceID).First(&task).Error; err != nil {
			return notFound(err, store.ErrTaskNotFound)
		}
		task.Completed = completed
		return tx.Model(&model.Task{}).Where("id = ?", taskID).Update("completed", completed).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ResourcesStore implements store.ResourcesStore using GORM
type ResourcesStore struct {
	db *gorm.DB
}

func NewResourcesStore(db *gorm.DB) *ResourcesStore {
	return &ResourcesStore{db: db}
}

func (s *ResourcesStore) ListResources(ctx context.Context, workspaceID string) ([]model.Resource, error) {
	var resources []model.Resource
	if err := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Order("created_at DESC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (s *ResourcesStore) CreateResource(ctx context.Context, resource *model.Resource) error {
	if resource.ID == "" {
		resource.ID = newID()
	}
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(resource).Error
}

// MessagesStore implements store.MessagesStore using GORM
type MessagesStore struct {
	db *gorm.DB
}

func NewMessagesStore(db *gorm.DB) *MessagesStore {
	return &MessagesStore{db: db}
}

func (s *MessagesStore) ListMessages(ctx context.Context, workspaceID string) ([]model.Message, error) {
	var msgs []model.Message
	if err := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Order("created_at ASC").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *MessagesStore) CreateMessage(ctx context.Context, msg *model.Message) error {
	if msg.ID == "" {
		msg.ID = newID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(msg).Error
}

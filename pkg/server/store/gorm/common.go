package gorm

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vidzel/vidzel/pkg/model"
)

func newID() string {
	return uuid.NewString()
}

// notFound maps gorm.ErrRecordNotFound onto the store sentinel
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// likePattern builds an ILIKE substring pattern with wildcards escaped
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(q)) + "%"
}

func roleStrings(roles []model.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = r.String()
	}
	return out
}

func ownedByOrg(column string, org *model.Account) (string, []interface{}) {
	return column + "organization_id = ? OR lower(" + column + "organization_email) = ?",
		[]interface{}{org.ID, model.NormalizeEmail(org.Email)}
}

// ensureWorkspace returns the project's workspace, inserting it when absent.
// Concurrent callers converge on the row that wins the unique project_id.
func ensureWorkspace(tx *gorm.DB, project *model.Project, now time.Time) (*model.Workspace, error) {
	var ws model.Workspace
	err := tx.Where("project_id = ?", project.ID).First(&ws).Error
	if err == nil {
		return &ws, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := model.NewWorkspace(newID(), project, now)
	if project.IsCompleted() {
		created.Status = model.WorkspaceStatusCompleted
		created.CompletedAt = project.CompletedAt
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}},
		DoNothing: true,
	}).Create(created)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Where("project_id = ?", project.ID).First(&ws).Error; err != nil {
			return nil, err
		}
		return &ws, nil
	}
	return created, nil
}

// ensureMember inserts the membership unless it exists. It reports whether a
// row was created.
func ensureMember(tx *gorm.DB, m *model.WorkspaceMember) (bool, error) {
	if m.ID == "" {
		m.ID = newID()
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workspace_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func createNotification(tx *gorm.DB, n *model.Notification) error {
	if n == nil {
		return nil
	}
	if n.ID == "" {
		n.ID = newID()
	}
	return tx.Create(n).Error
}

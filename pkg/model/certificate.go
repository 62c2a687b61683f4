package model

import (
	"errors"
	"time"
)

// ErrCertificateUnavailable is returned when the project is not completed or
// the viewer never joined its workspace.
var ErrCertificateUnavailable = errors.New("certificate not available")

// Certificate is derived from a completed project and the viewer's
// membership. It is never persisted.
type Certificate struct {
	ProjectID        string    `json:"projectId"`
	ProjectTitle     string    `json:"projectTitle"`
	OrganizationName string    `json:"organizationName"`
	WorkspaceID      string    `json:"workspaceId"`
	UserID           string    `json:"userId"`
	UserName         string    `json:"userName"`
	Role             Role      `json:"role"`
	JoinedAt         time.Time `json:"joinedAt"`
	CompletedAt      time.Time `json:"completedAt"`
	IssuedAt         time.Time `json:"issuedAt"`
}

// NewCertificate derives the certificate for a member. The workspace may be
// nil for projects completed before it existed.
func NewCertificate(p *Project, ws *Workspace, m *WorkspaceMember, issuedAt time.Time) (*Certificate, error) {
	if p == nil || m == nil || !p.IsCompleted() {
		return nil, ErrCertificateUnavailable
	}
	if ws != nil && ws.ID != m.WorkspaceID {
		return nil, ErrCertificateUnavailable
	}

	completedAt := issuedAt
	switch {
	case p.CompletedAt != nil:
		completedAt = *p.CompletedAt
	case ws != nil && ws.CompletedAt != nil:
		completedAt = *ws.CompletedAt
	}

	orgName := p.OrganizationName
	if orgName == "" {
		orgName = p.OrganizationEmail
	}

	return &Certificate{
		ProjectID:        p.ID,
		ProjectTitle:     p.Title,
		OrganizationName: orgName,
		WorkspaceID:      m.WorkspaceID,
		UserID:           m.UserID,
		UserName:         m.UserName,
		Role:             m.Role,
		JoinedAt:         m.JoinedAt,
		CompletedAt:      completedAt,
		IssuedAt:         issuedAt,
	}, nil
}

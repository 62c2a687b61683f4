package model

import "strings"

//go:generate go run github.com/dmarkham/enumer -type Role -trimprefix Role -transform snake -json -yaml -sql -output role.gen.go
//go:generate go run github.com/dmarkham/enumer -type ProjectStatus -trimprefix ProjectStatus -transform snake -json -yaml -sql -output project_status.gen.go
//go:generate go run github.com/dmarkham/enumer -type WorkspaceStatus -trimprefix WorkspaceStatus -transform snake -json -yaml -sql -output workspace_status.gen.go
//go:generate go run github.com/dmarkham/enumer -type ApplicationStatus -trimprefix ApplicationStatus -transform snake -json -yaml -sql -output application_status.gen.go
//go:generate go run github.com/dmarkham/enumer -type InvitationStatus -trimprefix InvitationStatus -transform snake -json -yaml -sql -output invitation_status.gen.go
//go:generate go run github.com/dmarkham/enumer -type ResourceType -trimprefix ResourceType -transform snake -json -yaml -sql -output resource_type.gen.go
//go:generate go run github.com/dmarkham/enumer -type FeedbackStatus -trimprefix FeedbackStatus -transform snake -json -yaml -sql -output feedback_status.gen.go
//go:generate go run github.com/dmarkham/enumer -type NotificationType -trimprefix NotificationType -transform snake -json -yaml -sql -output notification_type.gen.go

// Role is the kind of account. The zero value is the signup default.
type Role int

const (
	RoleVolunteer Role = iota
	RoleStudent
	RoleMentor
	RoleOrganization
)

// NormalizeRole maps free-form input onto a Role, falling back to
// RoleVolunteer for anything unrecognised.
func NormalizeRole(s string) Role {
	r, err := RoleString(strings.TrimSpace(s))
	if err != nil {
		return RoleVolunteer
	}
	return r
}

// ParseRoles parses a comma separated role filter, ignoring unknown entries.
func ParseRoles(s string) []Role {
	var roles []Role
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if r, err := RoleString(part); err == nil {
			roles = append(roles, r)
		}
	}
	return roles
}

type ProjectStatus int

const (
	ProjectStatusActive ProjectStatus = iota
	ProjectStatusDraft
	ProjectStatusCompleted
)

type WorkspaceStatus int

const (
	WorkspaceStatusActive WorkspaceStatus = iota
	WorkspaceStatusCompleted
)

type ApplicationStatus int

const (
	ApplicationStatusPending ApplicationStatus = iota
	ApplicationStatusAccepted
	ApplicationStatusRejected
)

// ParseApplicationStatuses parses a comma separated status filter.
func ParseApplicationStatuses(s string) []ApplicationStatus {
	var statuses []ApplicationStatus
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if st, err := ApplicationStatusString(part); err == nil {
			statuses = append(statuses, st)
		}
	}
	return statuses
}

type InvitationStatus int

const (
	InvitationStatusPending InvitationStatus = iota
	InvitationStatusAccepted
	InvitationStatusDeclined
)

type ResourceType int

const (
	ResourceTypeLink ResourceType = iota
	ResourceTypeFile
	ResourceTypeVideo
	ResourceTypeNote
)

type FeedbackStatus int

const (
	FeedbackStatusReviewed FeedbackStatus = iota
	FeedbackStatusApproved
	FeedbackStatusNeedsChanges
)

type NotificationType int

const (
	NotificationTypeInvitation NotificationType = iota
	NotificationTypeApplication
	NotificationTypeProject
)

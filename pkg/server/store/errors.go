package store

import "errors"

// Lookup failures. Endpoints answer these with 404.
var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrMemberNotFound       = errors.New("workspace member not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Conflicts. Endpoints answer these with 409.
var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrAlreadyApplied   = errors.New("already applied")
	ErrAlreadyInvited   = errors.New("user already invited")
	ErrNotPending       = errors.New("not pending")
	ErrAlreadyCompleted = errors.New("already completed")
)

// ErrSubmissionConflict is a concurrent submit by the same user. Also a 409.
var ErrSubmissionConflict = errors.New("submission updated concurrently")

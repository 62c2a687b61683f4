package audit

import "fmt"

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func severity(success bool) Severity {
	if success {
		return SeverityInfo
	}
	return SeverityWarning
}

func withError(msg, errMsg string) string {
	if errMsg != "" {
		return msg + ": " + errMsg
	}
	return msg
}

// SignupEvent represents an account registration
type SignupEvent struct {
	AccountID    string
	Email        string
	Role         string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e SignupEvent) MessageID() string {
	return "signup"
}

func (e SignupEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s signed up as %s", e.Email, e.Role)
	}
	return withError(fmt.Sprintf("%s failed to sign up", e.Email), e.ErrorMessage)
}

func (e SignupEvent) Severity() Severity {
	return severity(e.Success)
}

func (e SignupEvent) Facility() int {
	return FacilityAuth
}

func (e SignupEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Email,
			"role": e.Role,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "signup",
			"result":    result(e.Success),
		},
	}
	if e.AccountID != "" {
		sd[SDIDSubject] = map[string]string{"account": e.AccountID}
	}
	return sd
}

// AuthenticateEvent represents a login attempt
type AuthenticateEvent struct {
	Email             string
	ClientIP          string
	AuthenticatorName string
	Success           bool
	ErrorMessage      string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated with authenticator %s", e.Email, e.AuthenticatorName)
	}
	return withError(fmt.Sprintf("%s failed to authenticate with authenticator %s", e.Email, e.AuthenticatorName), e.ErrorMessage)
}

func (e AuthenticateEvent) Severity() Severity {
	return severity(e.Success)
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"authenticator": e.AuthenticatorName,
			"user":          e.Email,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "authenticate",
			"result":    result(e.Success),
		},
	}
}

// InvitationEvent represents an invitation being sent, accepted or declined
type InvitationEvent struct {
	UserID       string
	ClientIP     string
	InvitationID string
	ProjectID    string
	// Action is one of send, accept or decline
	Action       string
	Success      bool
	ErrorMessage string
}

func (e InvitationEvent) MessageID() string {
	return "invitation"
}

func (e InvitationEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s %s invitation %s for project %s", e.UserID, pastTense(e.Action), e.InvitationID, e.ProjectID)
	}
	return withError(fmt.Sprintf("%s tried to %s invitation for project %s", e.UserID, e.Action, e.ProjectID), e.ErrorMessage)
}

func (e InvitationEvent) Severity() Severity {
	return severity(e.Success)
}

func (e InvitationEvent) Facility() int {
	return FacilityAuth
}

func (e InvitationEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"project": e.ProjectID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Action,
			"result":    result(e.Success),
		},
	}
	if e.InvitationID != "" {
		sd[SDIDSubject]["invitation"] = e.InvitationID
	}
	return sd
}

// ApplicationEvent represents an application being submitted or decided
type ApplicationEvent struct {
	UserID        string
	ClientIP      string
	ApplicationID string
	ProjectID     string
	// Action is one of apply, accept or reject
	Action       string
	Success      bool
	ErrorMessage string
}

func (e ApplicationEvent) MessageID() string {
	return "application"
}

func (e ApplicationEvent) Message() string {
	if e.Success {
		if e.Action == "apply" {
			return fmt.Sprintf("%s applied to project %s", e.UserID, e.ProjectID)
		}
		return fmt.Sprintf("%s %s application %s", e.UserID, pastTense(e.Action), e.ApplicationID)
	}
	return withError(fmt.Sprintf("%s tried to %s application for project %s", e.UserID, e.Action, e.ProjectID), e.ErrorMessage)
}

func (e ApplicationEvent) Severity() Severity {
	return severity(e.Success)
}

func (e ApplicationEvent) Facility() int {
	return FacilityAuth
}

func (e ApplicationEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"project": e.ProjectID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Action,
			"result":    result(e.Success),
		},
	}
	if e.ApplicationID != "" {
		sd[SDIDSubject]["application"] = e.ApplicationID
	}
	return sd
}

// ProjectEvent represents a project being created, completed or deleted
type ProjectEvent struct {
	UserID       string
	ClientIP     string
	ProjectID    string
	Action       string
	Success      bool
	ErrorMessage string
}

func (e ProjectEvent) MessageID() string {
	return "project"
}

func (e ProjectEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s %s project %s", e.UserID, pastTense(e.Action), e.ProjectID)
	}
	return withError(fmt.Sprintf("%s tried to %s project %s", e.UserID, e.Action, e.ProjectID), e.ErrorMessage)
}

func (e ProjectEvent) Severity() Severity {
	return severity(e.Success)
}

func (e ProjectEvent) Facility() int {
	return FacilityUser
}

func (e ProjectEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"project": e.ProjectID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Action,
			"result":    result(e.Success),
		},
	}
}

// UploadEvent represents a file stored through the upload passthrough
type UploadEvent struct {
	UserID       string
	ClientIP     string
	Key          string
	Backend      string
	Size         int
	Success      bool
	ErrorMessage string
}

func (e UploadEvent) MessageID() string {
	return "upload"
}

func (e UploadEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s uploaded %s (%d bytes) to %s", e.UserID, e.Key, e.Size, e.Backend)
	}
	return withError(fmt.Sprintf("%s failed to upload to %s", e.UserID, e.Backend), e.ErrorMessage)
}

func (e UploadEvent) Severity() Severity {
	return severity(e.Success)
}

func (e UploadEvent) Facility() int {
	return FacilityUser
}

func (e UploadEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"key":     e.Key,
			"backend": e.Backend,
			"size":    fmt.Sprint(e.Size),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "upload",
			"result":    result(e.Success),
		},
	}
}

func pastTense(action string) string {
	switch action {
	case "send":
		return "sent"
	case "decline", "complete", "create", "delete":
		return action + "d"
	case "accept", "reject":
		return action + "ed"
	}
	return action
}

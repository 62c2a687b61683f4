// Package audit records security relevant Vidzel operations.
//
// Every event is written as an RFC5424 syslog line to stdout and, when
// AUDIT_DATABASE_URL is set, persisted to the audit_events table of that
// database. Setting VIDZEL_AUDIT_ENABLED=false turns both off. Failures to
// write either are reported to the logger given to SetLogger.
//
// # Event Types
//
//   - SignupEvent: account registration
//   - AuthenticateEvent: login success or failure
//   - InvitationEvent: send, accept and decline
//   - ApplicationEvent: apply, accept and reject
//   - ProjectEvent: create, complete and delete
//   - UploadEvent: files stored through the upload passthrough
//
// # Usage
//
//	audit.Log(audit.AuthenticateEvent{
//	    Email:             email,
//	    ClientIP:          ip,
//	    AuthenticatorName: "authn",
//	    Success:           true,
//	})
package audit

// Package model defines the database models for Vidzel.
//
// Every struct maps to one table created by the migrations in db/migrations.
// Identifiers are UUID strings and all timestamps are stored in UTC.
//
// # Core Models
//
//   - Account: login identity with a role (organization, student, volunteer, mentor)
//   - Profile: public profile of a non-organization account
//   - Project: organization-authored project definition and status
//   - Workspace: per-project collaboration space, plus WorkspaceMember rows
//   - Application: a user's request to join a project
//   - Invitation: an organization's request for a user to join a project
//   - Task, Resource, Message: workspace content
//   - Submission, SubmissionVersion: versioned work with per-version feedback
//   - Notification: per-user inbox entry
//
// Certificates are not stored; see Certificate for the derived view.
//
// # Enums
//
// Status and kind columns are int enums whose String/JSON/YAML/SQL
// methods are generated by enumer (see enums.go).
package model

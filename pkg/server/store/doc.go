// Package store provides storage abstractions for the Vidzel server.
//
// Endpoints depend only on the interfaces defined here, which lets handler
// tests run against testify mocks. The PostgreSQL implementations live in
// the gorm subpackage.
//
// # Available Stores
//
//   - AccountsStore, ProfilesStore: signup, login lookups and profiles
//   - ProjectsStore: authoring, explore lists, completion and deletion
//   - WorkspacesStore: workspace provisioning and membership
//   - ApplicationsStore, InvitationsStore: the two ways into a workspace
//   - TasksStore, ResourcesStore, MessagesStore, SubmissionsStore: workspace content
//   - NotificationsStore: per-user notifications
//
// # Errors
//
// Lookups return one of the Err*NotFound sentinels and conflicting writes
// return ErrEmailTaken, ErrAlreadyApplied, ErrAlreadyInvited, ErrNotPending
// or ErrAlreadyCompleted. Callers test for them with errors.Is:
//
//	project, err := projects.GetProject(ctx, id)
//	if errors.Is(err, store.ErrProjectNotFound) {
//	    // 404
//	}
package store

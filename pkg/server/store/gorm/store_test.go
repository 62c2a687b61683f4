package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vidzel/vidzel/pkg/model"
	"github.com/vidzel/vidzel/pkg/server/store"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 sqlDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger:                 logger.Default.LogMode(logger.Silent),
			SkipDefaultTransaction: true,
		},
	)
	require.NoError(t, err)
	return gormDB, mock
}

func TestAccountsStore_FindAccountByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewAccountsStore(db)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE lower\(email\) = \$1`).
		WithArgs("ada@example.org").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
			AddRow("u1", "Ada", "ada@example.org", "hash", "organization", created))

	account, err := s.FindAccountByEmail(context.Background(), "  Ada@Example.org ")
	require.NoError(t, err)
	assert.Equal(t, "u1", account.ID)
	assert.Equal(t, model.RoleOrganization, account.Role)
	assert.Equal(t, created, account.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountsStore_FindAccountByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewAccountsStore(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.FindAccountByEmail(context.Background(), "ghost@example.org")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestAccountsStore_CreateAccount_EmailTaken(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewAccountsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})
	mock.ExpectRollback()

	account := &model.Account{Name: "Ada", Email: "ADA@example.org", Role: model.RoleStudent}
	err := s.CreateAccount(context.Background(), account, &model.Profile{FullName: "Ada"})
	assert.ErrorIs(t, err, store.ErrEmailTaken)
	assert.Equal(t, "ada@example.org", account.Email)
	assert.NotEmpty(t, account.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountsStore_CreateAccount_WithProfile(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewAccountsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "profiles"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	account := &model.Account{Name: "Ada", Email: "ada@example.org"}
	profile := &model.Profile{FullName: "Ada"}
	require.NoError(t, s.CreateAccount(context.Background(), account, profile))
	assert.Equal(t, account.ID, profile.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountsStore_DeleteAccount_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewAccountsStore(db)

	mock.ExpectExec(`DELETE FROM "accounts"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteAccount(context.Background(), "ghost@example.org")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestApplicationsStore_CreateApplication_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewApplicationsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := s.CreateApplication(context.Background(), &model.Application{
		ProjectID:      "p1",
		ApplicantID:    "u1",
		ApplicantEmail: "ada@example.org",
	}, nil)
	assert.ErrorIs(t, err, store.ErrAlreadyApplied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationsStore_DecideApplication_NotPending(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewApplicationsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "status"}).AddRow("a1", "p1", "accepted"))
	mock.ExpectExec(`UPDATE "applications"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, _, err := s.DecideApplication(context.Background(), "a1", model.ApplicationStatusRejected, time.Now())
	assert.ErrorIs(t, err, store.ErrNotPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationsStore_DecideApplication_CompletedProject(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewApplicationsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "status"}).AddRow("a1", "p1", "pending"))
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).AddRow("p1", "Clean Water", "completed"))
	mock.ExpectRollback()

	_, _, err := s.DecideApplication(context.Background(), "a1", model.ApplicationStatusAccepted, time.Now())
	assert.ErrorIs(t, err, store.ErrAlreadyCompleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationsStore_DecideApplication_InvalidStatus(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewApplicationsStore(db)

	_, _, err := s.DecideApplication(context.Background(), "a1", model.ApplicationStatusPending, time.Now())
	assert.Error(t, err)
}

func TestInvitationsStore_CreateInvitation_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewInvitationsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "invitations"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := s.CreateInvitation(context.Background(), &model.Invitation{ProjectID: "p1", InvitedUserID: "u1"}, nil)
	assert.ErrorIs(t, err, store.ErrAlreadyInvited)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationsStore_DeclineInvitation(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewInvitationsStore(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "invitations"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow("i1", "pending"))
		mock.ExpectExec(`UPDATE "invitations" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, s.DeclineInvitation(context.Background(), "i1", time.Now()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewInvitationsStore(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "invitations"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		assert.ErrorIs(t, s.DeclineInvitation(context.Background(), "nope", time.Now()), store.ErrInvitationNotFound)
	})
}

func TestInvitationsStore_AcceptInvitation_CompletedProject(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewInvitationsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "invitations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "status"}).AddRow("i1", "p1", "pending"))
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).AddRow("p1", "Clean Water", "completed"))
	mock.ExpectRollback()

	_, err := s.AcceptInvitation(context.Background(), "i1", &model.Account{ID: "u1", Name: "Ada"}, time.Now())
	assert.ErrorIs(t, err, store.ErrAlreadyCompleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionsStore_SubmitVersion_Race(t *testing.T) {
	user := &model.Account{ID: "u1", Name: "Ada"}
	v := store.NewVersion{Title: "Report", Link: "https://example.org/r"}

	t.Run("submission row", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewSubmissionsStore(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "submissions"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectExec(`INSERT INTO "submissions"`).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})
		mock.ExpectRollback()

		_, _, err := s.SubmitVersion(context.Background(), "ws-1", user, v, time.Now())
		assert.ErrorIs(t, err, store.ErrSubmissionConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("version number", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewSubmissionsStore(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "submissions"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "user_id"}).AddRow("sub-1", "ws-1", "u1"))
		mock.ExpectQuery(`SELECT COALESCE\(MAX\(version\), 0\) FROM "submission_versions"`).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(1))
		mock.ExpectExec(`INSERT INTO "submission_versions"`).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})
		mock.ExpectRollback()

		_, _, err := s.SubmitVersion(context.Background(), "ws-1", user, v, time.Now())
		assert.ErrorIs(t, err, store.ErrSubmissionConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectsStore_CompleteProject_AlreadyCompleted(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProjectsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).AddRow("p1", "Clean Water", "completed"))
	mock.ExpectRollback()

	_, _, err := s.CompleteProject(context.Background(), "p1", time.Now())
	assert.ErrorIs(t, err, store.ErrAlreadyCompleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectsStore_CompleteProject_WithoutWorkspace(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProjectsStore(db)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).AddRow("p1", "Clean Water", "active"))
	mock.ExpectExec(`UPDATE "projects"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "workspaces"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	project, ws, err := s.CompleteProject(context.Background(), "p1", now)
	require.NoError(t, err)
	assert.Nil(t, ws)
	assert.Equal(t, model.ProjectStatusCompleted, project.Status)
	require.NotNil(t, project.CompletedAt)
	assert.Equal(t, now, *project.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectsStore_CompleteProject_CompletesWorkspace(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProjectsStore(db)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).AddRow("p1", "Clean Water", "active"))
	mock.ExpectExec(`UPDATE "projects"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "workspaces" WHERE project_id = \$1`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "status"}).AddRow("w1", "p1", "active"))
	mock.ExpectExec(`UPDATE "workspaces" SET "completed_at"=\$1,"status"=\$2 WHERE id = \$3`).
		WithArgs(now, "completed", "w1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "workspace_members" WHERE workspace_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"workspace_id", "user_id"}))
	mock.ExpectCommit()

	_, ws, err := s.CompleteProject(context.Background(), "p1", now)
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Equal(t, model.WorkspaceStatusCompleted, ws.Status)
	assert.Equal(t, now, *ws.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectsStore_DeleteProject_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProjectsStore(db)

	mock.ExpectBegin()
	for i := 0; i < 10; i++ {
		mock.ExpectExec(`DELETE FROM`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(`DELETE FROM "projects"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.DeleteProject(context.Background(), "p1")
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsStore_MarkRead(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewNotificationsStore(db)

	mock.ExpectExec(`UPDATE "notifications" SET "is_read"=\$1 WHERE`).
		WithArgs(true, "n1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "notifications"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.MarkRead(context.Background(), "u1", "n1"))
	assert.ErrorIs(t, s.MarkRead(context.Background(), "u2", "n1"), store.ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationsStore_CountUnread(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewNotificationsStore(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := s.CountUnread(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestTasksStore_SetTaskCompleted_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewTasksStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tasks"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := s.SetTaskCompleted(context.Background(), "w1", "t1", true)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestHealthStore_CheckConnectivity(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewHealthStore(db)

	mock.ExpectExec("SELECT 1").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.CheckConnectivity(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%go%", likePattern(" go "))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/engagement"
	"github.com/salescrm/backend/internal/domain/identity"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormContactRepository_FindAllForWorkspace(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormContactRepository(db)

	ws, company := uuid.New(), uuid.New()
	filter := shared.Filter{Search: "ada", Filters: map[string]interface{}{"company_id": company}}

	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE workspace_id = \$1 AND .*LOWER\(first_name\) LIKE \$2 ESCAPE '\\' OR LOWER\(last_name\) LIKE \$3 ESCAPE '\\' OR LOWER\(email\) LIKE \$4 ESCAPE '\\'.* AND company_id = \$5 ORDER BY first_name ASC, last_name ASC`).
		WithArgs(ws, "%ada%", "%ada%", "%ada%", company).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name"}).
			AddRow(uuid.New().String(), "Ada", "Lovelace"))

	contacts, err := repo.FindAllForWorkspace(context.Background(), ws, filter)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ada", contacts[0].FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormContactRepository_TagFilter(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormContactRepository(db)

	ws := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE workspace_id = \$1 AND CAST\(tags AS TEXT\) LIKE \$2 ESCAPE '\\'`).
		WithArgs(ws, `%"vip"%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountForWorkspace(context.Background(), ws, shared.Unpaged().With("tag", "VIP"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormCompanyRepository_DeleteForWorkspace_DetachesContacts(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormCompanyRepository(db)

	ws, id := uuid.New(), uuid.New()

	t.Run("commits both statements", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "contacts" SET "company_id"=\$1,"updated_at"=\$2 WHERE workspace_id = \$3 AND company_id = \$4`).
			WithArgs(nil, sqlmock.AnyArg(), ws, id).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM "companies" WHERE workspace_id = \$1 AND id = \$2`).
			WithArgs(ws, id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.DeleteForWorkspace(context.Background(), ws, id))
	})

	t.Run("rolls back when the company is missing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "contacts" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "companies"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.DeleteForWorkspace(context.Background(), ws, id), shared.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_CountOverdue(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormTaskRepository(db)

	ws := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tasks" WHERE workspace_id = \$1 AND status <> \$2 AND due_date < \$3`).
		WithArgs(ws, engagement.TaskStatusDone, now).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountOverdue(context.Background(), ws, now)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_FindAllForWorkspace_Filters(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormTaskRepository(db)

	ws, assignee := uuid.New(), uuid.New()
	filter := shared.Filter{Filters: map[string]interface{}{"status": "todo", "assignee_id": assignee}}

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE workspace_id = \$1 AND assignee_id = \$2 AND status = \$3 ORDER BY due_date ASC, created_at DESC`).
		WithArgs(ws, assignee, "todo").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).AddRow(uuid.New().String(), "Call back", "todo"))

	tasks, err := repo.FindAllForWorkspace(context.Background(), ws, filter)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, engagement.TaskStatusTodo, tasks[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormActivityRepository_FindBetween(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormActivityRepository(db)

	ws := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	mock.ExpectQuery(`SELECT \* FROM "activities" WHERE workspace_id = \$1 AND occurred_at >= \$2 AND occurred_at < \$3`).
		WithArgs(ws, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type"}).
			AddRow(uuid.New().String(), "call").
			AddRow(uuid.New().String(), "email"))

	activities, err := repo.FindBetween(context.Background(), ws, from, to)
	require.NoError(t, err)
	assert.Len(t, activities, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormEmailLogRepository_FindAllForWorkspace(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormEmailLogRepository(db)

	ws := uuid.New()
	filter := shared.Filter{Page: 1, PageSize: 20, Filters: map[string]interface{}{"status": "failed"}}
	mock.ExpectQuery(`SELECT \* FROM "email_logs" WHERE workspace_id = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT \$3`).
		WithArgs(ws, "failed", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}))

	logs, err := repo.FindAllForWorkspace(context.Background(), ws, filter)
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormWorkspaceRepository_FindByMember(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormWorkspaceRepository(db)

	user := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "workspaces" JOIN workspace_members wm ON wm.workspace_id = workspaces.id WHERE wm.user_id = \$1 ORDER BY workspaces.name ASC`).
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow(uuid.New().String(), "Acme", "acme"))

	workspaces, err := repo.FindByMember(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, workspaces, 1)
	assert.Equal(t, "acme", workspaces[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMemberRepository_CountByRole(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormMemberRepository(db)

	ws := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "workspace_members" WHERE workspace_id = \$1 AND role = \$2`).
		WithArgs(ws, identity.RoleOwner).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountByRole(context.Background(), ws, identity.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormAPIKeyRepository_FindByPrefix(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormAPIKeyRepository(db)

	prefix := "a1b2c3d4"
	mock.ExpectQuery(`SELECT \* FROM "api_keys" WHERE prefix = \$1 ORDER BY "api_keys"."id" LIMIT \$2`).
		WithArgs(prefix, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "prefix", "key_hash"}).
			AddRow(uuid.New().String(), uuid.New().String(), prefix, "$2a$10$hash"))

	key, err := repo.FindByPrefix(context.Background(), prefix)
	require.NoError(t, err)
	assert.Equal(t, prefix, key.Prefix)
	assert.NoError(t, mock.ExpectationsWereMet())
}

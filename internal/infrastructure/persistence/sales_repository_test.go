package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	appsales "github.com/salescrm/backend/internal/application/sales"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormDealRepository_FindByIDForWorkspace(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormDealRepository(db)

	ws, id := uuid.New(), uuid.New()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "workspace_id", "title", "value", "currency", "status"}).
			AddRow(id.String(), ws.String(), "Acme renewal", "1500.00", "USD", "open")
		mock.ExpectQuery(`SELECT \* FROM "deals" WHERE workspace_id = \$1 AND id = \$2 ORDER BY "deals"."id" LIMIT \$3`).
			WithArgs(ws, id, 1).
			WillReturnRows(rows)

		deal, err := repo.FindByIDForWorkspace(context.Background(), ws, id)
		require.NoError(t, err)
		assert.Equal(t, id, deal.ID)
		assert.Equal(t, "Acme renewal", deal.Title)
		assert.True(t, deal.Value.Equal(decimal.NewFromInt(1500)))
	})

	t.Run("not found maps to domain error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "deals" WHERE workspace_id = \$1 AND id = \$2`).
			WithArgs(ws, id, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByIDForWorkspace(context.Background(), ws, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDealRepository_FindAllForWorkspace_FiltersAndPages(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormDealRepository(db)

	ws := uuid.New()
	filter := shared.Filter{
		Page:     2,
		PageSize: 10,
		OrderBy:  "value",
		OrderDir: "desc",
		Search:   "Acme",
		Filters:  map[string]interface{}{"status": "open", "unknown": "ignored"},
	}

	mock.ExpectQuery(`SELECT \* FROM "deals" WHERE workspace_id = \$1 AND \(LOWER\(title\) LIKE \$2 ESCAPE '\\'\) AND status = \$3 ORDER BY value DESC LIMIT \$4 OFFSET \$5`).
		WithArgs(ws, "%acme%", "open", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(uuid.New().String(), "Acme"))

	deals, err := repo.FindAllForWorkspace(context.Background(), ws, filter)
	require.NoError(t, err)
	assert.Len(t, deals, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDealRepository_FindAllForWorkspace_SearchWildcardsAreLiteral(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormDealRepository(db)

	ws := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "deals" WHERE workspace_id = \$1 AND \(LOWER\(title\) LIKE \$2 ESCAPE '\\'\)`).
		WithArgs(ws, `%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	deals, err := repo.FindAllForWorkspace(context.Background(), ws, shared.Filter{Search: "50%_OFF"})
	require.NoError(t, err)
	assert.Empty(t, deals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDealRepository_FindAllForWorkspace_DefaultOrder(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormDealRepository(db)

	ws := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "deals" WHERE workspace_id = \$1 ORDER BY created_at DESC$`).
		WithArgs(ws).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	deals, err := repo.FindAllForWorkspace(context.Background(), ws, shared.Filter{OrderBy: "password"})
	require.NoError(t, err)
	assert.Empty(t, deals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDealRepository_NextPosition(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormDealRepository(db)

	ws, stage := uuid.New(), uuid.New()
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\), -1\) \+ 1 FROM "deals" WHERE workspace_id = \$1 AND stage_id = \$2`).
		WithArgs(ws, stage).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(4))

	next, err := repo.NextPosition(context.Background(), ws, stage)
	require.NoError(t, err)
	assert.Equal(t, 4, next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDealRepository_CountByStage(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormDealRepository(db)

	ws, stage := uuid.New(), uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "deals" WHERE workspace_id = \$1 AND stage_id = \$2`).
		WithArgs(ws, stage).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountByStage(context.Background(), ws, stage)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormDealRepository_UpdateValue(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormDealRepository(db)

	ws, id := uuid.New(), uuid.New()
	value := decimal.NewFromInt(2500)

	mock.ExpectExec(`UPDATE "deals" SET "updated_at"=\$1,"value"=\$2 WHERE workspace_id = \$3 AND id = \$4`).
		WithArgs(sqlmock.AnyArg(), value, ws, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateValue(context.Background(), ws, id, value))

	mock.ExpectExec(`UPDATE "deals" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateValue(context.Background(), ws, id, value), shared.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDealRepository_DeleteForWorkspace(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormDealRepository(db)

	ws, id := uuid.New(), uuid.New()
	mock.ExpectExec(`DELETE FROM "deals" WHERE workspace_id = \$1 AND id = \$2`).
		WithArgs(ws, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteForWorkspace(context.Background(), ws, id))

	mock.ExpectExec(`DELETE FROM "deals"`).
		WithArgs(ws, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteForWorkspace(context.Background(), ws, id), shared.ErrNotFound)
}

func TestGormPipelineRepository_FindByIDForWorkspace_PreloadsOrderedStages(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPipelineRepository(db)

	ws, id := uuid.New(), uuid.New()
	lead, won := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "pipelines" WHERE workspace_id = \$1 AND id = \$2 ORDER BY "pipelines"."id" LIMIT \$3`).
		WithArgs(ws, id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "name", "is_default"}).
			AddRow(id.String(), ws.String(), "Sales", true))
	mock.ExpectQuery(`SELECT \* FROM "pipeline_stages" WHERE "pipeline_stages"."pipeline_id" = \$1 ORDER BY position ASC`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "pipeline_id", "name", "position", "is_won"}).
			AddRow(lead.String(), id.String(), "Lead", 0, false).
			AddRow(won.String(), id.String(), "Won", 1, true))

	p, err := repo.FindByIDForWorkspace(context.Background(), ws, id)
	require.NoError(t, err)
	assert.True(t, p.IsDefault)
	require.Len(t, p.Stages, 2)
	assert.Equal(t, lead, p.Stages[0].ID)
	assert.True(t, p.Stages[1].IsWon)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPipelineRepository_ClearDefault(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPipelineRepository(db)

	ws := uuid.New()
	mock.ExpectExec(`UPDATE "pipelines" SET "is_default"=\$1,"updated_at"=\$2 WHERE workspace_id = \$3 AND is_default = \$4`).
		WithArgs(false, sqlmock.AnyArg(), ws, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ClearDefault(context.Background(), ws))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStageRepository_UpdatePosition(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormStageRepository(db)

	ws, id := uuid.New(), uuid.New()
	mock.ExpectExec(`UPDATE "pipeline_stages" SET "position"=\$1,"updated_at"=\$2 WHERE workspace_id = \$3 AND id = \$4`).
		WithArgs(3, sqlmock.AnyArg(), ws, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdatePosition(context.Background(), ws, id, 3))

	mock.ExpectExec(`UPDATE "pipeline_stages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdatePosition(context.Background(), ws, id, 3), shared.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	scope := NewGormTransactionScope(db)

	ws, id := uuid.New(), uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "pipeline_stages" SET "position"=\$1`).
		WithArgs(0, sqlmock.AnyArg(), ws, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := scope.Execute(context.Background(), func(repos appsales.TransactionalRepositories) error {
		return repos.StageRepo().UpdatePosition(context.Background(), ws, id, 0)
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaigoApp/kaigo-app/internal/domain"
)

// Postgres 方言走 sqlmock：验证 $n 占位符和 SQLSTATE 分类

func setupMockStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Store) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewStore(db, DialectPostgres)
}

func TestPostgresToggle_AddsWhenAbsent(t *testing.T) {
	db, mock, st := setupMockStore(t)
	defer db.Close()

	mock.ExpectQuery(`DELETE FROM handover_reactions\s+WHERE handover_id = \$1 AND person_name = \$2 AND mark_type = \$3`).
		WithArgs(int64(7), "Sato", "like").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO handover_reactions .*VALUES \(\$1, \$2, \$3, \$4\)`).
		WithArgs(int64(7), "Sato", "like", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	res, err := st.Acknowledgements.Toggle(context.Background(), 7, "Sato", "like", baseTime)
	require.NoError(t, err)
	assert.Equal(t, domain.ToggleAdded, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresToggle_UniqueConflictBecomesRemove(t *testing.T) {
	db, mock, st := setupMockStore(t)
	defer db.Close()

	mock.ExpectQuery(`DELETE FROM handover_reactions`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO handover_reactions`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectQuery(`DELETE FROM handover_reactions`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	res, err := st.Acknowledgements.Toggle(context.Background(), 7, "Sato", "like", baseTime)
	require.NoError(t, err)
	assert.Equal(t, domain.ToggleRemoved, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresToggle_LockTimeoutIsRetryable(t *testing.T) {
	db, mock, st := setupMockStore(t)
	defer db.Close()

	mock.ExpectQuery(`DELETE FROM handover_reactions`).
		WillReturnError(&pq.Error{Code: "55P03", Message: "canceling statement due to lock timeout"})

	_, err := st.Acknowledgements.Toggle(context.Background(), 7, "Sato", "like", baseTime)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("55P03"), pqErr.Code)
}

func TestPostgresToggle_MissingHandoverIsNotFound(t *testing.T) {
	db, mock, st := setupMockStore(t)
	defer db.Close()

	mock.ExpectQuery(`DELETE FROM handover_reactions`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO handover_reactions`).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := st.Acknowledgements.Toggle(context.Background(), 404, "Sato", "like", baseTime)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresInTx_CommitSerializationFailure(t *testing.T) {
	db, mock, st := setupMockStore(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})

	err := st.InTx(context.Background(), func(context.Context, *Repositories) error { return nil })
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInTx_FnErrorRollsBackUnchanged(t *testing.T) {
	db, mock, st := setupMockStore(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := st.InTx(context.Background(), func(context.Context, *Repositories) error { return boom })
	assert.Same(t, boom, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

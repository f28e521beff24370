package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshotRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestPostgresSnapshotRepositoryEnsureSchema(t *testing.T) {
	db, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	repo := NewPostgresSnapshotRepository(db)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS snapshots").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotRepositoryLoad(t *testing.T) {
	db, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	repo := NewPostgresSnapshotRepository(db)
	rows := sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`{"version":2}`))
	mock.ExpectQuery("SELECT payload FROM snapshots").
		WithArgs("records").
		WillReturnRows(rows)

	data, err := repo.Load(context.Background(), "records")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":2}`, string(data))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotRepositoryLoadMissingKey(t *testing.T) {
	db, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	repo := NewPostgresSnapshotRepository(db)
	mock.ExpectQuery("SELECT payload FROM snapshots").
		WithArgs("records").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	data, err := repo.Load(context.Background(), "records")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestPostgresSnapshotRepositorySave(t *testing.T) {
	db, mock, cleanup := newSnapshotRepoMock(t)
	defer cleanup()

	repo := NewPostgresSnapshotRepository(db)
	mock.ExpectExec("INSERT INTO snapshots").
		WithArgs("records", []byte(`{}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Save(context.Background(), "records", []byte(`{}`)))
	require.NoError(t, mock.ExpectationsWereMet())
}

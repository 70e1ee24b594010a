package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func tokenRows(id uint, name, token, providerID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "token", "provider_user_id"}).
		AddRow(id, name, token, providerID)
}

func TestFindLiveMatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "auth_tokens" WHERE name = \$1 AND token = \$2`).
		WithArgs("user@example.com", "tok-1", 1).
		WillReturnRows(tokenRows(7, "user@example.com", "tok-1", "idp-7"))

	got, err := repo.FindLive("user@example.com", "tok-1")
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)
	assert.Equal(t, "tok-1", got.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindLiveStaleToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "auth_tokens" WHERE name = \$1 AND token = \$2`).
		WithArgs("user@example.com", "old-token", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "token", "provider_user_id"}))

	_, err := repo.FindLive("user@example.com", "old-token")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCreatesWhenMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "auth_tokens" WHERE name = \$1`).
		WithArgs("new@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "token", "provider_user_id"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "auth_tokens"`).
		WithArgs("new@example.com", "tok-new", "idp-9").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Upsert("new@example.com", "tok-new", "idp-9")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertOverwritesExisting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "auth_tokens" WHERE name = \$1`).
		WithArgs("user@example.com", 1).
		WillReturnRows(tokenRows(7, "user@example.com", "old-token", "idp-7"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "auth_tokens"`).
		WithArgs("user@example.com", "fresh-token", "idp-7", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Upsert("user@example.com", "fresh-token", "idp-7")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "auth_tokens" WHERE name = \$1`).
		WithArgs("user@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteByName("user@example.com")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

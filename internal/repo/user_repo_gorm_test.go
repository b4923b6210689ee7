package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func userColumns() []string {
	return []string{"id", "name", "email", "password", "phone", "user_type", "avatar_url", "is_active", "soft_delete", "created_at", "updated_at"}
}

func TestFindByEmail_ScopesOutSoftDeleted(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 AND soft_delete = \$2`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("u-1", "Nemo", "nemo@mnavy.com", "hash", "123", "CAPTAIN", "", true, false, now, now))

	u, err := r.FindByEmail(context.Background(), "nemo@mnavy.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "CAPTAIN", u.UserType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_NotFoundIsNilNil(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	u, err := r.FindByEmail(context.Background(), "ghost@mnavy.com")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestEmailTaken(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1 AND soft_delete = \$2 AND id <> \$3`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := r.EmailTaken(context.Background(), "nemo@mnavy.com", "u-2")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestToggleSoftDelete_ReturnsRestoredFlag(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	// 当前 soft_delete=true，切换后即恢复
	mock.ExpectQuery(`SELECT "id","soft_delete" FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "soft_delete"}).AddRow("u-1", true))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	restored, err := r.ToggleSoftDelete(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, restored)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleSoftDelete_MissingRecord(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectQuery(`SELECT "id","soft_delete" FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "soft_delete"}))

	_, err := r.ToggleSoftDelete(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockFollowRepo(t *testing.T) (FollowRepo, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return NewFollowRepo(db), mock
}

func TestFollowRepo_GetFollow(t *testing.T) {
	columns := []string{"id", "author_id", "user_id", "created_at"}
	tests := []struct {
		name      string
		rows      *sqlmock.Rows
		queryErr  error
		wantFound bool
		wantErr   bool
	}{
		{
			name:      "following",
			rows:      sqlmock.NewRows(columns).AddRow(1, 2, 3, time.Now()),
			wantFound: true,
		},
		{
			name: "not following",
			rows: sqlmock.NewRows(columns),
		},
		{
			name:     "database error",
			queryErr: errors.New("connection reset"),
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockFollowRepo(t)
			expect := mock.ExpectQuery(`SELECT \* FROM "follows" WHERE user_id = \$1 AND author_id = \$2`)
			if tt.queryErr != nil {
				expect.WillReturnError(tt.queryErr)
			} else {
				expect.WillReturnRows(tt.rows)
			}

			follow, err := repo.GetFollow(context.Background(), 3, 2)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantFound, follow != nil)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFollowRepo_DeleteFollow(t *testing.T) {
	repo, mock := newMockFollowRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "follows" WHERE user_id = \$1 AND author_id = \$2`).
		WithArgs(3, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.DeleteFollow(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepo_Counts(t *testing.T) {
	repo, mock := newMockFollowRepo(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "follows" WHERE author_id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "follows" WHERE user_id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	followers, err := repo.GetFollowerCount(context.Background(), 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, followers)

	following, err := repo.GetFollowingCount(context.Background(), 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, following)
	assert.NoError(t, mock.ExpectationsWereMet())
}

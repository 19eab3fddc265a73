package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"
	"yatube/internal/model"
	"yatube/internal/pkg/database"
	"yatube/internal/pkg/security"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestPassword 所有测试用户的密码
const TestPassword = "s3cret-pass"

var dbSeq atomic.Int64

// NewTestDB 每个测试一个独立的内存 SQLite 库，已迁移并开启外键
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:yatube_test_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库随最后一个连接关闭而消失
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	hash, err := security.HashPassword(TestPassword)
	require.NoError(t, err)

	user := &model.User{Username: username, Password: hash}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateStaff(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := CreateUser(t, db, username)
	require.NoError(t, db.Model(user).Update("is_staff", true).Error)
	user.IsStaff = true
	return user
}

func CreateGroup(t *testing.T, db *gorm.DB, slug string) *model.Group {
	t.Helper()
	group := &model.Group{Title: "Group " + slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, db.Create(group).Error)
	return group
}

func CreatePost(t *testing.T, db *gorm.DB, author *model.User, group *model.Group, text string) *model.Post {
	t.Helper()
	post := &model.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, db.Omit("Author", "Group").Create(post).Error)
	return post
}

func CreateFollow(t *testing.T, db *gorm.DB, user, author *model.User) {
	t.Helper()
	require.NoError(t, db.Omit("Author", "User").Create(&model.Follow{UserID: user.ID, AuthorID: author.ID}).Error)
}

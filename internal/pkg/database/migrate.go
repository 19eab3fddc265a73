package database

import (
	"fmt"
	"yatube/internal/model"

	"gorm.io/gorm"
)

// Migrate 建表，外键级联与唯一约束由模型 tag 声明
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

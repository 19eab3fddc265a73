package model

import "time"

// Follow user 关注 author，(author, user) 唯一；不限制 author == user
type Follow struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	AuthorID  uint64    `gorm:"not null;uniqueIndex:idx_follows_author_user,priority:1" json:"author_id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_follows_author_user,priority:2;index:idx_follows_user_id" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Author User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}

package model

import (
	"time"
)

type Comment struct {
	ID       uint64    `gorm:"primaryKey" json:"id"`
	PostID   *uint64   `gorm:"index:idx_comments_post_id" json:"post_id"` // schema 允许为空，业务上总会赋值
	AuthorID uint64    `gorm:"not null;index:idx_comments_author_id" json:"author_id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Created  time.Time `gorm:"autoCreateTime;not null" json:"created"`

	Post   *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Author User  `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" json:"author"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c Comment) String() string {
	return c.Text
}

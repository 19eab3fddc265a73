package model

import (
	"time"
)

// PostTitleLength String() 截取的字符数
const PostTitleLength = 15

type Post struct {
	ID       uint64    `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"autoCreateTime;not null;index:idx_posts_pub_date" json:"pub_date"`
	GroupID  *uint64   `gorm:"index:idx_posts_group_id" json:"group_id"`
	AuthorID uint64    `gorm:"not null;index:idx_posts_author_id" json:"author_id"`
	Image    string    `gorm:"type:varchar(255);not null;default:''" json:"image"` // MinIO object key，空串表示无图

	// 关联关系
	Group  *Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE" json:"group,omitempty"`
	Author User   `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" json:"author"`
}

func (Post) TableName() string {
	return "posts"
}

func (p Post) String() string {
	runes := []rune(p.Text)
	if len(runes) <= PostTitleLength {
		return p.Text
	}
	return string(runes[:PostTitleLength])
}

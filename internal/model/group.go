package model

type Group struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(200);not null;index:idx_post_groups_title" json:"title"`
	Slug        string `gorm:"type:varchar(50);not null;uniqueIndex:idx_post_groups_slug" json:"slug"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (Group) TableName() string {
	return "post_groups"
}

func (g Group) String() string {
	return g.Title
}

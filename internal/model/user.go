package model

import (
	"time"
)

type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(150);not null;uniqueIndex:idx_users_username" json:"username"`
	Email     string    `gorm:"type:varchar(254);not null;default:''" json:"email"`
	FirstName string    `gorm:"type:varchar(150);not null;default:''" json:"first_name"`
	LastName  string    `gorm:"type:varchar(150);not null;default:''" json:"last_name"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// FullName 优先展示姓名，缺省时退回用户名
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

func (u User) String() string {
	return u.Username
}

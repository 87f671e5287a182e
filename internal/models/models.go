package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FirstName    string `gorm:"column:first_name" json:"first_name"`
	LastName     string `gorm:"column:last_name" json:"last_name"`
	Username     string `gorm:"column:username;uniqueIndex" json:"username"`
	Email        string `gorm:"column:email;uniqueIndex" json:"email"`
	URL          string `gorm:"column:url" json:"url"`
	Age          int    `gorm:"column:age" json:"age"`
	Bio          string `gorm:"column:bio" json:"bio"`
	PasswordHash string `gorm:"column:password_hash" json:"-"`

	Posts []Post `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type Post struct {
	PostID uint   `gorm:"primaryKey;column:post_id" json:"post_id"`
	UserID uint   `gorm:"column:user_id;index" json:"user_id"`
	Tweet  string `gorm:"column:tweet" json:"tweet"`

	// DatePosted is assigned by gorm at insert (autoCreateTime) and never updated.
	DatePosted time.Time `gorm:"column:date_posted;autoCreateTime" json:"date_posted"`
}

func (Post) TableName() string {
	return "posts"
}

type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email" json:"email"`
	Message   string    `gorm:"column:message" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

// Product is a display-only catalog entry. The demo catalog is hardcoded and
// products are never persisted.
type Product struct {
	ID    int
	Title string
	Price string
	Desc  string
}

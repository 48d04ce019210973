package models

import "time"

// User is an account that can submit posts, comment and upvote
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:31;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Author is the public projection of a user embedded in posts and comments
type Author struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// CurrentUser is the identity resolved for a request
type CurrentUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// AuthRequest is the signup and login form
type AuthRequest struct {
	Username string `form:"username" json:"username" binding:"required,min=3,max=31,username"`
	Password string `form:"password" json:"password" binding:"required,min=3,max=255"`
}

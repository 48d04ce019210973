package models

import "time"

// Post represents a submitted story. Points and CommentCount are denormalized
// counters maintained by the upvote ledger and the comment tree.
type Post struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;index"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title        string    `gorm:"size:255;not null"`
	URL          *string   `gorm:"index"`
	Content      *string   `gorm:"type:text"`
	Points       int       `gorm:"not null;default:0;index"`
	CommentCount int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"index"`
}

// Comment represents a comment on a post with support for nested replies.
// Depth is 0 for root comments and CommentCount counts direct replies only.
type Comment struct {
	ID              uint      `gorm:"primaryKey"`
	PostID          uint      `gorm:"not null;index"`
	Post            Post      `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ParentCommentID *uint     `gorm:"index"`
	Parent          *Comment  `gorm:"foreignKey:ParentCommentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID          uint      `gorm:"not null;index"`
	User            User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Content         string    `gorm:"type:text;not null"`
	Points          int       `gorm:"not null;default:0"`
	Depth           int       `gorm:"not null;default:0"`
	CommentCount    int       `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"index"`
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Title   string `form:"title" json:"title" binding:"required,min=3,max=255"`
	URL     string `form:"url" json:"url" binding:"omitempty,url"`
	Content string `form:"content" json:"content" binding:"omitempty,max=4096"`
}

// CreateCommentRequest represents the request body for creating a comment or reply
type CreateCommentRequest struct {
	Content string `form:"content" json:"content" binding:"required,min=3,max=4096"`
}

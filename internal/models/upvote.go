package models

import "time"

// PostUpvote records that a user upvoted a post.
// The (PostID, UserID) unique index is what limits a user to one vote per post.
type PostUpvote struct {
	ID        uint `gorm:"primaryKey"`
	PostID    uint `gorm:"not null;uniqueIndex:idx_post_upvote"`
	Post      Post `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_post_upvote;index"`
	User      User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
}

// CommentUpvote records that a user upvoted a comment
type CommentUpvote struct {
	ID        uint    `gorm:"primaryKey"`
	CommentID uint    `gorm:"not null;uniqueIndex:idx_comment_upvote"`
	Comment   Comment `gorm:"foreignKey:CommentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint    `gorm:"not null;uniqueIndex:idx_comment_upvote;index"`
	User      User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
}

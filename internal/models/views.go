package models

import "time"

// PostView is the JSON record returned for a post
type PostView struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	URL          *string   `json:"url"`
	Content      *string   `json:"content,omitempty"`
	ContentHTML  string    `json:"contentHtml,omitempty"`
	Points       int       `json:"points"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	Author       Author    `json:"author"`
	IsUpvoted    bool      `json:"isUpvoted"`
}

// UpvoteRef identifies the viewer's own upvote on a comment
type UpvoteRef struct {
	UserID uint `json:"userId"`
}

// CommentView is the JSON record returned for a comment
type CommentView struct {
	ID              uint          `json:"id"`
	UserID          uint          `json:"userId"`
	PostID          uint          `json:"postId"`
	ParentCommentID *uint         `json:"parentCommentId"`
	Content         string        `json:"content"`
	Points          int           `json:"points"`
	Depth           int           `json:"depth"`
	CommentCount    int           `json:"commentCount"`
	CreatedAt       time.Time     `json:"createdAt"`
	Author          Author        `json:"author"`
	IsUpvoted       bool          `json:"isUpvoted"`
	CommentUpvotes  []UpvoteRef   `json:"commentUpvotes"`
	ChildComments   []CommentView `json:"childComments"`
}

// NewCommentView converts a stored comment. The author must already be loaded.
func NewCommentView(c *Comment) CommentView {
	return CommentView{
		ID:              c.ID,
		UserID:          c.UserID,
		PostID:          c.PostID,
		ParentCommentID: c.ParentCommentID,
		Content:         c.Content,
		Points:          c.Points,
		Depth:           c.Depth,
		CommentCount:    c.CommentCount,
		CreatedAt:       c.CreatedAt,
		Author:          Author{ID: c.User.ID, Username: c.User.Username},
		CommentUpvotes:  []UpvoteRef{},
		ChildComments:   []CommentView{},
	}
}

// UpvoteResult is the outcome of toggling an upvote
type UpvoteResult struct {
	Points    int  `json:"count"`
	IsUpvoted bool `json:"isUpvoted"`
}

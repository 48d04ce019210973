package store

import (
	"context"
	"strings"

	"newsboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewComment is the input for creating a comment. ParentCommentID is nil
// for a root comment. For replies PostID may be zero, in which case the
// parent's post is used.
type NewComment struct {
	PostID          uint
	ParentCommentID *uint
	AuthorID        uint
	Content         string
}

// CommentQuery describes a listing of direct children
type CommentQuery struct {
	PageRequest
	IncludeChildren bool
	ViewerID        *uint
}

// CommentStore keeps the per-post comment forest
type CommentStore struct {
	db *gorm.DB
}

// NewCommentStore creates a new CommentStore
func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db}
}

// CreateComment inserts a comment and bumps the parent's and the post's
// comment counters in the same transaction.
func (s *CommentStore) CreateComment(ctx context.Context, in NewComment) (*models.CommentView, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, invalid("content", "Content is required.")
	}

	var created models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment := models.Comment{
			PostID:  in.PostID,
			UserID:  in.AuthorID,
			Content: content,
		}

		if in.ParentCommentID != nil {
			var parent models.Comment
			if err := tx.Select("id", "post_id", "depth").Take(&parent, *in.ParentCommentID).Error; err != nil {
				if isRecordNotFound(err) {
					return notFound("Comment not found.")
				}
				return err
			}
			if in.PostID != 0 && parent.PostID != in.PostID {
				return invalid("parentCommentId", "Parent comment does not belong to this post.")
			}
			comment.PostID = parent.PostID
			comment.ParentCommentID = &parent.ID
			comment.Depth = parent.Depth + 1

			if err := tx.Model(&models.Comment{}).
				Where("id = ?", parent.ID).
				UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("Post not found.")
		}

		if err := tx.Omit(clause.Associations).Create(&comment).Error; err != nil {
			return err
		}
		return tx.Preload("User").Take(&created, comment.ID).Error
	})
	if err != nil {
		return nil, err
	}

	view := models.NewCommentView(&created)
	return &view, nil
}

// ListPostComments returns one page of the root comments of a post
func (s *CommentStore) ListPostComments(ctx context.Context, postID uint, q CommentQuery) (*Page[models.CommentView], error) {
	db := s.db.WithContext(ctx)

	var n int64
	if err := db.Model(&models.Post{}).Where("id = ?", postID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, notFound("Post not found.")
	}

	return s.list(db, q, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("comments.post_id = ? AND comments.parent_comment_id IS NULL", postID)
	})
}

// ListCommentReplies returns one page of the direct replies to a comment
func (s *CommentStore) ListCommentReplies(ctx context.Context, commentID uint, q CommentQuery) (*Page[models.CommentView], error) {
	db := s.db.WithContext(ctx)

	var n int64
	if err := db.Model(&models.Comment{}).Where("id = ?", commentID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, notFound("Comment not found.")
	}

	return s.list(db, q, childrenOf(commentID))
}

func (s *CommentStore) list(db *gorm.DB, q CommentQuery, scope func(*gorm.DB) *gorm.DB) (*Page[models.CommentView], error) {
	q.PageRequest = q.normalize()

	var total int64
	if err := db.Model(&models.Comment{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, err
	}

	comments, err := s.find(db, q.PageRequest, scope, q.Limit, q.offset())
	if err != nil {
		return nil, err
	}

	items := make([]models.CommentView, len(comments))
	for i := range comments {
		items[i] = models.NewCommentView(&comments[i])
	}

	if q.IncludeChildren {
		for i := range items {
			if items[i].CommentCount == 0 {
				continue
			}
			children, err := s.find(db, q.PageRequest, childrenOf(items[i].ID), ChildPreviewLimit, 0)
			if err != nil {
				return nil, err
			}
			for j := range children {
				items[i].ChildComments = append(items[i].ChildComments, models.NewCommentView(&children[j]))
			}
		}
	}

	if q.ViewerID != nil {
		if err := s.annotate(db, *q.ViewerID, items); err != nil {
			return nil, err
		}
	}

	return &Page[models.CommentView]{
		Items:      items,
		Page:       q.Page,
		TotalPages: totalPages(total, q.Limit),
		Total:      total,
	}, nil
}

func (s *CommentStore) find(db *gorm.DB, p PageRequest, scope func(*gorm.DB) *gorm.DB, limit, offset int) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.Scopes(scope).
		Preload("User", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "username") }).
		Order(p.orderClause("comments")).
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

// annotate marks the comments (and their previewed children) that viewerID
// has upvoted, using a single lookup restricted to that viewer.
func (s *CommentStore) annotate(db *gorm.DB, viewerID uint, items []models.CommentView) error {
	var ids []uint
	for _, item := range items {
		ids = append(ids, item.ID)
		for _, child := range item.ChildComments {
			ids = append(ids, child.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var upvoted []uint
	if err := db.Model(&models.CommentUpvote{}).
		Where("user_id = ? AND comment_id IN ?", viewerID, ids).
		Pluck("comment_id", &upvoted).Error; err != nil {
		return err
	}
	set := make(map[uint]bool, len(upvoted))
	for _, id := range upvoted {
		set[id] = true
	}

	mark := func(v *models.CommentView) {
		if set[v.ID] {
			v.IsUpvoted = true
			v.CommentUpvotes = []models.UpvoteRef{{UserID: viewerID}}
		}
	}
	for i := range items {
		mark(&items[i])
		for j := range items[i].ChildComments {
			mark(&items[i].ChildComments[j])
		}
	}
	return nil
}

func childrenOf(commentID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("comments.parent_comment_id = ?", commentID)
	}
}

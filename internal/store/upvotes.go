package store

import (
	"context"
	"errors"

	"newsboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpvoteLedger records one upvote per (user, target) and keeps the target's
// points in step with it
type UpvoteLedger struct {
	db *gorm.DB
}

// NewUpvoteLedger creates a new UpvoteLedger
func NewUpvoteLedger(db *gorm.DB) *UpvoteLedger {
	return &UpvoteLedger{db: db}
}

// upvoteTarget describes the tables behind one kind of votable entity
type upvoteTarget struct {
	target    interface{} // model holding the points column
	upvote    interface{} // model of the upvote records
	column    string      // upvote column referencing the target
	missing   string
	newUpvote func() interface{}
}

// TogglePostUpvote flips userID's upvote on a post
func (l *UpvoteLedger) TogglePostUpvote(ctx context.Context, postID, userID uint) (models.UpvoteResult, error) {
	return l.toggle(ctx, upvoteTarget{
		target:  &models.Post{},
		upvote:  &models.PostUpvote{},
		column:  "post_id",
		missing: "Post not found.",
		newUpvote: func() interface{} {
			return &models.PostUpvote{PostID: postID, UserID: userID}
		},
	}, postID, userID)
}

// ToggleCommentUpvote flips userID's upvote on a comment
func (l *UpvoteLedger) ToggleCommentUpvote(ctx context.Context, commentID, userID uint) (models.UpvoteResult, error) {
	return l.toggle(ctx, upvoteTarget{
		target:  &models.Comment{},
		upvote:  &models.CommentUpvote{},
		column:  "comment_id",
		missing: "Comment not found.",
		newUpvote: func() interface{} {
			return &models.CommentUpvote{CommentID: commentID, UserID: userID}
		},
	}, commentID, userID)
}

// toggle deletes the existing upvote or inserts a new one, adjusting points
// by a relative expression so concurrent toggles cannot lose updates.
// Two racing inserts are stopped by the unique index and surface as ErrConflict.
func (l *UpvoteLedger) toggle(ctx context.Context, t upvoteTarget, targetID, userID uint) (models.UpvoteResult, error) {
	var result models.UpvoteResult

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []uint
		if err := tx.Model(t.upvote).
			Where(t.column+" = ? AND user_id = ?", targetID, userID).
			Limit(1).
			Pluck("id", &existing).Error; err != nil {
			return err
		}

		delta := 1
		if len(existing) > 0 {
			delta = -1
		}

		res := tx.Model(t.target).
			Where("id = ?", targetID).
			UpdateColumn("points", gorm.Expr("points + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound(t.missing)
		}

		if delta < 0 {
			del := tx.Where("id = ?", existing[0]).Delete(t.upvote)
			if del.Error != nil {
				return del.Error
			}
			if del.RowsAffected == 0 {
				return conflict("Upvote changed concurrently, please retry.")
			}
		} else if err := tx.Omit(clause.Associations).Create(t.newUpvote()).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("Upvote changed concurrently, please retry.")
			}
			return err
		}

		var row struct{ Points int }
		if err := tx.Model(t.target).Select("points").Where("id = ?", targetID).Take(&row).Error; err != nil {
			return err
		}
		result = models.UpvoteResult{Points: row.Points, IsUpvoted: delta > 0}
		return nil
	})
	if err != nil {
		return models.UpvoteResult{}, err
	}
	return result, nil
}

package handlers

import (
	"net/http"

	"newsboard/internal/metrics"
	"newsboard/internal/middleware"
	"newsboard/internal/models"
	"newsboard/internal/store"

	"github.com/gin-gonic/gin"
)

// CommentHandler handles comment-related requests
type CommentHandler struct {
	comments *store.CommentStore
	ledger   *store.UpvoteLedger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *store.CommentStore, ledger *store.UpvoteLedger) *CommentHandler {
	return &CommentHandler{comments: comments, ledger: ledger}
}

// CommentUpvoted is the reply to a comment upvote toggle
type CommentUpvoted struct {
	Count          int                `json:"count"`
	CommentUpvotes []models.UpvoteRef `json:"commentUpvotes"`
	IsUpvoted      bool               `json:"isUpvoted"`
}

// Reply adds a comment under an existing comment
func (h *CommentHandler) Reply(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.CreateCommentRequest
	if !bind(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	comment, err := h.comments.CreateComment(c.Request.Context(), store.NewComment{
		ParentCommentID: &id,
		AuthorID:        user.ID,
		Content:         req.Content,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	metrics.CommentCreated(true)
	respond(c, http.StatusOK, "Comment created", comment)
}

// Upvote toggles the caller's upvote on a comment
func (h *CommentHandler) Upvote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	result, err := h.ledger.ToggleCommentUpvote(c.Request.Context(), id, user.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	upvotes := []models.UpvoteRef{}
	if result.IsUpvoted {
		upvotes = append(upvotes, models.UpvoteRef{UserID: user.ID})
	}
	metrics.UpvoteToggled("comment", result.IsUpvoted)
	respond(c, http.StatusOK, "Comment updated successfully", CommentUpvoted{
		Count:          result.Points,
		CommentUpvotes: upvotes,
		IsUpvoted:      result.IsUpvoted,
	})
}

// GetReplies returns one page of a comment's direct replies
func (h *CommentHandler) GetReplies(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var q commentListQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.comments.ListCommentReplies(c.Request.Context(), id, store.CommentQuery{
		PageRequest:     q.pageRequest(),
		IncludeChildren: q.IncludeChildren,
		ViewerID:        middleware.CurrentUserID(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	respondPage(c, "Comments fetched.", page)
}

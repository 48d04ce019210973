package handlers

import (
	"net/http"

	"newsboard/internal/metrics"
	"newsboard/internal/middleware"
	"newsboard/internal/models"
	"newsboard/internal/render"
	"newsboard/internal/store"

	"github.com/gin-gonic/gin"
)

// PostHandler handles post-related requests
type PostHandler struct {
	posts    *store.PostStore
	comments *store.CommentStore
	ledger   *store.UpvoteLedger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *store.PostStore, comments *store.CommentStore, ledger *store.UpvoteLedger) *PostHandler {
	return &PostHandler{posts: posts, comments: comments, ledger: ledger}
}

// listQuery holds the paging and sorting parameters shared by every listing
type listQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=50"`
	SortBy string `form:"sortBy" binding:"omitempty,oneof=points recent"`
	Order  string `form:"order" binding:"omitempty,oneof=asc desc"`
}

func (q listQuery) pageRequest() store.PageRequest {
	return store.PageRequest{
		Page:   q.Page,
		Limit:  q.Limit,
		SortBy: store.SortBy(q.SortBy),
		Order:  store.Order(q.Order),
	}
}

type postListQuery struct {
	listQuery
	Author uint   `form:"author"`
	Site   string `form:"site"`
}

type commentListQuery struct {
	listQuery
	IncludeChildren bool `form:"includeChildren"`
}

// PostCreated is returned after creating a post
type PostCreated struct {
	PostID uint `json:"postId"`
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if !bind(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	id, err := h.posts.CreatePost(c.Request.Context(), user.ID, store.NewPost{
		Title:   req.Title,
		URL:     req.URL,
		Content: req.Content,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	metrics.PostCreated()
	respond(c, http.StatusCreated, "Post created", PostCreated{PostID: id})
}

// GetPosts returns one page of posts
func (h *PostHandler) GetPosts(c *gin.Context) {
	var q postListQuery
	if !bindQuery(c, &q) {
		return
	}

	query := store.PostQuery{
		PageRequest: q.pageRequest(),
		Site:        q.Site,
		ViewerID:    middleware.CurrentUserID(c),
	}
	if q.Author != 0 {
		author := q.Author
		query.AuthorID = &author
	}

	page, err := h.posts.ListPosts(c.Request.Context(), query)
	if err != nil {
		handleError(c, err)
		return
	}
	respondPage(c, "Posts Fetched", page)
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	if post.Content != nil {
		post.ContentHTML = render.Markdown(*post.Content)
	}
	respond(c, http.StatusOK, "Post Fetched.", post)
}

// Upvote toggles the caller's upvote on a post
func (h *PostHandler) Upvote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	result, err := h.ledger.TogglePostUpvote(c.Request.Context(), id, user.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	metrics.UpvoteToggled("post", result.IsUpvoted)
	respond(c, http.StatusOK, "Post updated successfully", result)
}

// CreateComment adds a root comment to a post
func (h *PostHandler) CreateComment(c *gin.Context) {
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
		PostID:   id,
		AuthorID: user.ID,
		Content:  req.Content,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	metrics.CommentCreated(false)
	respond(c, http.StatusOK, "Comment Added.", comment)
}

// GetComments returns one page of a post's root comments
func (h *PostHandler) GetComments(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var q commentListQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.comments.ListPostComments(c.Request.Context(), id, store.CommentQuery{
		PageRequest:     q.pageRequest(),
		IncludeChildren: q.IncludeChildren,
		ViewerID:        middleware.CurrentUserID(c),
	})
	if err != nil {
		handleError(c, err)
		return
	}
	respondPage(c, "Comments Fetched.", page)
}

package store

import (
	"context"
	"strings"
	"time"

	"newsboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewPost is the input for creating a post
type NewPost struct {
	Title   string
	URL     string
	Content string
}

// PostQuery describes a post listing. AuthorID and Site are exact-match
// filters; ViewerID, when set, enables the isUpvoted lookup for that user.
type PostQuery struct {
	PageRequest
	AuthorID *uint
	Site     string
	ViewerID *uint
}

// PostStore holds posts and serves ranked, paginated views over them
type PostStore struct {
	db *gorm.DB
}

// NewPostStore creates a new PostStore
func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// postRow is the flat shape scanned from the post listing query
type postRow struct {
	ID             uint
	Title          string
	URL            *string
	Content        *string
	Points         int
	CommentCount   int
	CreatedAt      time.Time
	AuthorID       uint
	AuthorUsername string
	IsUpvoted      bool
}

func (r postRow) view() models.PostView {
	return models.PostView{
		ID:           r.ID,
		Title:        r.Title,
		URL:          r.URL,
		Content:      r.Content,
		Points:       r.Points,
		CommentCount: r.CommentCount,
		CreatedAt:    r.CreatedAt,
		Author:       models.Author{ID: r.AuthorID, Username: r.AuthorUsername},
		IsUpvoted:    r.IsUpvoted,
	}
}

const postColumns = "posts.id AS id, posts.title AS title, posts.url AS url, posts.content AS content, " +
	"posts.points AS points, posts.comment_count AS comment_count, posts.created_at AS created_at, " +
	"users.id AS author_id, users.username AS author_username"

// CreatePost stores a new post for authorID and returns its id.
// A post needs a link, a text body, or both.
func (s *PostStore) CreatePost(ctx context.Context, authorID uint, in NewPost) (uint, error) {
	title := strings.TrimSpace(in.Title)
	url := strings.TrimSpace(in.URL)
	content := strings.TrimSpace(in.Content)

	if len(title) < 3 {
		return 0, invalid("title", "Title must be at least 3 characters.")
	}
	if url == "" && content == "" {
		return 0, invalid("content", "Either a URL or content is required.")
	}

	post := models.Post{
		UserID:  authorID,
		Title:   title,
		URL:     optional(url),
		Content: optional(content),
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&post).Error; err != nil {
		return 0, err
	}
	return post.ID, nil
}

// GetPost returns a single post annotated for viewerID
func (s *PostStore) GetPost(ctx context.Context, id uint, viewerID *uint) (*models.PostView, error) {
	var rows []postRow
	err := s.viewQuery(ctx, viewerID).
		Where("posts.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound("Post not found.")
	}
	view := rows[0].view()
	return &view, nil
}

// ListPosts returns one page of posts. Filters apply to both the count and
// the page, so TotalPages reflects the filtered set.
func (s *PostStore) ListPosts(ctx context.Context, q PostQuery) (*Page[models.PostView], error) {
	q.PageRequest = q.normalize()

	var total int64
	if err := q.filter(s.db.WithContext(ctx).Model(&models.Post{})).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []postRow
	err := q.filter(s.viewQuery(ctx, q.ViewerID)).
		Order(q.orderClause("posts")).
		Limit(q.Limit).
		Offset(q.offset()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]models.PostView, len(rows))
	for i, r := range rows {
		items[i] = r.view()
		// listings carry only the link; the body is served by GetPost
		items[i].Content = nil
	}

	return &Page[models.PostView]{
		Items:      items,
		Page:       q.Page,
		TotalPages: totalPages(total, q.Limit),
		Total:      total,
	}, nil
}

// viewQuery selects posts with their author. For a signed-in viewer it left
// joins that viewer's upvote row only; the (post_id, user_id) unique index
// keeps the join from multiplying rows.
func (s *PostStore) viewQuery(ctx context.Context, viewerID *uint) *gorm.DB {
	q := s.db.WithContext(ctx).
		Table("posts").
		Joins("LEFT JOIN users ON users.id = posts.user_id")

	if viewerID == nil {
		return q.Select(postColumns + ", 0 AS is_upvoted")
	}
	return q.
		Select(postColumns+", CASE WHEN post_upvotes.id IS NOT NULL THEN 1 ELSE 0 END AS is_upvoted").
		Joins("LEFT JOIN post_upvotes ON post_upvotes.post_id = posts.id AND post_upvotes.user_id = ?", *viewerID)
}

func (q PostQuery) filter(db *gorm.DB) *gorm.DB {
	if q.AuthorID != nil {
		db = db.Where("posts.user_id = ?", *q.AuthorID)
	}
	if q.Site != "" {
		db = db.Where("posts.url = ?", q.Site)
	}
	return db
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package store

import (
	"context"
	"fmt"
	"testing"

	"newsboard/internal/config"
	"newsboard/internal/database"
	"newsboard/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db       *gorm.DB
	users    *UserStore
	posts    *PostStore
	comments *CommentStore
	ledger   *UpvoteLedger
}

func setupStore(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(&config.Config{DatabaseDriver: "sqlite", DatabaseDSN: ":memory:"})
	require.NoError(t, err)
	db.Logger = logger.Default.LogMode(logger.Silent)
	t.Cleanup(func() { database.Close(db) })

	return &fixture{
		db:       db,
		users:    NewUserStore(db),
		posts:    NewPostStore(db),
		comments: NewCommentStore(db),
		ledger:   NewUpvoteLedger(db),
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), name, "hash")
	require.NoError(t, err)
	return u
}

func (f *fixture) post(t *testing.T, authorID uint, title string) uint {
	t.Helper()
	id, err := f.posts.CreatePost(context.Background(), authorID, NewPost{Title: title, Content: "body of " + title})
	require.NoError(t, err)
	return id
}

func (f *fixture) comment(t *testing.T, postID uint, parent *uint, authorID uint) *models.CommentView {
	t.Helper()
	c, err := f.comments.CreateComment(context.Background(), NewComment{
		PostID:          postID,
		ParentCommentID: parent,
		AuthorID:        authorID,
		Content:         fmt.Sprintf("comment by %d", authorID),
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) reload(t *testing.T, dest interface{}, id uint) {
	t.Helper()
	require.NoError(t, f.db.Take(dest, id).Error)
}

func ptr(id uint) *uint { return &id }
